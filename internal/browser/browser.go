// Package browser models the browser-location collaborator the console
// controllers navigate through.
package browser

import "sync"

// Navigator moves the browser to target. Navigation is fire-and-forget.
type Navigator interface {
	Navigate(target string)
}

// Location records the most recent navigation target. HTTP handlers turn a
// recorded target into an HX-Redirect (or a plain redirect) response.
type Location struct {
	mu     sync.Mutex
	target string
	set    bool
}

func (l *Location) Navigate(target string) {
	l.mu.Lock()
	l.target = target
	l.set = true
	l.mu.Unlock()
}

// Target returns the last navigation target and whether one was recorded.
func (l *Location) Target() (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.target, l.set
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(target string)

func (f NavigatorFunc) Navigate(target string) {
	f(target)
}
