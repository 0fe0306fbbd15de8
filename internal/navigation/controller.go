// Package navigation implements the console's top and vertical navigation:
// session identity, back-navigation, active-route highlighting and the
// collapse/hover presentation state.
package navigation

import (
	"github.com/apiman/apiman-ui/internal/browser"
	"github.com/apiman/apiman-ui/internal/session"
)

// Logger is the subset of the logging collaborator the controller uses.
type Logger interface {
	Log(template string, args ...any)
	Info(template string, args ...any)
	Warn(template string, args ...any)
}

type Controller struct {
	snapshot  session.Snapshot
	logger    Logger
	navigator browser.Navigator
	matcher   Matcher
}

// NewController binds a controller to the session of one rendered page.
func NewController(snapshot session.Snapshot, logger Logger, navigator browser.Navigator, prefix string) *Controller {
	logger.Log("Current user is {0}.", snapshot.User.Username)
	return &Controller{
		snapshot:  snapshot,
		logger:    logger,
		navigator: navigator,
		matcher:   Matcher{Prefix: prefix},
	}
}

func (c *Controller) Username() string {
	return c.snapshot.User.Username
}

func (c *Controller) LogoutURL() string {
	return c.snapshot.LogoutURL
}

// GoBack returns the browser to the parent console.
func (c *Controller) GoBack() {
	target := c.snapshot.BackToConsoleURL
	c.logger.Info("Returning to parent UI: {0}", target)
	c.navigator.Navigate(target)
}

// Highlight computes the active entries for path. Ambiguous matches are kept
// and logged as a nav definition problem.
func (c *Controller) Highlight(path string, entries []Entry) ActiveSet {
	active := c.matcher.Active(path, entries)
	if active.Ambiguous() {
		c.logger.Warn("Navigation entries {0} all match path {1}", active.IDs(), path)
	}
	return active
}
