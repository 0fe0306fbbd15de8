package navigation

import (
	"net/url"
	"sort"
	"strings"
)

// DefaultPathPrefix is the deployment context the console is served under
// when it runs inside a servlet container.
const DefaultPathPrefix = "apimanui"

// Entry is one rendered navigation link. Group names the secondary-nav
// section the link sits in; it may be empty.
type Entry struct {
	ID    string
	Href  string
	Group string
}

// ActiveSet is the result of matching the current path against the rendered
// navigation entries.
type ActiveSet struct {
	entries map[string]struct{}
	groups  map[string]struct{}
}

func (s ActiveSet) Entry(id string) bool {
	_, ok := s.entries[id]
	return ok
}

func (s ActiveSet) Group(group string) bool {
	if group == "" {
		return false
	}
	_, ok := s.groups[group]
	return ok
}

func (s ActiveSet) Len() int {
	return len(s.entries)
}

// Ambiguous reports more than one matching entry. Well-formed hrefs never
// produce this; it points at duplicated links in the nav definition.
func (s ActiveSet) Ambiguous() bool {
	return len(s.entries) > 1
}

// IDs returns the active entry ids in sorted order.
func (s ActiveSet) IDs() []string {
	out := make([]string, 0, len(s.entries))
	for id := range s.entries {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// NormalizePath turns a request path into the form navigation hrefs are
// written in: the "/<prefix>/" deployment segment (or a single leading slash)
// and one trailing slash are stripped, then the result is percent-decoded.
func NormalizePath(path, prefix string) string {
	prefix = strings.Trim(prefix, "/")
	switch {
	case prefix != "" && strings.HasPrefix(path, "/"+prefix+"/"):
		path = path[len(prefix)+2:]
	case strings.HasPrefix(path, "/"):
		path = path[1:]
	}
	path = strings.TrimSuffix(path, "/")

	decoded, err := url.PathUnescape(path)
	if err != nil {
		return path
	}
	return decoded
}

// ComputeActiveEntries matches path, under the default prefix, against entries.
func ComputeActiveEntries(path string, entries []Entry) ActiveSet {
	return Matcher{Prefix: DefaultPathPrefix}.Active(path, entries)
}

// Matcher marks navigation entries whose href equals the normalized path.
type Matcher struct {
	Prefix string
}

func (m Matcher) Active(path string, entries []Entry) ActiveSet {
	set := ActiveSet{
		entries: make(map[string]struct{}),
		groups:  make(map[string]struct{}),
	}
	normalized := NormalizePath(path, m.Prefix)
	for _, entry := range entries {
		if entry.Href != normalized {
			continue
		}
		set.entries[entry.ID] = struct{}{}
		if entry.Group != "" {
			set.groups[entry.Group] = struct{}{}
		}
	}
	return set
}
