package navigation

import "strings"

const (
	GroupHome          = "home"
	GroupOrganizations = "organizations"
)

// Item is an Entry plus the label it is rendered with.
type Item struct {
	Entry
	Label string
}

// Menu builds the vertical navigation for the given user. orgID adds the
// entry of the organization currently being viewed. Hrefs are relative to the
// document base and unescaped, which is how the active-route matcher compares
// them against the decoded request path.
func Menu(pluginBasePath, username, orgID string) []Item {
	base := strings.Trim(pluginBasePath, "/")
	items := []Item{
		{Entry: Entry{ID: "home", Href: base, Group: GroupHome}, Label: "Home"},
		{
			Entry: Entry{ID: "my-orgs", Href: joinHref(base, "users", username, "orgs"), Group: GroupOrganizations},
			Label: "My Organizations",
		},
	}
	if orgID = strings.TrimSpace(orgID); orgID != "" {
		items = append(items, Item{
			Entry: Entry{ID: "org-" + orgID, Href: joinHref(base, "orgs", orgID), Group: GroupOrganizations},
			Label: orgID,
		})
	}
	return items
}

// Entries strips the labels from items.
func Entries(items []Item) []Entry {
	out := make([]Entry, 0, len(items))
	for _, item := range items {
		out = append(out, item.Entry)
	}
	return out
}

func joinHref(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "/")
}
