package views

import (
	"context"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
)

// component adapts a gomponents node to the templ render contract the
// handlers use.
func component(node g.Node) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return node.Render(w)
	})
}

func FormatInt64(v int64) string {
	return strconv.FormatInt(v, 10)
}

// JoinClasses joins non-empty class names with single spaces.
func JoinClasses(classes ...string) string {
	out := make([]string, 0, len(classes))
	for _, class := range classes {
		if class = strings.TrimSpace(class); class != "" {
			out = append(out, class)
		}
	}
	return strings.Join(out, " ")
}

func OrgURL(basePath, orgID string) string {
	return strings.TrimRight(basePath, "/") + "/orgs/" + url.PathEscape(orgID)
}

func OrgDescriptionURL(basePath, orgID string) string {
	return OrgURL(basePath, orgID) + "/description"
}

func OrgDeleteURL(basePath, orgID string) string {
	return OrgURL(basePath, orgID) + "/delete"
}

// DeleteDialogURL addresses one action of an open delete dialog. An empty
// action addresses the dialog itself.
func DeleteDialogURL(basePath, orgID, dialogID, action string) string {
	u := OrgDeleteURL(basePath, orgID) + "/" + url.PathEscape(dialogID)
	if action = strings.Trim(action, "/ "); action != "" {
		u += "/" + action
	}
	return u
}

func UserOrgsURL(basePath, username string) string {
	return strings.TrimRight(basePath, "/") + "/users/" + url.PathEscape(username) + "/orgs"
}

// BaseHref is the document base navigation hrefs are resolved against.
func BaseHref(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return "/"
	}
	return "/" + prefix + "/"
}
