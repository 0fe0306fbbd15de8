package views

import (
	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/apiman/apiman-ui/internal/http/viewmodels"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// navHoverScript mirrors the hover classes the server renders so hovering
// does not need a round trip. It also follows the navToggled event the
// collapse toggle emits.
const navHoverScript = `document.addEventListener("mouseover", function (e) {
  var li = e.target.closest(".nav-pf-vertical .list-group-item");
  if (!li) { return; }
  document.querySelectorAll(".is-hover").forEach(function (el) { el.classList.remove("is-hover"); });
  li.classList.add("is-hover");
  document.querySelector(".nav-pf-vertical").classList.add("hover-secondary-nav-pf");
});
document.addEventListener("mouseout", function (e) {
  if (!e.target.closest(".nav-pf-vertical")) { return; }
  document.querySelector(".nav-pf-vertical").classList.remove("hover-secondary-nav-pf");
  document.querySelectorAll(".is-hover").forEach(function (el) { el.classList.remove("is-hover"); });
});
document.body.addEventListener("navToggled", function (e) {
  document.querySelector(".nav-pf-vertical").classList.toggle("collapsed", e.detail.collapsed);
  document.getElementById("page-container").classList.toggle("collapsed-nav", e.detail.collapsed);
  document.getElementById("nav-toggle").setAttribute("aria-expanded", String(!e.detail.collapsed));
});`

// Layout renders a full page around content.
func Layout(data viewmodels.LayoutData, content ...g.Node) templ.Component {
	return component(layoutNode(data, content...))
}

func layoutNode(data viewmodels.LayoutData, content ...g.Node) g.Node {
	title := data.Title
	if title == "" {
		title = "API Manager"
	}
	return html.Doctype(
		html.HTML(
			html.Lang("en"),
			html.Class("layout-pf layout-pf-fixed"),
			html.Head(
				html.Meta(html.Charset("utf-8")),
				g.El("base", html.Href(data.BaseHref)),
				html.TitleEl(g.Text(title+" · API Manager")),
				html.Meta(html.Name("htmx-config"), html.Content(`{"defaultSwapStyle":"outerHTML"}`)),
				html.Script(html.Src(htmxSrc)),
			),
			html.Body(
				g.Attr("hx-boost", "true"),
				g.Attr("hx-headers", `{"X-CSRF-Token": "`+data.CSRFToken+`"}`),
				Navbar(data),
				html.Div(
					html.ID("page-container"),
					html.Class(JoinClasses("container-fluid container-pf-nav-pf-vertical", data.ContainerClasses)),
					toastNode(data.Toast),
					g.Group(content),
				),
				html.Div(html.ID("modal-root")),
				html.Script(g.Raw(navHoverScript)),
			),
		),
	)
}

// Navbar renders the top bar and the vertical navigation.
func Navbar(data viewmodels.LayoutData) g.Node {
	return html.Div(
		html.ID("navbar"),
		html.Nav(
			html.Class("navbar navbar-pf-vertical"),
			html.Div(
				html.Class("navbar-header"),
				html.Button(
					html.Type("button"),
					html.ID("nav-toggle"),
					html.Class("navbar-toggle"),
					g.Attr("hx-post", "/nav/toggle"),
					g.Attr("hx-swap", "none"),
					g.Attr("aria-expanded", boolString(!data.NavCollapsed)),
					html.Span(html.Class("sr-only"), g.Text("Toggle navigation")),
				),
				html.A(html.Class("navbar-brand"), html.Href(data.BackURL), g.Attr("hx-boost", "false"), g.Text("Back to console")),
			),
			html.Ul(
				html.Class("nav navbar-nav navbar-right navbar-iconic"),
				html.Li(html.Class("dropdown"), html.Span(html.Class("username"), g.Text(data.Username))),
				html.Li(html.A(html.ID("logout"), html.Href(data.LogoutURL), g.Attr("hx-boost", "false"), g.Text("Log out"))),
			),
		),
		html.Div(
			html.Class(JoinClasses("nav-pf-vertical nav-pf-vertical-with-sub-menus", data.NavClasses)),
			html.Ul(
				html.Class("list-group"),
				g.Map(data.NavItems, func(item viewmodels.NavItemData) g.Node {
					return html.Li(
						html.Class(JoinClasses("list-group-item secondary-nav-item-pf", item.GroupClasses, item.Classes)),
						g.Attr("data-nav-entry", item.ID),
						html.A(html.Href(item.Href), html.Span(html.Class("list-group-item-value"), g.Text(item.Label))),
					)
				}),
			),
		),
	)
}

func toastNode(toast *viewmodels.ToastViewData) g.Node {
	if toast == nil {
		return nil
	}
	return html.Div(
		html.Class("toast-pf alert alert-"+toast.Category),
		html.Role("status"),
		g.If(toast.Title != "", html.Strong(g.Text(toast.Title))),
		g.If(toast.Description != "", html.Span(g.Text(" "+toast.Description))),
	)
}

func boolString(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
