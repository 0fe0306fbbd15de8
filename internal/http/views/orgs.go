package views

import (
	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/apiman/apiman-ui/internal/http/viewmodels"
)

func OrgShowPage(data viewmodels.OrgShowViewData) templ.Component {
	return component(layoutNode(data.Layout,
		html.Div(
			html.Class("apiman-org-overview"),
			html.H1(html.Class("org-name"), g.Text(data.Name)),
			html.Form(
				html.ID("org-description"),
				html.Method("post"),
				html.Action(data.DescriptionURL),
				g.Attr("hx-post", data.DescriptionURL),
				g.Attr("hx-trigger", "change from:#org-description-input"),
				g.Attr("hx-swap", "none"),
				html.Input(html.Type("hidden"), html.Name("_csrf"), html.Value(data.Layout.CSRFToken)),
				html.Label(html.For("org-description-input"), g.Text("Description")),
				html.Textarea(
					html.ID("org-description-input"),
					html.Name("description"),
					html.Class("form-control"),
					html.Placeholder("Add a description for this organization."),
					g.Text(data.Description),
				),
			),
			html.Div(
				html.Class("org-actions"),
				html.Button(
					html.Type("button"),
					html.ID("delete-org"),
					html.Class("btn btn-danger"),
					g.Attr("hx-get", data.DeleteURL),
					g.Attr("hx-target", "#modal-root"),
					g.Attr("hx-swap", "innerHTML"),
					g.Text("Delete Organization"),
				),
			),
		),
	))
}

func OrgListPage(data viewmodels.OrgListViewData) templ.Component {
	return component(layoutNode(data.Layout,
		html.Div(
			html.Class("apiman-user-orgs"),
			html.H1(g.Text("Organizations")),
			g.If(len(data.Items) == 0,
				html.P(html.Class("empty-state"), g.Text("You are not a member of any organization.")),
			),
			g.If(len(data.Items) > 0,
				html.Ul(
					html.Class("list-group org-list"),
					g.Map(data.Items, func(item viewmodels.OrgSummaryItem) g.Node {
						return html.Li(
							html.Class("list-group-item"),
							g.Attr("data-org-id", item.ID),
							html.A(html.Href(item.Href), g.Text(item.Name)),
							g.If(item.Description != "", html.P(html.Class("list-group-item-text"), g.Text(item.Description))),
						)
					}),
				),
			),
		),
	))
}

// ErrorPage renders a standalone page for failures that happen before a
// layout can be built.
func ErrorPage(layout viewmodels.LayoutData, data viewmodels.PageErrorData) templ.Component {
	return component(layoutNode(layout, errorNode(data)))
}

func errorNode(data viewmodels.PageErrorData) g.Node {
	return html.Div(
		html.Class("alert alert-danger"),
		html.Role("alert"),
		html.Strong(g.Text(data.Title)),
		g.If(data.Message != "", html.P(g.Text(data.Message))),
	)
}

// DeleteDialog renders the delete-confirmation modal. The confirm button
// stays disabled until the typed name matches, and while a delete is in
// flight. After a successful delete the modal polls its status so the
// server can redirect once the dialog has closed.
func DeleteDialog(data viewmodels.DeleteDialogViewData) templ.Component {
	return component(deleteDialogNode(data))
}

func deleteDialogNode(data viewmodels.DeleteDialogViewData) g.Node {
	yesDisabled := !data.OkayToDelete || data.Deleting || data.Succeeded
	return html.Div(
		html.ID("delete-org-dialog"),
		html.Class("modal fade in"),
		html.Role("dialog"),
		g.Attr("data-dialog-id", data.DialogID),
		g.Attr("style", "display: block"),
		html.Div(
			html.Class("modal-dialog"),
			html.Div(
				html.Class("modal-content"),
				html.Div(
					html.Class("modal-header"),
					html.H4(html.Class("modal-title"), g.Text("Confirm Delete Organization")),
				),
				html.Div(
					html.Class("modal-body"),
					g.If(data.Succeeded,
						html.Div(
							html.Class("alert alert-success"),
							g.Attr("hx-get", data.StatusURL),
							g.Attr("hx-trigger", "load delay:"+FormatInt64(data.PollDelayMS)+"ms"),
							g.Attr("hx-target", "#delete-org-dialog"),
							g.Text("Organization "+data.OrgName+" was deleted."),
						),
					),
					g.If(!data.Succeeded,
						g.Group{
							html.P(
								g.Text("Do you really want to delete this organization? This cannot be undone. Type the name of the organization ("),
								html.Strong(g.Text(data.OrgName)),
								g.Text(") to confirm."),
							),
							html.Input(
								html.Type("text"),
								html.ID("delete-org-confirm"),
								html.Name("typed"),
								html.Class("form-control"),
								html.Value(data.TypedName),
								html.AutoComplete("off"),
								g.Attr("hx-post", data.TypedURL),
								g.Attr("hx-trigger", "input changed delay:150ms"),
								g.Attr("hx-target", "#delete-org-yes"),
								g.If(data.Deleting, html.Disabled()),
							),
						},
					),
					g.Iff(data.Error != nil && !data.Succeeded, func() g.Node {
						return errorNode(*data.Error)
					}),
				),
				html.Div(
					html.Class("modal-footer"),
					html.Button(
						html.Type("button"),
						html.ID("delete-org-no"),
						html.Class("btn btn-default"),
						g.Attr("hx-post", data.NoURL),
						g.Attr("hx-target", "#delete-org-dialog"),
						g.If(data.Succeeded, html.Disabled()),
						g.Text("Cancel"),
					),
					DeleteConfirmButton(data.YesURL, yesDisabled, data.Deleting),
				),
			),
		),
	)
}

// DeleteConfirmButton is swapped on its own as the confirmation text changes.
func DeleteConfirmButton(yesURL string, disabled, deleting bool) g.Node {
	label := "Yes"
	if deleting {
		label = "Deleting..."
	}
	return html.Button(
		html.Type("button"),
		html.ID("delete-org-yes"),
		html.Class("btn btn-danger"),
		g.Attr("hx-post", yesURL),
		g.Attr("hx-target", "#delete-org-dialog"),
		g.Attr("hx-include", "#delete-org-confirm"),
		g.Attr("hx-disabled-elt", "this"),
		g.If(disabled, html.Disabled()),
		g.Text(label),
	)
}

func DeleteConfirmButtonFragment(yesURL string, disabled bool) templ.Component {
	return component(DeleteConfirmButton(yesURL, disabled, false))
}
