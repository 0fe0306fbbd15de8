package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"

	"github.com/apiman/apiman-ui/internal/http/viewmodels"
	"github.com/apiman/apiman-ui/internal/http/views"
	"github.com/apiman/apiman-ui/internal/manager"
	"github.com/apiman/apiman-ui/internal/metrics"
	"github.com/apiman/apiman-ui/internal/orgs"
)

// HandleOrgShow renders the organization page with its admin sidebar.
func (h *Handlers) HandleOrgShow(c *echo.Context) error {
	addVary(c, "HX-Request")
	orgID := strings.TrimSpace(c.Param("orgId"))
	if orgID == "" {
		return RenderNotFound(c)
	}
	snap, err := h.currentSession(c)
	if err != nil {
		return err
	}

	org, err := h.Orgs.GetOrganization(c.Request().Context(), orgID)
	if err != nil {
		if manager.IsNotFound(err) {
			return RenderNotFound(c)
		}
		return h.RenderError(c, err)
	}

	base := h.basePath()
	data := viewmodels.OrgShowViewData{
		Layout:         h.LayoutData(c, snap, org.Name, org.ID),
		OrgID:          org.ID,
		Name:           org.Name,
		Description:    org.Description,
		DescriptionURL: views.OrgDescriptionURL(base, org.ID),
		DeleteURL:      views.OrgDeleteURL(base, org.ID),
	}
	return h.RenderComponent(c, views.OrgShowPage(data))
}

// HandleOrgDescription pushes the edited description to the API Manager.
// The outcome is never shown to the user; failures are logged.
func (h *Handlers) HandleOrgDescription(c *echo.Context) error {
	orgID := strings.TrimSpace(c.Param("orgId"))
	if orgID == "" {
		return RenderNotFound(c)
	}
	snap, err := h.currentSession(c)
	if err != nil {
		return err
	}

	controller := orgs.DescriptionController{
		OrganizationID: orgID,
		Resource:       h.Orgs,
		Logger:         h.templater(c, snap),
	}
	controller.UpdateDescription(c.Request().Context(), c.FormValue("description"))
	metrics.OrgDescriptionUpdatesTotal.Inc()

	if isHX(c) {
		return c.NoContent(http.StatusNoContent)
	}
	return c.Redirect(http.StatusSeeOther, views.OrgURL(h.basePath(), orgID))
}

// HandleUserOrgs lists the organizations a user belongs to. It is where the
// delete dialog sends the browser after a successful delete.
func (h *Handlers) HandleUserOrgs(c *echo.Context) error {
	addVary(c, "HX-Request")
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		return RenderNotFound(c)
	}
	snap, err := h.currentSession(c)
	if err != nil {
		return err
	}

	list, err := h.Orgs.ListUserOrganizations(c.Request().Context(), username)
	if err != nil {
		if manager.IsNotFound(err) {
			return RenderNotFound(c)
		}
		return h.RenderError(c, err)
	}

	base := h.basePath()
	items := make([]viewmodels.OrgSummaryItem, 0, len(list))
	for _, org := range list {
		name := strings.TrimSpace(org.Name)
		if name == "" {
			name = org.ID
		}
		items = append(items, viewmodels.OrgSummaryItem{
			ID:          org.ID,
			Name:        name,
			Description: strings.TrimSpace(org.Description),
			Href:        views.OrgURL(base, org.ID),
		})
	}

	data := viewmodels.OrgListViewData{
		Layout: h.LayoutData(c, snap, "Organizations", ""),
		Items:  items,
	}
	return h.RenderComponent(c, views.OrgListPage(data))
}
