// Package handlers contains HTTP handler logic split by domain.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"github.com/apiman/apiman-ui/internal/browser"
	"github.com/apiman/apiman-ui/internal/config"
	"github.com/apiman/apiman-ui/internal/http/viewmodels"
	"github.com/apiman/apiman-ui/internal/http/views"
	"github.com/apiman/apiman-ui/internal/logging"
	"github.com/apiman/apiman-ui/internal/navigation"
	"github.com/apiman/apiman-ui/internal/orgs"
	"github.com/apiman/apiman-ui/internal/session"
)

const (
	// ContextKeyRequestID stores the request id (X-Request-ID) for logging and client error references.
	ContextKeyRequestID = "request_id"

	// InternalErrorCode is a stable error code safe to return to clients.
	InternalErrorCode = "INTERNAL_ERROR"
)

var csrfContextKey = middleware.DefaultCSRFConfig.ContextKey

// OrganizationService is the API Manager surface the console pages use.
type OrganizationService interface {
	orgs.Resource
	GetOrganization(ctx context.Context, orgID string) (orgs.Organization, error)
	ListUserOrganizations(ctx context.Context, username string) ([]orgs.Organization, error)
}

// Handlers groups all HTTP handlers and shared dependencies.
type Handlers struct {
	Cfg      config.Config
	Sessions *session.Manager
	Orgs     OrganizationService
	Dialogs  *orgs.Registry[*deleteDialog]
	Clock    clockwork.Clock
	Logger   *slog.Logger
}

// NewDialogRegistry returns the registry open delete dialogs are kept in.
func NewDialogRegistry(clock clockwork.Clock, cfg config.Config) *orgs.Registry[*deleteDialog] {
	return orgs.NewRegistry[*deleteDialog](clock, cfg.DialogTTL)
}

// MountedBasePath is the absolute path the plugin pages are served under,
// including the deployment prefix.
func MountedBasePath(cfg config.Config) string {
	prefix := strings.Trim(cfg.UIPathPrefix, "/")
	if prefix == "" {
		return cfg.PluginBasePath
	}
	return "/" + prefix + cfg.PluginBasePath
}

func (h *Handlers) basePath() string {
	return MountedBasePath(h.Cfg)
}

func (h *Handlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// templater returns the controller logging collaborator scoped to the request
// and its user.
func (h *Handlers) templater(c *echo.Context, snap session.Snapshot) *logging.Templater {
	requestID, _ := c.Get(ContextKeyRequestID).(string)
	return logging.ForRequest(h.logger(), requestID, snap.User.Username)
}

// currentSession resolves the session snapshot. The session middleware
// guarantees a user on authenticated routes.
func (h *Handlers) currentSession(c *echo.Context) (session.Snapshot, error) {
	snap, err := h.Sessions.Current(c.Request().Context())
	if errors.Is(err, session.ErrNoUser) {
		return snap, echo.ErrUnauthorized
	}
	return snap, err
}

// LayoutData builds the common layout data for page rendering. orgID adds the
// navigation entry of the organization being viewed.
func (h *Handlers) LayoutData(c *echo.Context, snap session.Snapshot, title, orgID string) viewmodels.LayoutData {
	nav := navigation.NewController(snap, h.templater(c, snap), &browser.Location{}, h.Cfg.UIPathPrefix)
	items := navigation.Menu(h.Cfg.PluginBasePath, nav.Username(), orgID)
	// The matcher decodes once itself, so it gets the path as sent.
	active := nav.Highlight(c.Request().URL.EscapedPath(), navigation.Entries(items))

	state := navigation.ViewState{Collapsed: h.Sessions.NavCollapsed(c.Request().Context())}
	classes := state.ToggleNavBar()

	navItems := make([]viewmodels.NavItemData, 0, len(items))
	for _, item := range items {
		navItems = append(navItems, viewmodels.NavItemData{
			ID:           item.ID,
			Label:        item.Label,
			Href:         item.Href,
			Group:        item.Group,
			Classes:      strings.Join(state.EntryClasses(item.Entry, active), " "),
			GroupClasses: strings.Join(state.GroupClasses(item.Group, active), " "),
		})
	}

	csrfToken, _ := c.Get(csrfContextKey).(string)
	return viewmodels.LayoutData{
		Title:            title,
		CSRFToken:        csrfToken,
		BaseHref:         views.BaseHref(h.Cfg.UIPathPrefix),
		Username:         nav.Username(),
		LogoutURL:        nav.LogoutURL(),
		BackURL:          "/nav/back",
		NavItems:         navItems,
		NavClasses:       strings.Join(classes.Nav, " "),
		ContainerClasses: strings.Join(classes.Container, " "),
		NavCollapsed:     state.Collapsed,
		Toast:            popFlashToast(c),
	}
}

// RenderComponent renders a templ component as the response.
func (h *Handlers) RenderComponent(c *echo.Context, component templ.Component) error {
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(c.Request().Context(), c.Response()); err != nil {
		return h.RenderError(c, err)
	}
	return nil
}

// RenderComponentStatus renders component with a non-200 status.
func (h *Handlers) RenderComponentStatus(c *echo.Context, status int, component templ.Component) error {
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	c.Response().WriteHeader(status)
	return component.Render(c.Request().Context(), c.Response())
}

// RenderError returns a plain text error response.
func (h *Handlers) RenderError(c *echo.Context, err error) error {
	requestID, _ := c.Get(ContextKeyRequestID).(string)
	path := ""
	if req := c.Request(); req != nil && req.URL != nil {
		path = req.URL.Path
	}
	method := ""
	if req := c.Request(); req != nil {
		method = req.Method
	}
	c.Logger().Error("http error",
		"request_id", requestID,
		"method", method,
		"path", path,
		"ip", c.RealIP(),
		"error", err,
	)

	msg := "Internal server error."
	if requestID != "" {
		msg = fmt.Sprintf("%s Reference: %s.", msg, requestID)
	}
	msg = fmt.Sprintf("%s Code: %s.", msg, InternalErrorCode)
	return c.String(http.StatusInternalServerError, msg)
}

// RenderNotFound returns a 404 response.
func RenderNotFound(c *echo.Context) error {
	return c.String(http.StatusNotFound, "404 page not found")
}

// HandleHealthz returns a simple health check response.
func (h *Handlers) HandleHealthz(c *echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// redirect sends the browser to target: HX-Redirect for HTMX requests, a
// 303 otherwise.
func redirect(c *echo.Context, target string) error {
	if isHX(c) {
		setHXRedirect(c, target)
		return c.NoContent(http.StatusNoContent)
	}
	return c.Redirect(http.StatusSeeOther, target)
}
