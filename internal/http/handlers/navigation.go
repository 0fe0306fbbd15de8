package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"

	"github.com/apiman/apiman-ui/internal/browser"
	"github.com/apiman/apiman-ui/internal/navigation"
)

// HandleNavToggle flips the collapsed state of the vertical navigation and
// persists it in the session.
func (h *Handlers) HandleNavToggle(c *echo.Context) error {
	ctx := c.Request().Context()
	state := navigation.ViewState{Collapsed: h.Sessions.NavCollapsed(ctx)}
	state.UserToggle()
	h.Sessions.SetNavCollapsed(ctx, state.Collapsed)

	if isHX(c) {
		setHXTrigger(c, "navToggled", map[string]bool{"collapsed": state.Collapsed})
		return c.NoContent(http.StatusNoContent)
	}
	target := strings.TrimSpace(c.Request().Referer())
	if target == "" || (!strings.HasPrefix(target, "/") && !sameHost(c, target)) {
		target = h.basePath()
	}
	return c.Redirect(http.StatusSeeOther, target)
}

// HandleNavBack returns the browser to the parent console.
func (h *Handlers) HandleNavBack(c *echo.Context) error {
	snap, err := h.currentSession(c)
	if err != nil {
		return err
	}
	location := &browser.Location{}
	nav := navigation.NewController(snap, h.templater(c, snap), location, h.Cfg.UIPathPrefix)
	nav.GoBack()

	target, ok := location.Target()
	if !ok || target == "" {
		target = "/"
	}
	return redirect(c, target)
}

// HandleLogout drops the console session and follows the configured logout URL.
func (h *Handlers) HandleLogout(c *echo.Context) error {
	if err := h.Sessions.Logout(c.Request().Context()); err != nil {
		return h.RenderError(c, err)
	}
	target := strings.TrimSpace(h.Cfg.LogoutURL)
	if target == "" || target == c.Request().URL.Path {
		target = h.Cfg.BackToConsoleURL
	}
	return redirect(c, target)
}

func sameHost(c *echo.Context, rawURL string) bool {
	host := c.Request().Host
	if host == "" {
		return false
	}
	rest, ok := strings.CutPrefix(rawURL, "http://")
	if !ok {
		rest, ok = strings.CutPrefix(rawURL, "https://")
	}
	if !ok {
		return false
	}
	return rest == host || strings.HasPrefix(rest, host+"/")
}
