package httpapp

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"github.com/apiman/apiman-ui/internal/config"
	"github.com/apiman/apiman-ui/internal/http/handlers"
)

const maxRequestIDLen = 128

// EchoServer is the HTTP server wrapper.
type EchoServer struct {
	h *handlers.Handlers
	e *echo.Echo
}

// NewEchoServer creates a new HTTP server. Session loading wraps the echo
// router, so the returned server must be served through Handler.
func NewEchoServer(h *handlers.Handlers, logger *slog.Logger) *EchoServer {
	e := echo.New()
	if logger != nil {
		e.Logger = logger
	}
	es := &EchoServer{h: h, e: e}
	e.HTTPErrorHandler = es.httpErrorHandler
	e.Use(requestIDMiddleware())
	e.Use(middleware.Recover())
	es.registerRoutes()
	return es
}

func (es *EchoServer) registerRoutes() {
	cfg := es.h.Cfg
	es.e.GET("/healthz", es.h.HandleHealthz)

	authed := es.e.Group("")
	authed.Use(es.h.Sessions.Middleware())
	authed.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup:    "header:" + echo.HeaderXCSRFToken + ",form:_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.AuthCookieSecure,
		CookieSameSite: http.SameSiteLaxMode,
	}))
	authed.POST("/nav/toggle", es.h.HandleNavToggle)
	authed.GET("/nav/back", es.h.HandleNavBack)
	authed.GET("/logout", es.h.HandleLogout)

	base := handlers.MountedBasePath(cfg)
	plugin := authed.Group(base)
	plugin.GET("/orgs/:orgId", es.h.HandleOrgShow)
	plugin.POST("/orgs/:orgId/description", es.h.HandleOrgDescription)
	plugin.GET("/orgs/:orgId/delete", es.h.HandleOrgDeleteOpen)
	plugin.POST("/orgs/:orgId/delete/:dialogId/typed", es.h.HandleOrgDeleteTyped)
	plugin.POST("/orgs/:orgId/delete/:dialogId/yes", es.h.HandleOrgDeleteYes)
	plugin.POST("/orgs/:orgId/delete/:dialogId/no", es.h.HandleOrgDeleteNo)
	plugin.GET("/orgs/:orgId/delete/:dialogId/status", es.h.HandleOrgDeleteStatus)
	plugin.GET("/users/:username/orgs", es.h.HandleUserOrgs)
}

// Handler returns the root handler with sessions loaded and saved around
// every request.
func (es *EchoServer) Handler() http.Handler {
	return es.h.Sessions.Sessions.LoadAndSave(es.e)
}

// NewHTTPServer returns the http.Server serve runs.
func NewHTTPServer(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

func (es *EchoServer) httpErrorHandler(c *echo.Context, err error) {
	if resp, uErr := echo.UnwrapResponse(c.Response()); uErr == nil && resp.Committed {
		return
	}

	status := httpStatusFromError(err)
	switch {
	case status >= http.StatusInternalServerError:
		_ = es.h.RenderError(c, err)
	case status == http.StatusNotFound:
		_ = handlers.RenderNotFound(c)
	default:
		_ = c.String(status, http.StatusText(status))
	}
}

type statusCoder interface {
	StatusCode() int
}

func httpStatusFromError(err error) int {
	var sc statusCoder
	if errors.As(err, &sc) {
		if code := sc.StatusCode(); code >= 400 && code <= 599 {
			return code
		}
	}
	return http.StatusInternalServerError
}

// requestIDMiddleware propagates a sane inbound X-Request-ID or mints one.
func requestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			id := strings.TrimSpace(c.Request().Header.Get(echo.HeaderXRequestID))
			if id == "" || len(id) > maxRequestIDLen || strings.ContainsAny(id, "\r\n") {
				id = uuid.NewString()
			}
			c.Set(handlers.ContextKeyRequestID, id)
			c.Response().Header().Set(echo.HeaderXRequestID, id)
			return next(c)
		}
	}
}

const readHeaderTimeout = 5 * time.Second
