package session

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v5"
)

func newTestManager(t *testing.T, c *echo.Context) *Manager {
	t.Helper()

	sessions := NewSessionManager(false, nil)
	sessionCtx, err := sessions.Load(c.Request().Context(), "")
	if err != nil {
		t.Fatalf("sessions.Load() error = %v", err)
	}
	c.SetRequest(c.Request().WithContext(sessionCtx))

	return NewManager(sessions, Settings{
		LogoutURL:        "/logout",
		BackToConsoleURL: "https://console.example.com/",
		PluginBasePath:   "/api-manager",
	})
}

func newTestContext(method, target string) (*echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCurrentWithoutUser(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "http://example.com/")
	m := newTestManager(t, c)

	if _, err := m.Current(c.Request().Context()); !errors.Is(err, ErrNoUser) {
		t.Fatalf("Current() error = %v, want ErrNoUser", err)
	}
}

func TestMiddlewareBindsAssertedUser(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "http://example.com/api-manager/orgs/acme")
	c.Request().Header.Set("X-Forwarded-User", " bwayne ")
	m := newTestManager(t, c)

	called := false
	err := m.Middleware()(func(c *echo.Context) error {
		called = true
		return c.NoContent(http.StatusNoContent)
	})(c)
	if err != nil {
		t.Fatalf("middleware error = %v", err)
	}
	if !called {
		t.Fatal("expected next handler to run")
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	snap, err := m.Current(c.Request().Context())
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if snap.User.Username != "bwayne" {
		t.Fatalf("Username = %q, want %q", snap.User.Username, "bwayne")
	}
	if snap.PluginBasePath != "/api-manager" || snap.BackToConsoleURL != "https://console.example.com/" || snap.LogoutURL != "/logout" {
		t.Fatalf("unexpected settings in snapshot: %+v", snap)
	}
}

func TestMiddlewareRejectsAnonymous(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "http://example.com/api-manager/orgs/acme")
	m := newTestManager(t, c)

	err := m.Middleware()(func(c *echo.Context) error {
		t.Fatal("next handler must not run")
		return nil
	})(c)
	if err != nil {
		t.Fatalf("middleware error = %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestMiddlewareIgnoresInvalidUsername(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "http://example.com/")
	c.Request().Header.Set("X-Forwarded-User", "../admin")
	m := newTestManager(t, c)

	_ = m.Middleware()(func(c *echo.Context) error {
		t.Fatal("next handler must not run")
		return nil
	})(c)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestNavCollapsedRoundTrip(t *testing.T) {
	c, _ := newTestContext(http.MethodPost, "http://example.com/nav/toggle")
	m := newTestManager(t, c)
	ctx := c.Request().Context()

	if m.NavCollapsed(ctx) {
		t.Fatal("expected nav expanded by default")
	}
	m.SetNavCollapsed(ctx, true)
	if !m.NavCollapsed(ctx) {
		t.Fatal("expected nav collapsed after SetNavCollapsed(true)")
	}
}
