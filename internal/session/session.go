// Package session provides the session/configuration collaborator: who the
// current user is and where the console's navigation targets live.
package session

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/pgxstore"
	"github.com/alexedwards/scs/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v5"
)

const (
	SessionKeyUsername     = "auth_username"
	SessionKeyNavCollapsed = "nav_collapsed"

	cookieName     = "apiman_ui_session"
	sessionLife    = 12 * time.Hour
	sessionIdle    = 2 * time.Hour
	storeCleanup   = 10 * time.Minute
	maxUsernameLen = 255
)

var ErrNoUser = errors.New("session has no authenticated user")

// User is the logged-in identity. It is read-only for the lifetime of a view.
type User struct {
	Username string
}

// Snapshot is everything the controllers read from the session provider.
type Snapshot struct {
	User             User
	LogoutURL        string
	BackToConsoleURL string
	PluginBasePath   string
}

// Provider resolves the session snapshot for a request context.
type Provider interface {
	Current(ctx context.Context) (Snapshot, error)
}

// Settings are the static, config-derived parts of every snapshot.
type Settings struct {
	LogoutURL        string
	BackToConsoleURL string
	PluginBasePath   string
	UserHeader       string
}

// Manager is the scs-backed Provider.
type Manager struct {
	Sessions *scs.SessionManager
	Settings Settings
}

// NewSessionManager configures scs. A nil store keeps the scs in-memory default.
func NewSessionManager(cookieSecure bool, store scs.Store) *scs.SessionManager {
	sessions := scs.New()
	if store != nil {
		sessions.Store = store
	}
	sessions.Lifetime = sessionLife
	sessions.IdleTimeout = sessionIdle
	sessions.Cookie.Name = cookieName
	sessions.Cookie.HttpOnly = true
	sessions.Cookie.Path = "/"
	sessions.Cookie.SameSite = http.SameSiteLaxMode
	sessions.Cookie.Secure = cookieSecure
	return sessions
}

// NewPostgresStore returns a pgx-backed session store. The sessions table is
// created by the migrate command.
func NewPostgresStore(pool *pgxpool.Pool) scs.Store {
	return pgxstore.NewWithCleanupInterval(pool, storeCleanup)
}

func NewManager(sessions *scs.SessionManager, settings Settings) *Manager {
	if strings.TrimSpace(settings.UserHeader) == "" {
		settings.UserHeader = "X-Forwarded-User"
	}
	return &Manager{Sessions: sessions, Settings: settings}
}

func (m *Manager) Current(ctx context.Context) (Snapshot, error) {
	username := strings.TrimSpace(m.Sessions.GetString(ctx, SessionKeyUsername))
	if username == "" {
		return Snapshot{}, ErrNoUser
	}
	return Snapshot{
		User:             User{Username: username},
		LogoutURL:        m.Settings.LogoutURL,
		BackToConsoleURL: m.Settings.BackToConsoleURL,
		PluginBasePath:   m.Settings.PluginBasePath,
	}, nil
}

// NavCollapsed reports the persisted collapsed state of the vertical nav.
func (m *Manager) NavCollapsed(ctx context.Context) bool {
	return m.Sessions.GetBool(ctx, SessionKeyNavCollapsed)
}

func (m *Manager) SetNavCollapsed(ctx context.Context, collapsed bool) {
	m.Sessions.Put(ctx, SessionKeyNavCollapsed, collapsed)
}

// Logout drops the session.
func (m *Manager) Logout(ctx context.Context) error {
	return m.Sessions.Destroy(ctx)
}

// Middleware binds the identity asserted by the fronting proxy to the session.
// Requests without an identity, either asserted or already stored, are rejected.
func (m *Manager) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			ctx := c.Request().Context()
			asserted := sanitizeUsername(c.Request().Header.Get(m.Settings.UserHeader))
			stored := m.Sessions.GetString(ctx, SessionKeyUsername)

			if asserted != "" && asserted != stored {
				if err := m.Sessions.RenewToken(ctx); err != nil {
					return err
				}
				m.Sessions.Put(ctx, SessionKeyUsername, asserted)
				stored = asserted
			}
			if stored == "" {
				if strings.HasPrefix(c.Request().URL.Path, "/api/") {
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
				}
				return c.String(http.StatusUnauthorized, "unauthorized")
			}
			return next(c)
		}
	}
}

func sanitizeUsername(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > maxUsernameLen {
		return ""
	}
	if strings.ContainsAny(raw, "/\\?#") {
		return ""
	}
	return raw
}
