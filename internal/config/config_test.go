package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HTTP_ADDR", "METRICS_ADDR", "DATABASE_URL", "MANAGER_API_URL", "MANAGER_API_TOKEN",
		"MANAGER_API_TIMEOUT", "PLUGIN_BASE_PATH", "UI_PATH_PREFIX", "BACK_TO_CONSOLE_URL",
		"LOGOUT_URL", "AUTH_USER_HEADER", "AUTH_COOKIE_SECURE", "DELETE_REDIRECT_DELAY", "DIALOG_TTL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadWithOptions_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadWithOptions(LoadOptions{})
	if err != nil {
		t.Fatalf("LoadWithOptions() error = %v", err)
	}
	if cfg.HTTPAddr != defaultHTTPAddr {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, defaultHTTPAddr)
	}
	if cfg.PluginBasePath != "/api-manager" {
		t.Fatalf("PluginBasePath = %q, want %q", cfg.PluginBasePath, "/api-manager")
	}
	if cfg.UIPathPrefix != "apimanui" {
		t.Fatalf("UIPathPrefix = %q, want %q", cfg.UIPathPrefix, "apimanui")
	}
	if cfg.DeleteRedirectDelay != 800*time.Millisecond {
		t.Fatalf("DeleteRedirectDelay = %s, want 800ms", cfg.DeleteRedirectDelay)
	}
	if cfg.AuthUserHeader != "X-Forwarded-User" {
		t.Fatalf("AuthUserHeader = %q", cfg.AuthUserHeader)
	}
}

func TestLoad_RequiresManagerAPIURL(t *testing.T) {
	clearEnv(t)

	if _, err := Load(); err == nil {
		t.Fatal("expected MANAGER_API_URL error")
	}
}

func TestLoadForMigrations_RequiresDatabaseURL(t *testing.T) {
	clearEnv(t)

	if _, err := LoadForMigrations(); err == nil {
		t.Fatal("expected DATABASE_URL error")
	}
}

func TestLoadWithOptions_ParsesOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MANAGER_API_URL", "https://manager.example.com/apiman/")
	t.Setenv("PLUGIN_BASE_PATH", "console/")
	t.Setenv("DELETE_REDIRECT_DELAY", "2s")
	t.Setenv("DIALOG_TTL", "not-a-duration")
	t.Setenv("AUTH_COOKIE_SECURE", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ManagerAPIURL != "https://manager.example.com/apiman" {
		t.Fatalf("ManagerAPIURL = %q", cfg.ManagerAPIURL)
	}
	if cfg.PluginBasePath != "/console" {
		t.Fatalf("PluginBasePath = %q, want %q", cfg.PluginBasePath, "/console")
	}
	if cfg.DeleteRedirectDelay != 2*time.Second {
		t.Fatalf("DeleteRedirectDelay = %s, want 2s", cfg.DeleteRedirectDelay)
	}
	if cfg.DialogTTL != defaultDialogTTL {
		t.Fatalf("DialogTTL = %s, want default %s", cfg.DialogTTL, defaultDialogTTL)
	}
	if !cfg.AuthCookieSecure {
		t.Fatal("AuthCookieSecure = false, want true")
	}
}
