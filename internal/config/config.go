package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr            = ":8080"
	defaultMetricsAddr         = "off"
	defaultPluginBasePath      = "/api-manager"
	defaultUIPathPrefix        = "apimanui"
	defaultAuthUserHeader      = "X-Forwarded-User"
	defaultDeleteRedirectDelay = 800 * time.Millisecond
	defaultDialogTTL           = 30 * time.Minute
	defaultManagerTimeout      = 30 * time.Second
)

type Config struct {
	HTTPAddr            string
	MetricsAddr         string
	DatabaseURL         string
	ManagerAPIURL       string
	ManagerAPIToken     string
	ManagerTimeout      time.Duration
	PluginBasePath      string
	UIPathPrefix        string
	BackToConsoleURL    string
	LogoutURL           string
	AuthUserHeader      string
	AuthCookieSecure    bool
	DeleteRedirectDelay time.Duration
	DialogTTL           time.Duration
}

type LoadOptions struct {
	RequireDatabaseURL   bool
	RequireManagerAPIURL bool
}

// Load reads the configuration needed by the serve command.
func Load() (Config, error) {
	return LoadWithOptions(LoadOptions{RequireManagerAPIURL: true})
}

// LoadForMigrations reads the configuration needed by the migrate command.
func LoadForMigrations() (Config, error) {
	return LoadWithOptions(LoadOptions{RequireDatabaseURL: true})
}

func LoadWithOptions(opts LoadOptions) (Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, err
		}
	}

	cfg := Config{
		HTTPAddr:            getenvDefault("HTTP_ADDR", defaultHTTPAddr),
		MetricsAddr:         getenvDefault("METRICS_ADDR", defaultMetricsAddr),
		DatabaseURL:         strings.TrimSpace(os.Getenv("DATABASE_URL")),
		ManagerAPIURL:       strings.TrimRight(strings.TrimSpace(os.Getenv("MANAGER_API_URL")), "/"),
		ManagerAPIToken:     strings.TrimSpace(os.Getenv("MANAGER_API_TOKEN")),
		ManagerTimeout:      getenvDurationDefault("MANAGER_API_TIMEOUT", defaultManagerTimeout),
		PluginBasePath:      normalizeBasePath(getenvDefault("PLUGIN_BASE_PATH", defaultPluginBasePath)),
		UIPathPrefix:        strings.Trim(getenvDefault("UI_PATH_PREFIX", defaultUIPathPrefix), "/ "),
		BackToConsoleURL:    getenvDefault("BACK_TO_CONSOLE_URL", "/"),
		LogoutURL:           getenvDefault("LOGOUT_URL", "/logout"),
		AuthUserHeader:      getenvDefault("AUTH_USER_HEADER", defaultAuthUserHeader),
		AuthCookieSecure:    getenvBoolDefault("AUTH_COOKIE_SECURE", false),
		DeleteRedirectDelay: getenvDurationDefault("DELETE_REDIRECT_DELAY", defaultDeleteRedirectDelay),
		DialogTTL:           getenvDurationDefault("DIALOG_TTL", defaultDialogTTL),
	}

	if opts.RequireDatabaseURL && cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is required")
	}
	if opts.RequireManagerAPIURL && cfg.ManagerAPIURL == "" {
		return cfg, errors.New("MANAGER_API_URL is required")
	}

	return cfg, nil
}

// normalizeBasePath returns "/segment" form: one leading slash, no trailing slash.
// An empty or root path maps to "".
func normalizeBasePath(raw string) string {
	trimmed := strings.Trim(strings.TrimSpace(raw), "/")
	if trimmed == "" {
		return ""
	}
	return "/" + trimmed
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvDurationDefault(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return def
	}
	return d
}

func getenvBoolDefault(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	switch v {
	case "1":
		return true
	case "0":
		return false
	default:
		return def
	}
}
