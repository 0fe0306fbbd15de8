package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LOG_FORMAT selects json or text output; LOG_LEVEL the minimum severity.
// Templater.Log writes at debug, so the navigation bar's "Current user is"
// lines only show with LOG_LEVEL=debug.
const (
	EnvFormat = "LOG_FORMAT"
	EnvLevel  = "LOG_LEVEL"

	// AppName is attached to every line as the "app" attribute.
	AppName = "apiman-ui"
)

var levelNames = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

type Config struct {
	Format string
	Level  slog.Level
}

func DefaultConfig() Config {
	return Config{Format: "json", Level: slog.LevelInfo}
}

// LoadConfigFromEnv reads LOG_FORMAT and LOG_LEVEL. Unset values keep the
// defaults; unknown values are errors.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if format := envValue(EnvFormat); format != "" {
		if format != "json" && format != "text" {
			return Config{}, fmt.Errorf("%s must be one of: json, text", EnvFormat)
		}
		cfg.Format = format
	}
	if name := envValue(EnvLevel); name != "" {
		level, ok := levelNames[name]
		if !ok {
			return Config{}, fmt.Errorf("%s must be one of: debug, info, warn, error", EnvLevel)
		}
		cfg.Level = level
	}
	return cfg, nil
}

// NewLogger builds a logger tagged with the app name and the command path
// that is running ("apiman-ui serve").
func NewLogger(cfg Config, w io.Writer, command string) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}
	var handler slog.Handler = slog.NewJSONHandler(w, opts)
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(w, opts)
	}
	if command = strings.TrimSpace(command); command == "" {
		command = AppName
	}
	return slog.New(handler).With("app", AppName, "command", command)
}

// NewFromEnv always returns a usable logger. When the environment is
// invalid the logger uses the defaults and the error is returned alongside,
// so a command failing on its logging settings can still report that.
func NewFromEnv(command string, w io.Writer) (*slog.Logger, error) {
	cfg, err := LoadConfigFromEnv()
	if err != nil {
		return NewLogger(DefaultConfig(), w, command), err
	}
	return NewLogger(cfg, w, command), nil
}

// Bootstrap installs the logger for command as slog's default.
func Bootstrap(command string, w io.Writer) (*slog.Logger, error) {
	logger, err := NewFromEnv(command, w)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return logger, nil
}

// ForRequest returns the templater the console controllers log through while
// serving one request. requestID and username are attached when known.
func ForRequest(logger *slog.Logger, requestID, username string) *Templater {
	if logger == nil {
		logger = slog.Default()
	}
	if requestID != "" {
		logger = logger.With("request_id", requestID)
	}
	if username != "" {
		logger = logger.With("user", username)
	}
	return NewTemplater(logger)
}

func envValue(key string) string {
	return strings.ToLower(strings.TrimSpace(os.Getenv(key)))
}
