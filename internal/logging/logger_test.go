package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func decodeLine(t *testing.T, out *bytes.Buffer) map[string]any {
	t.Helper()
	line := strings.TrimSpace(out.String())
	if line == "" {
		t.Fatal("expected a JSON log line")
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		t.Fatalf("json.Unmarshal(%q) error = %v", line, err)
	}
	return payload
}

func TestLoadConfigFromEnv(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		level   string
		want    Config
		wantErr bool
	}{
		{name: "defaults", want: DefaultConfig()},
		{name: "text debug", format: "Text", level: " DEBUG ", want: Config{Format: "text", Level: slog.LevelDebug}},
		{name: "bad format", format: "yaml", wantErr: true},
		{name: "bad level", level: "trace", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvFormat, tt.format)
			t.Setenv(EnvLevel, tt.level)

			got, err := LoadConfigFromEnv()
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadConfigFromEnv() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Fatalf("LoadConfigFromEnv() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNewFromEnvFallsBackOnInvalidEnv(t *testing.T) {
	t.Setenv(EnvFormat, "yaml")
	t.Setenv(EnvLevel, "")

	var out bytes.Buffer
	logger, err := NewFromEnv("apiman-ui serve", &out)
	if err == nil {
		t.Fatal("expected invalid LOG_FORMAT error")
	}
	logger.Error("serve failed")

	payload := decodeLine(t, &out)
	if got := payload["app"]; got != AppName {
		t.Fatalf("app = %v, want %q", got, AppName)
	}
	if got := payload["command"]; got != "apiman-ui serve" {
		t.Fatalf("command = %v, want %q", got, "apiman-ui serve")
	}
}

func TestBootstrapDebugLevelEnablesNavigationTrace(t *testing.T) {
	t.Setenv(EnvFormat, "")
	t.Setenv(EnvLevel, "debug")
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var out bytes.Buffer
	logger, err := Bootstrap("apiman-ui serve", &out)
	if err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	if slog.Default() != logger {
		t.Fatal("Bootstrap() did not install the default logger")
	}

	// A nil logger resolves to the installed default.
	ForRequest(nil, "", "").Log("Current user is {0}.", "bwayne")

	payload := decodeLine(t, &out)
	if got := payload["msg"]; got != "Current user is bwayne." {
		t.Fatalf("msg = %v", got)
	}
}

func TestBootstrapRejectsInvalidLevel(t *testing.T) {
	t.Setenv(EnvFormat, "")
	t.Setenv(EnvLevel, "verbose")

	if _, err := Bootstrap("apiman-ui serve", &bytes.Buffer{}); err == nil {
		t.Fatal("expected invalid LOG_LEVEL error")
	}
}

func TestForRequestAttachesRequestScope(t *testing.T) {
	var out bytes.Buffer
	base := NewLogger(DefaultConfig(), &out, "apiman-ui serve")

	ForRequest(base, "req-42", "bwayne").Error("Request failed in {0}: {1}", "org-delete", "boom")

	payload := decodeLine(t, &out)
	if got := payload["request_id"]; got != "req-42" {
		t.Fatalf("request_id = %v, want %q", got, "req-42")
	}
	if got := payload["user"]; got != "bwayne" {
		t.Fatalf("user = %v, want %q", got, "bwayne")
	}
	if got := payload["msg"]; got != "Request failed in org-delete: boom" {
		t.Fatalf("msg = %v", got)
	}
}

func TestForRequestOmitsUnknownScope(t *testing.T) {
	var out bytes.Buffer
	ForRequest(NewLogger(DefaultConfig(), &out, ""), "", "").Info("ready")

	payload := decodeLine(t, &out)
	for _, key := range []string{"request_id", "user"} {
		if _, ok := payload[key]; ok {
			t.Fatalf("unexpected %s attribute in %v", key, payload)
		}
	}
	if got := payload["command"]; got != AppName {
		t.Fatalf("command = %v, want %q", got, AppName)
	}
}
