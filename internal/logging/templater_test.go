package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		args     []any
		want     string
	}{
		{name: "no args", template: "Current user is {0}.", want: "Current user is {0}."},
		{name: "single", template: "Current user is {0}.", args: []any{"bwayne"}, want: "Current user is bwayne."},
		{name: "reordered", template: "{1} then {0}", args: []any{"a", "b"}, want: "b then a"},
		{name: "missing index", template: "{0} {3}", args: []any{"x"}, want: "x {3}"},
		{name: "not a number", template: "{name} {0}", args: []any{"x"}, want: "{name} x"},
		{name: "unterminated", template: "value {0", args: []any{"x"}, want: "value {0"},
		{name: "error arg", template: "failed: {0}", args: []any{errors.New("boom")}, want: "failed: boom"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Format(tc.template, tc.args...); got != tc.want {
				t.Fatalf("Format(%q) = %q, want %q", tc.template, got, tc.want)
			}
		})
	}
}

func TestTemplaterErrorAttachesErrorAttr(t *testing.T) {
	var out bytes.Buffer
	logger := NewLogger(Config{Format: "json", Level: slog.LevelDebug}, &out, "apiman-ui serve")

	NewTemplater(logger).Error("Unable to update org description: {0}", errors.New("409 conflict"))

	var payload map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(out.String())), &payload); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if got := payload["msg"]; got != "Unable to update org description: 409 conflict" {
		t.Fatalf("msg = %v", got)
	}
	if got := payload["level"]; got != "ERROR" {
		t.Fatalf("level = %v, want ERROR", got)
	}
	if got := payload["error"]; got != "409 conflict" {
		t.Fatalf("error = %v, want %q", got, "409 conflict")
	}
}

func TestTemplaterLogRespectsLevel(t *testing.T) {
	var out bytes.Buffer
	logger := NewLogger(Config{Format: "json", Level: slog.LevelInfo}, &out, "")

	NewTemplater(logger).Log("Current user is {0}.", "bwayne")

	if out.Len() != 0 {
		t.Fatalf("expected debug message to be filtered, got %q", out.String())
	}
}
