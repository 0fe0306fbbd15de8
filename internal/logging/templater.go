package logging

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Templater is the fire-and-forget logging collaborator used by the console
// controllers. Messages carry positional placeholders ("{0}", "{1}", ...)
// that are filled from the call arguments.
type Templater struct {
	logger *slog.Logger
}

// NewTemplater wraps logger. A nil logger falls back to slog.Default at call time.
func NewTemplater(logger *slog.Logger) *Templater {
	return &Templater{logger: logger}
}

// Log records a debug-level message.
func (t *Templater) Log(template string, args ...any) {
	t.emit(slog.LevelDebug, template, args)
}

// Info records an info-level message.
func (t *Templater) Info(template string, args ...any) {
	t.emit(slog.LevelInfo, template, args)
}

// Warn records a warn-level message.
func (t *Templater) Warn(template string, args ...any) {
	t.emit(slog.LevelWarn, template, args)
}

// Error records an error-level message. Error values among args are also
// attached as the "error" attribute.
func (t *Templater) Error(template string, args ...any) {
	t.emit(slog.LevelError, template, args)
}

func (t *Templater) emit(level slog.Level, template string, args []any) {
	logger := slog.Default()
	if t != nil && t.logger != nil {
		logger = t.logger
	}
	ctx := context.Background()
	if !logger.Enabled(ctx, level) {
		return
	}

	attrs := []any{"template", template}
	for _, arg := range args {
		if err, ok := arg.(error); ok && err != nil {
			attrs = append(attrs, "error", err)
			break
		}
	}
	logger.Log(ctx, level, Format(template, args...), attrs...)
}

// Format fills "{n}" placeholders in template with the n-th argument.
// Placeholders without a matching argument are left untouched.
func Format(template string, args ...any) string {
	if len(args) == 0 || !strings.Contains(template, "{") {
		return template
	}

	var b strings.Builder
	b.Grow(len(template))
	for i := 0; i < len(template); i++ {
		ch := template[i]
		if ch != '{' {
			b.WriteByte(ch)
			continue
		}
		end := strings.IndexByte(template[i+1:], '}')
		if end <= 0 {
			b.WriteByte(ch)
			continue
		}
		idx, err := strconv.Atoi(template[i+1 : i+1+end])
		if err != nil || idx < 0 || idx >= len(args) {
			b.WriteByte(ch)
			continue
		}
		b.WriteString(fmt.Sprint(args[idx]))
		i += end + 1
	}
	return b.String()
}
