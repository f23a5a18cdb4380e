package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

type ctxKey struct{}

// DefaultRedactedKeys covers the fields that must never reach the log
// output, per the explicit deny-list contract of the logger.
var DefaultRedactedKeys = []string{
	"password", "token", "secret", "authorization",
	"refresh_token", "access_token", "apikey",
}

// New builds a JSON logger at the given level. Attribute keys in redactKeys
// are scrubbed before emission.
func New(level string, redactKeys []string) *slog.Logger {
	lvl := new(slog.LevelVar)
	switch strings.ToLower(level) {
	case "debug":
		lvl.Set(slog.LevelDebug)
	case "warn":
		lvl.Set(slog.LevelWarn)
	case "error":
		lvl.Set(slog.LevelError)
	default:
		lvl.Set(slog.LevelInfo)
	}

	deny := make(map[string]struct{}, len(redactKeys))
	for _, k := range redactKeys {
		deny[strings.ToLower(k)] = struct{}{}
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if _, redacted := deny[strings.ToLower(a.Key)]; redacted {
				a.Value = slog.StringValue("[REDACTED]")
			}
			return a
		},
	})
	return slog.New(h)
}

func IntoContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

func FromContext(ctx context.Context) *slog.Logger {
	if v := ctx.Value(ctxKey{}); v != nil {
		if l, ok := v.(*slog.Logger); ok {
			return l
		}
	}
	return slog.Default()
}
