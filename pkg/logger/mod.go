package logger

import (
	"context"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
)

type ctxKey struct{}

type (
	// Level names a logging verbosity threshold.
	Level string

	// Logger is the structured logging contract used across the service.
	Logger interface {
		Debug(msg string, keyvals ...any)
		Info(msg string, keyvals ...any)
		Warn(msg string, keyvals ...any)
		Error(msg string, keyvals ...any)
		With(keyvals ...any) Logger
	}

	charmLogger struct {
		log *charmlog.Logger
	}
)

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

func (l Level) String() string {
	return string(l)
}

func (l Level) toCharm() charmlog.Level {
	switch l {
	case DebugLevel:
		return charmlog.DebugLevel
	case WarnLevel:
		return charmlog.WarnLevel
	case ErrorLevel:
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

// Config controls logger construction.
type Config struct {
	Level      Level
	Output     io.Writer
	JSON       bool
	AddSource  bool
	TimeFormat string
}

func DefaultConfig() *Config {
	return &Config{
		Level:      InfoLevel,
		Output:     os.Stdout,
		TimeFormat: "15:04:05",
	}
}

// New builds a logger backed by charmbracelet/log.
func New(cfg *Config) Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	impl := charmlog.NewWithOptions(out, charmlog.Options{
		ReportCaller:    cfg.AddSource,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           cfg.Level.toCharm(),
	})
	if cfg.JSON {
		impl.SetFormatter(charmlog.JSONFormatter)
	} else {
		impl.SetFormatter(charmlog.TextFormatter)
	}
	return &charmLogger{log: impl}
}

func (l *charmLogger) Debug(msg string, keyvals ...any) { l.log.Debug(msg, keyvals...) }
func (l *charmLogger) Info(msg string, keyvals ...any)  { l.log.Info(msg, keyvals...) }
func (l *charmLogger) Warn(msg string, keyvals ...any)  { l.log.Warn(msg, keyvals...) }
func (l *charmLogger) Error(msg string, keyvals ...any) { l.log.Error(msg, keyvals...) }

func (l *charmLogger) With(keyvals ...any) Logger {
	return &charmLogger{log: l.log.With(keyvals...)}
}

// ContextWithLogger attaches a logger to the context for downstream retrieval.
func ContextWithLogger(ctx context.Context, log Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// FromContext returns the logger attached to ctx, falling back to a default
// logger so callers never receive nil.
func FromContext(ctx context.Context) Logger {
	if ctx != nil {
		if log, ok := ctx.Value(ctxKey{}).(Logger); ok && log != nil {
			return log
		}
	}
	return New(DefaultConfig())
}
