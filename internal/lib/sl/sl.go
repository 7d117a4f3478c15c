package sl

import (
	"io"
	"log/slog"
)

const (
	EnvLocal = "local"
	EnvProd  = "prod"
)

// Err позволяет передавать в атрибуты slog-логов ошибку как она есть (error type)
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// SetupLogger builds the logger for env: text/debug locally, json/info in prod.
func SetupLogger(env string, w io.Writer) *slog.Logger {
	var log *slog.Logger
	switch env {
	case EnvLocal:
		log = slog.New(
			slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case EnvProd:
		log = slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}
	return log
}

// SetupCLILogger builds the logger for a command line tool. Its stderr is read
// next to the report, so debug output is never enabled.
func SetupCLILogger(env string, w io.Writer) *slog.Logger {
	if env == EnvProd {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func NewDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
