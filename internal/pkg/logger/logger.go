package logger

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Setup builds the service logger: JSON in production, colorized tint
// output everywhere else. The returned logger is also installed as the
// slog default.
func Setup(environment string) *slog.Logger {
	var handler slog.Handler
	if environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.DateTime,
		})
	}

	log := slog.New(handler).With("service", "attio-sync")
	slog.SetDefault(log)
	return log
}
