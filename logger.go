package dbconnect

import (
	"log/slog"
	"os"
)

var logLevel = new(slog.LevelVar)

// ConfigureLogging sets up the global default logger with a TextHandler writing to stdout
// and configures the log level from the DBCONNECT_LOG_LEVEL environment variable.
// It defaults to Info level if not specified.
func ConfigureLogging() {
	logLevel.Set(levelFromEnv(os.Getenv("DBCONNECT_LOG_LEVEL")))

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// SetLogLevel sets the logging level for the logger configured by ConfigureLogging.
func SetLogLevel(level slog.Level) {
	logLevel.Set(level)
}

func levelFromEnv(lvl string) slog.Level {
	switch lvl {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	}
	return slog.LevelInfo
}
