package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Log is the shared application logger. Call Init before first use.
var Log zerolog.Logger

// Init configures the global logger. In dev mode output is human-readable
// console format, otherwise JSON.
func Init(dev bool) {
	zerolog.TimeFieldFormat = time.RFC3339

	if dev {
		Log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
			With().Timestamp().Logger()
	} else {
		Log = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	if lvl, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && lvl != zerolog.NoLevel {
		Log = Log.Level(lvl)
	}
}

// IsDev reports whether the service runs outside production.
func IsDev() bool {
	return os.Getenv("APP_ENV") != "production"
}
