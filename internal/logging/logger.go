// Package logging configures the process logger.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup returns a console logger at the given level. Unknown or empty
// levels fall back to info.
func Setup(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}

	return zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
}
