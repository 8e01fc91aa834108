// Package logging builds the zerolog logger shared by the CLI and the pipeline.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"catalogo/internal/config"
)

// New returns a console logger on stderr, or a JSON one when LOG_FORMAT=json.
func New(cfg config.Config) zerolog.Logger {
	return NewWithWriter(os.Stderr, cfg.LogFormat, cfg.LogLevel)
}

func NewWithWriter(w io.Writer, format, level string) zerolog.Logger {
	out := w
	if format != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
