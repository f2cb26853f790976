package log

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

const timeFormat = "15:04:05.000"

var (
	mu   sync.Mutex
	sink io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: timeFormat}
	root           = zerolog.New(sink).With().Timestamp().Logger()
)

// New returns a logger tagged with the given module name.
// Loggers created before SetSink keep writing to the old sink.
func New(name string) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return root.With().Str("module", name).Logger()
}

// SetSink overrides the output of loggers created afterwards.
// Console formatting is kept when color is true.
func SetSink(w io.Writer, color bool) {
	mu.Lock()
	defer mu.Unlock()
	if color {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: timeFormat}
	}
	sink = w
	root = zerolog.New(sink).With().Timestamp().Logger()
}

// SetLevel applies to every logger, whenever it was created.
func SetLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}

func init() {
	SetLevel(zerolog.InfoLevel)
}
