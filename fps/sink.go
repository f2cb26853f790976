package fps

import (
	"github.com/rs/zerolog"
)

// Sink receives already formatted text, a label on screen or a log line.
type Sink interface {
	SetText(txt string)
}

type SinkFunc func(txt string)

func (f SinkFunc) SetText(txt string) {
	f(txt)
}

func set(s Sink, txt string) {
	if s != nil {
		s.SetText(txt)
	}
}

// Sinks are the six outputs of a Tracker, any of them may be left nil.
//
// FPSHigh and MsLow both come from the shortest frame ever seen,
// FPSLow and MsHigh from the longest one.
type Sinks struct {
	FPS, Ms        Sink
	FPSHigh, MsLow Sink
	FPSLow, MsHigh Sink
}

// LogSink writes every value it receives at Level, tagged with Name.
type LogSink struct {
	Logger *zerolog.Logger
	Name   string
	Level  zerolog.Level
}

func (l LogSink) SetText(txt string) {
	l.Logger.WithLevel(l.Level).Str("stat", l.Name).Msg(txt)
}

// LogSinks names the six outputs after what they show.
func LogSinks(logger *zerolog.Logger, level zerolog.Level) Sinks {
	s := func(name string) Sink {
		return LogSink{Logger: logger, Name: name, Level: level}
	}
	return Sinks{
		FPS: s("fps"), Ms: s("ms"),
		FPSHigh: s("fps_high"), MsLow: s("ms_low"),
		FPSLow: s("fps_low"), MsHigh: s("ms_high"),
	}
}
