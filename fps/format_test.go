package fps

import (
	"bytes"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	fpsTests := map[float64]string{
		0:           "0",
		0.4:         "0",
		59.6:        "60",
		144:         "144",
		999.4:       "999",
		999.6:       "1000",
		12345.2:     "12345",
		1000.5:      "1001",
		1002.5:      "1003",
		999.5:       "1000",
		math.Inf(1): "+Inf",
	}
	for in, want := range fpsTests {
		assert.Equal(t, want, FormatFPS(in), "FormatFPS(%v)", in)
	}

	msTests := map[float64]string{
		0:        "0.0",
		16.66666: "16.7",
		1:        "1.0",
		250.04:   "250.0",
	}
	for in, want := range msTests {
		assert.Equal(t, want, FormatMs(in), "FormatMs(%v)", in)
	}
}

func TestLogSinks(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	sinks := LogSinks(&logger, zerolog.InfoLevel)

	sinks.FPSHigh.SetText("240")
	sinks.MsHigh.SetText("33.3")

	out := buf.String()
	assert.Contains(t, out, `"stat":"fps_high"`)
	assert.Contains(t, out, `"message":"240"`)
	assert.Contains(t, out, `"stat":"ms_high"`)
	assert.Contains(t, out, `"level":"info"`)
}

func TestSinkFunc(t *testing.T) {
	t.Parallel()

	var got string
	tracker := New(0, Sinks{FPS: SinkFunc(func(txt string) { got = txt })})
	tracker.Frame(10_000_000, 10_000_000)
	assert.Equal(t, "100", got)
}
