package log

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewAndLevel(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf, false)
	defer SetLevel(zerolog.InfoLevel)

	logger := New("Test")
	logger.Info().Msg("hello")
	assert.Contains(t, buf.String(), `"module":"Test"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)

	buf.Reset()
	SetLevel(zerolog.WarnLevel)
	logger.Info().Msg("dropped")
	assert.Empty(t, buf.String())
}
