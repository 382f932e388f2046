package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetOutputRedirectsLogs(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	Logger().Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestDisableSilencesOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	Disable()
	defer SetLevel(zerolog.InfoLevel)

	Logger().Info().Msg("should not appear")
	assert.Empty(t, buf.String())
}
