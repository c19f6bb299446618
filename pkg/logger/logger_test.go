package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestGetBeforeInitPanics(t *testing.T) {
	Reset()
	defer Reset()

	assert.Panics(t, func() { Get() })
}

func TestInitThenGet(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	Init(Options{Level: "info", Output: &buf})

	log := Get()
	log.Info().Str("component", "test").Msg("hello")

	assert.Contains(t, buf.String(), `"hello"`)
	assert.Contains(t, buf.String(), `"component":"test"`)
}

func TestInitOnlyOnce(t *testing.T) {
	Reset()
	defer Reset()

	var first bytes.Buffer
	Init(Options{Level: "info", Output: &first})

	var second bytes.Buffer
	Init(Options{Level: "debug", Output: &second})

	log := Get()
	log.Info().Msg("routed")

	assert.Contains(t, first.String(), "routed")
	assert.Empty(t, second.String())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("WARN"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("nonsense"))
}
