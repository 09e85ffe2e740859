package logx

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, Options{Level: "debug", Format: "json"})
	require.NoError(t, err)

	logger.Debug().Str("notation", "Pe2e4/").Msg("move applied")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, "Pe2e4/", line["notation"])
	assert.Contains(t, line["caller"], "logx_test.go")
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, Options{Level: "warn", Format: "json"})
	require.NoError(t, err)
	logger.Info().Msg("hidden")
	assert.Zero(t, buf.Len())
}

func TestBadOptions(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewLogger(&buf, Options{Level: "loud"})
	assert.Error(t, err)
	_, err = NewLogger(&buf, Options{Format: "xml"})
	assert.Error(t, err)

	logger, err := NewLogger(&buf, Options{})
	require.NoError(t, err)
	logger.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
}
