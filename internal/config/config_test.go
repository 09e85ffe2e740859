package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	cfg, err := Load(nil, env(nil))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "DEFAULT", cfg.GameType)
	assert.True(t, cfg.Color)
	assert.False(t, cfg.InMemory)
	assert.NotEmpty(t, cfg.DataDir)
}

func TestLoadEnvAndFlags(t *testing.T) {
	cfg, err := Load([]string{"-log-level", "debug", "-type", "5+3"}, env(map[string]string{
		"CHESSRULES_DATA_DIR":   "/tmp/chess",
		"CHESSRULES_LOG_LEVEL":  "WARN",
		"CHESSRULES_LOG_FORMAT": "JSON",
		"CHESSRULES_IN_MEMORY":  "true",
		"CHESSRULES_COLOR":      "0",
	}))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/chess", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel, "flag beats env")
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "5+3", cfg.GameType)
	assert.True(t, cfg.InMemory)
	assert.False(t, cfg.Color)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"bad bool env", nil, map[string]string{"CHESSRULES_IN_MEMORY": "maybe"}},
		{"bad format", []string{"-log-format", "xml"}, nil},
		{"unknown flag", []string{"-nope"}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(tc.args, env(tc.env))
			assert.Error(t, err)
		})
	}
}
