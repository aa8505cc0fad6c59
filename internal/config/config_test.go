package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "burstid.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(path, true)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
prefix = "S"
format = "decimal"
log_level = "debug"
`)
	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, "S", cfg.Prefix)
	assert.Equal(t, "decimal", cfg.Format)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Partial(t *testing.T) {
	cfg, err := Load(writeConfig(t, `prefix = "TS"`), true)
	require.NoError(t, err)
	assert.Equal(t, "TS", cfg.Prefix)
	assert.Equal(t, Default().Format, cfg.Format)
	assert.Equal(t, Default().LogLevel, cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"Syntax":       `prefix = `,
		"UnknownField": `network = "main"`,
		"Format":       `format = "crockford"`,
		"LogLevel":     `log_level = "loud"`,
		"Prefix":       `prefix = "BUR-ST"`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body), true)
			assert.Error(t, err)
		})
	}
}
