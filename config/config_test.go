package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_Defaults(t *testing.T) {
	t.Setenv("QUOTE_SEED_DEMO", "")
	t.Setenv("QUOTE_TEMPLATES_FILE", "")
	t.Setenv("QUOTE_DEFAULT_TAX_RATE", "")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.True(t, cfg.SeedDemo)
	assert.Empty(t, cfg.TemplatesFile)
	assert.Zero(t, cfg.DefaultTaxRate)
}

func TestLoadFile_ReadsEnvFile(t *testing.T) {
	t.Setenv("QUOTE_SEED_DEMO", "")
	t.Setenv("QUOTE_TEMPLATES_FILE", "")
	t.Setenv("QUOTE_DEFAULT_TAX_RATE", "")
	// godotenv sets these directly; t.Setenv above restores them afterwards.

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("QUOTE_DEFAULT_TAX_RATE=0.0825\nQUOTE_TEMPLATES_FILE=templates.yaml\n"), 0o600))
	os.Unsetenv("QUOTE_DEFAULT_TAX_RATE")
	os.Unsetenv("QUOTE_TEMPLATES_FILE")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.0825, cfg.DefaultTaxRate, 1e-9)
	assert.Equal(t, "templates.yaml", cfg.TemplatesFile)
}

func TestLoadFile_EnvironmentWins(t *testing.T) {
	t.Setenv("QUOTE_SEED_DEMO", "false")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("QUOTE_SEED_DEMO=true\n"), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.False(t, cfg.SeedDemo)
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad bool", "QUOTE_SEED_DEMO", "maybe"},
		{"bad number", "QUOTE_DEFAULT_TAX_RATE", "eight"},
		{"rate out of range", "QUOTE_DEFAULT_TAX_RATE", "1.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("QUOTE_SEED_DEMO", "")
			t.Setenv("QUOTE_DEFAULT_TAX_RATE", "")
			t.Setenv(tt.key, tt.val)
			_, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}
