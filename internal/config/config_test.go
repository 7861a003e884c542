package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 120.0, cfg.PPIDefault)
	assert.False(t, cfg.ExportXLSX)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, filepath.IsAbs(cfg.RawDataDir))
	assert.Equal(t, "IAC_Database_20250208.xlsx", filepath.Base(cfg.IACPath()))
	assert.Equal(t, "ppi_tidy.csv", filepath.Base(cfg.OutputPath("ppi_tidy.csv")))
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("OUTPUT_DIR", dir)
	t.Setenv("PPI_DEFAULT", "95.5")
	t.Setenv("EXPORT_XLSX", "true")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.OutputDir)
	assert.Equal(t, 95.5, cfg.PPIDefault)
	assert.True(t, cfg.ExportXLSX)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "chatty")
	_, err := Load()
	require.Error(t, err)
}
