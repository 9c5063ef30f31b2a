package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults without file", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), zerolog.Nop())
		require.NoError(t, err)
		require.Equal(t, SourcesConfig{
			Format:     "csv",
			DateColumn: "Date",
			DateLayout: "2006-01-02",
			Oil:        "Oil.csv",
			Petrol:     "Petrol.csv",
			Plastic:    "Plastic.csv",
			Tar:        "Tar.csv",
		}, cfg.Sources)
		require.Equal(t, "info", cfg.Log.Level)
	})

	t.Run("file then environment", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
sources:
  format: parquet
  oil: data/oil.parquet
  tar: data/tar.parquet
log:
  level: debug
`), 0644))
		t.Setenv("PRICECORR_TAR", "/tmp/tar.parquet")

		cfg, err := LoadConfig(path, zerolog.Nop())
		require.NoError(t, err)
		require.Equal(t, "parquet", cfg.Sources.Format)
		require.Equal(t, "data/oil.parquet", cfg.Sources.Oil)
		require.Equal(t, "/tmp/tar.parquet", cfg.Sources.Tar)
		require.Equal(t, "Petrol.csv", cfg.Sources.Petrol)
		require.Equal(t, "debug", cfg.Log.Level)
	})
}
