package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.fmods.dev/fmods/internal/adapters/config"
	"go.fmods.dev/fmods/internal/core/domain"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	store, err := config.NewStore(config.WithPath(filepath.Join(t.TempDir(), "config.yaml")))
	require.NoError(t, err)

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.True(t, cfg.Ask)
	assert.Empty(t, cfg.DefaultInstance)
	assert.Empty(t, cfg.Instances)
}

func TestLoad_UnreadableFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o600))

	store, err := config.NewStore(config.WithPath(path))
	require.NoError(t, err)

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.True(t, cfg.Ask)
}

func TestSaveLoad_Roundtrip(t *testing.T) {
	// The config directory does not exist yet; Save must create it.
	path := filepath.Join(t.TempDir(), "fmods", "config.yaml")
	store, err := config.NewStore(config.WithPath(path))
	require.NoError(t, err)

	saved := &domain.Config{
		Ask:             false,
		DefaultInstance: "main",
		Instances: map[string]string{
			"main": "/opt/factorio",
			"beta": "/opt/factorio-beta",
		},
	}
	require.NoError(t, store.Save(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestSave_ParsableYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	store, err := config.NewStore(config.WithPath(path))
	require.NoError(t, err)

	require.NoError(t, store.Save(domain.DefaultConfig()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ask:")
}
