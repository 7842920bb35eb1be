package config

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plugins.yaml")

	store, err := NewStore(path)
	require.NoError(t, err)

	// Unknown plugin yields an empty document.
	doc, err := store.Get("grid")
	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(doc))

	require.NoError(t, store.Set("grid", []byte(`{"cells": 16, "color": "gray"}`)))

	doc, err = store.Get("grid")
	require.NoError(t, err)

	var values map[string]any
	require.NoError(t, json.Unmarshal(doc, &values))
	assert.Equal(t, float64(16), values["cells"])
	assert.Equal(t, "gray", values["color"])

	// Settings survive a reopen.
	reopened, err := NewStore(path)
	require.NoError(t, err)
	doc, err = reopened.Get("grid")
	require.NoError(t, err)
	assert.Contains(t, string(doc), "gray")
}

func TestStoreRejectsInvalidJSON(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "plugins.yaml"))
	require.NoError(t, err)

	assert.Error(t, store.Set("grid", []byte("not json")))
}

func TestStoreDelete(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "plugins.yaml"))
	require.NoError(t, err)

	require.NoError(t, store.Set("grid", []byte(`{"cells": 4}`)))
	require.NoError(t, store.Delete("grid"))
	require.NoError(t, store.Delete("grid")) // idempotent.

	doc, err := store.Get("grid")
	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(doc))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "plugins", cfg.Plugin.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "human", cfg.Log.Format)
	assert.Equal(t, "strata", cfg.Viewer.Title)
	assert.NotNil(t, cfg.Viper())
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("STRATA_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}
