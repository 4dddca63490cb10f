package kala

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadRunConfigTOML(t *testing.T) {
	path := writeConfig(t, "app.toml", `
title = "Solin"
width = 1280
height = 720
vsync = true
debug = true
font = "assets/ui.kfont"

[background]
r = 0.2
g = 0.3
b = 0.4
a = 1.0
`)
	cfg, err := LoadRunConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Solin", cfg.Title)
	assert.Equal(t, 1280, cfg.Width)
	assert.Equal(t, 720, cfg.Height)
	assert.True(t, cfg.VSync)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "assets/ui.kfont", cfg.FontPath)
	assert.InDelta(t, 0.3, cfg.Background.G, 1e-9)
	assert.Equal(t, DefaultTPS, cfg.TPS)
	assert.Equal(t, DefaultScreenshotDir, cfg.ScreenshotDir)
}

func TestLoadRunConfigYAML(t *testing.T) {
	path := writeConfig(t, "app.yaml", `
title: Solin
width: 640
tps: 30
run_when_unfocused: true
`)
	cfg, err := LoadRunConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Solin", cfg.Title)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, DefaultHeight, cfg.Height)
	assert.Equal(t, 30, cfg.TPS)
	assert.True(t, cfg.RunWhenUnfocused)
	assert.Equal(t, DefaultBackground, cfg.Background)
}

func TestLoadRunConfigEmptyYAML(t *testing.T) {
	cfg, err := LoadRunConfig(writeConfig(t, "empty.yml", ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultRunConfig(), cfg)
}

func TestLoadRunConfigUnknownKey(t *testing.T) {
	_, err := LoadRunConfig(writeConfig(t, "bad.toml", `colour = "red"`))
	assert.Error(t, err)

	_, err = LoadRunConfig(writeConfig(t, "bad.yaml", "colour: red\n"))
	assert.Error(t, err)
}

func TestLoadRunConfigFormat(t *testing.T) {
	_, err := LoadRunConfig(writeConfig(t, "app.json", `{}`))
	assert.ErrorIs(t, err, ErrConfigFormat)
}

func TestLoadRunConfigMissing(t *testing.T) {
	_, err := LoadRunConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefaultRunConfig(t *testing.T) {
	cfg := DefaultRunConfig()
	assert.Equal(t, DefaultTitle, cfg.Title)
	assert.Equal(t, DefaultWidth, cfg.Width)
	assert.Equal(t, DefaultHeight, cfg.Height)
	assert.False(t, cfg.Debug)
}
