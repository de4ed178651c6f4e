package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigHasSaneDefaults(t *testing.T) {
	c := NewConfig()
	assert.Equal(t, 800, c.Window.Width)
	assert.Equal(t, "ebitengine", c.Video.Backend)
	assert.Equal(t, "NTSC", c.Emulation.Region)
	assert.False(t, c.IsLoaded())
}

func TestSaveToFileThenLoadFromFileRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gones.json")

	c := NewConfig()
	c.Video.Brightness = 1.5
	require.NoError(t, c.SaveToFile(path))

	loaded := NewConfig()
	require.NoError(t, loaded.LoadFromFile(path))
	assert.Equal(t, float32(1.5), loaded.Video.Brightness)
	assert.True(t, loaded.IsLoaded())
}

func TestLoadFromFileOnMissingPathWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing", "gones.json")

	c := NewConfig()
	require.NoError(t, c.LoadFromFile(path))
	assert.FileExists(t, path)
}

func TestValidateClampsOutOfRangeValues(t *testing.T) {
	c := NewConfig()
	c.Video.Brightness = 99.0
	c.Window.Scale = -1
	require.NoError(t, c.validate())
	assert.Equal(t, float32(1.0), c.Video.Brightness)
	assert.Equal(t, 1, c.Window.Scale)
}

func TestCloneProducesIndependentCopy(t *testing.T) {
	c := NewConfig()
	clone := c.Clone()
	clone.Video.Brightness = 2.0
	assert.NotEqual(t, c.Video.Brightness, clone.Video.Brightness)
}

func TestGetWindowResolutionScalesNESResolution(t *testing.T) {
	c := NewConfig()
	c.Window.Scale = 3
	w, h := c.GetWindowResolution()
	assert.Equal(t, 256*3, w)
	assert.Equal(t, 240*3, h)
}

func TestGetDefaultConfigPathEndsInGonesJSON(t *testing.T) {
	path := GetDefaultConfigPath()
	assert.Equal(t, "gones.json", filepath.Base(path))
}
