package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ".", c.DataDir)
	assert.Equal(t, "PlayersBBall.csv", c.PlayersFile)
	assert.Equal(t, "Education_Income.csv", c.EducationFile)
	assert.Equal(t, 30*time.Second, c.LoadTimeout())
	assert.Equal(t, 51, c.DensityPoints)
	assert.Equal(t, map[string]float64{"height_in": 2, "weight": 10}, c.Bandwidths)
	assert.Equal(t, []string{"C", "F"}, c.DensityCategories)
	assert.Equal(t, "info", c.LogLevel)
	assert.NoError(t, c.Validate())
	assert.Equal(t, ".", c.DataLocation())
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "statboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: /data\nbase_url: https://example.com/datasets\ndensity_points: 101\nlog_level: debug\n"), 0o644))
	t.Setenv("STATBOARD_LOAD_TIMEOUT_SEC", "5")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data", c.DataDir)
	assert.Equal(t, 101, c.DensityPoints)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, 5*time.Second, c.LoadTimeout())
	assert.Equal(t, "https://example.com/datasets", c.DataLocation())
}

func TestLoadMalformedFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("density_points: [\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	isolate(t)
	c, err := Load("")
	require.NoError(t, err)
	require.NoError(t, c.Set("bandwidths.weight", "12.5"))
	require.NoError(t, c.Set("density_categories", "C, G ,"))

	require.NoError(t, Save(c, ""))
	back, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 12.5, back.Bandwidths["weight"])
	assert.Equal(t, 2.0, back.Bandwidths["height_in"])
	assert.Equal(t, []string{"C", "G"}, back.DensityCategories)
}

func TestValidate(t *testing.T) {
	isolate(t)
	c, err := Load("")
	require.NoError(t, err)

	bad := *c
	bad.DensityPoints = 1
	bad.LogLevel = "loud"
	bad.BaseURL = "not a url"
	err = bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "density_points must be at least 2")
	assert.Contains(t, err.Error(), "log_level must be one of: debug, info, warn, error")
	assert.Contains(t, err.Error(), "base_url must be a valid URL")
}

func TestSet(t *testing.T) {
	isolate(t)
	c, err := Load("")
	require.NoError(t, err)

	require.NoError(t, c.Set("log_level", "WARN"))
	assert.Equal(t, "warn", c.LogLevel)
	require.NoError(t, c.Set("load_timeout_sec", "0"))
	assert.Zero(t, c.LoadTimeout())

	assert.Error(t, c.Set("bandwidths.weight", "-1"))
	assert.Error(t, c.Set("bandwidths.", "1"))
	assert.Error(t, c.Set("density_points", "many"))
	assert.ErrorContains(t, c.Set("api_key", "x"), "unknown key")
}

func TestLines(t *testing.T) {
	isolate(t)
	c, err := Load("")
	require.NoError(t, err)
	lines := c.Lines()
	assert.Contains(t, lines, "bandwidths.height_in: 2")
	assert.Contains(t, lines, "bandwidths.weight: 10")
	assert.Contains(t, lines, "density_categories: C,F")
	assert.Equal(t, "log_level: info", lines[len(lines)-1])
}
