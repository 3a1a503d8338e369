package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.NoError(t, testConfig().Validate())
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tolerance = 0
	cfg.MaxDistance = -1
	cfg.MaxChainSteps = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "tolerance must be positive")
	assert.ErrorContains(t, err, "max-distance must be positive")
	assert.ErrorContains(t, err, "max-chain-steps")
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stepcable.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0666))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addConfigFlags(fs)
	require.NoError(t, fs.Parse(nil))

	cfg, err := loadConfig("", fs)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigPrecedence(t *testing.T) {
	path := writeConfig(t, `
tolerance: 0.2
min-points: 9
attach-segments: true
locality-window: 6
`)
	t.Setenv("STEPCABLE_LOCALITY_WINDOW", "8")
	t.Setenv("STEPCABLE_PAIR_TOLERANCE", "0.05")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addConfigFlags(fs)
	require.NoError(t, fs.Parse([]string{"--min-points=7"}))

	cfg, err := loadConfig(path, fs)
	require.NoError(t, err)
	assert.Equal(t, 0.2, cfg.Tolerance)      // File
	assert.True(t, cfg.AttachSegments)       // File
	assert.Equal(t, 8, cfg.LocalityWindow)   // Env beats file
	assert.Equal(t, 0.05, cfg.PairTolerance) // Env
	assert.Equal(t, 7, cfg.MinPoints)        // Flag beats file
	assert.Equal(t, 3, cfg.MinSplines)       // Default
}

func TestLoadConfigInvalid(t *testing.T) {
	_, err := loadConfig(writeConfig(t, "max-distance: -1\n"), nil)
	assert.ErrorContains(t, err, "max-distance")

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.ErrorContains(t, err, "reading config")
}
