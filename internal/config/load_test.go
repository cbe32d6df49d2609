//go:build !tinygo

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FileNotExists(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_PartialYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "joyhmi.yaml")
	yamlContent := `
board: sim
pins:
  button_a: 17
timing:
  interval: 50ms
  heartbeat: 1m
bootloader:
  command: ["/usr/local/bin/flash", "--latest"]
`
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BoardSim, cfg.Board)
	assert.Equal(t, 17, cfg.Pins.ButtonA)
	assert.Equal(t, 6, cfg.Pins.ButtonB, "unset pins keep their defaults")
	assert.Equal(t, 50*time.Millisecond, cfg.Timing.Interval)
	assert.Equal(t, time.Minute, cfg.Timing.Heartbeat)
	assert.Equal(t, 200*time.Millisecond, cfg.Timing.Debounce)
	assert.Equal(t, []string{"/usr/local/bin/flash", "--latest"}, cfg.Bootloader.Command)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("invalid: yaml: content: ["), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")
	cfg := Default()
	cfg.Board = BoardSim
	cfg.Timing.Settle = 250 * time.Millisecond

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
