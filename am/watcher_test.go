package am

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, "[braket]\ndefault_device_arn = \"arn:first\"\n")

	w, err := NewConfigWatcher(path, func() (*Config, error) { return LoadFromFile(path) })
	require.NoError(t, err)
	defer w.Stop()
	w.SetDebounce(20 * time.Millisecond)

	got := make(chan string, 4)
	w.OnReload(func(c *Config) error {
		got <- c.Braket.DefaultDeviceARN
		return nil
	})
	w.Start()

	require.NoError(t, os.WriteFile(path, []byte("[braket]\ndefault_device_arn = \"arn:second\"\n"), 0o644))

	select {
	case arn := <-got:
		assert.Equal(t, "arn:second", arn)
	case <-time.After(5 * time.Second):
		t.Fatal("reload callback not called")
	}
}

func TestWatcherSkipsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, "")

	w, err := NewConfigWatcher(path, func() (*Config, error) { return LoadFromFile(path) })
	require.NoError(t, err)
	defer w.Stop()

	called := false
	w.OnReload(func(*Config) error { called = true; return nil })

	require.NoError(t, os.WriteFile(path, []byte("[braket]\ndefault_shots = 0\n"), 0o644))
	err = w.reload()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid")
	assert.False(t, called)
}

func TestOwnWriteFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, "")
	w, err := NewConfigWatcher(path, nil)
	require.NoError(t, err)
	defer w.Stop()

	assert.False(t, w.checkOwnWrite())
	w.MarkOwnWrite()
	assert.True(t, w.checkOwnWrite())
	assert.False(t, w.checkOwnWrite())
	assert.NoError(t, w.Stop(), "stop is idempotent")
}
