package am

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDefaultRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".qntx", ConfigFileName)
	require.NoError(t, WriteDefault(path, false))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestWriteDefaultRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, "[server]\nname = \"mine\"\n")

	err := WriteDefault(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, WriteDefault(path, true))
	backup, err := os.ReadFile(path + ".back1")
	require.NoError(t, err)
	assert.Contains(t, string(backup), "mine")
}

func TestBackupRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	for _, gen := range []string{"1", "2", "3", "4", "5"} {
		writeFile(t, path, "generation = "+gen+"\n")
		require.NoError(t, createBackup(path))
	}

	for n, want := range map[int]string{1: "5", 2: "4", 3: "3"} {
		data, err := os.ReadFile(backupName(path, n))
		require.NoError(t, err)
		assert.Equal(t, "generation = "+want+"\n", string(data))
	}
	_, err := os.Stat(path + ".back4")
	assert.True(t, os.IsNotExist(err))
}

func TestUpdateSetting(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, "[braket]\nregion = \"us-west-1\"\n")

	require.NoError(t, UpdateSetting(path, "braket.default_device_arn", "arn:aws:braket:::device/quantum-simulator/amazon/dm1"))
	require.NoError(t, UpdateSetting(path, "server.transport", "http"))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "us-west-1", cfg.Braket.Region)
	assert.Equal(t, "arn:aws:braket:::device/quantum-simulator/amazon/dm1", cfg.Braket.DefaultDeviceARN)
	assert.Equal(t, TransportHTTP, cfg.Server.Transport)

	assert.Error(t, UpdateSetting(path, "nodot", 1))
}

func TestIsBackupFile(t *testing.T) {
	assert.True(t, isBackupFile("/x/braket.toml.back2"))
	assert.False(t, isBackupFile("/x/braket.toml"))
}
