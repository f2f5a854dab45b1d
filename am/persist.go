package am

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/qntx-braket/errors"
	"github.com/teranos/qntx-braket/logger"
)

// BackupCount is how many rotated copies of a config file are kept.
const BackupCount = 3

// createBackup rotates path.back1..back3 and copies path to .back1.
func createBackup(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	oldest := backupName(path, BackupCount)
	if err := os.Remove(oldest); err != nil && !os.IsNotExist(err) {
		logger.Warnw("Failed to delete old config backup", logger.FieldPath, oldest, logger.FieldError, err)
	}
	for i := BackupCount - 1; i >= 1; i-- {
		from := backupName(path, i)
		if _, err := os.Stat(from); err == nil {
			if err := os.Rename(from, backupName(path, i+1)); err != nil {
				return errors.Wrapf(err, "failed to rotate %s", filepath.Base(from))
			}
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}
	if err := os.WriteFile(backupName(path, 1), content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}
	return nil
}

func backupName(path string, n int) string {
	return path + ".back" + strconv.Itoa(n)
}

func isBackupFile(path string) bool {
	return strings.Contains(filepath.Base(path), ".toml.back")
}

// WriteConfig marshals cfg to path as TOML, backing up any existing file.
func WriteConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), DefaultDirPermissions); err != nil {
		return errors.Wrapf(err, "failed to create %s", filepath.Dir(path))
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	return writeWithBackup(path, data)
}

// WriteDefault writes the default configuration to path. An existing file
// is only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.WithHint(errors.Newf("config file %s already exists", path), "pass --force to overwrite it (a backup is kept)")
	}
	return WriteConfig(path, Default())
}

// UpdateSetting sets one dotted key (e.g. "braket.default_device_arn") in
// the file at path, leaving the other keys untouched.
func UpdateSetting(path, key string, value any) error {
	section, name, ok := strings.Cut(key, ".")
	if !ok || section == "" || name == "" {
		return errors.NewInvalidRequestError("setting key must be section.name, got %q", key)
	}

	doc := map[string]any{}
	if data, err := os.ReadFile(path); err == nil {
		if err := toml.Unmarshal(data, &doc); err != nil {
			return errors.Wrapf(err, "failed to parse %s", path)
		}
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to read %s", path)
	}

	table, _ := doc[section].(map[string]any)
	if table == nil {
		table = map[string]any{}
	}
	table[name] = value
	doc[section] = table

	data, err := toml.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	if err := os.MkdirAll(filepath.Dir(path), DefaultDirPermissions); err != nil {
		return errors.Wrapf(err, "failed to create %s", filepath.Dir(path))
	}
	return writeWithBackup(path, data)
}

func writeWithBackup(path string, data []byte) error {
	if err := createBackup(path); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}
	if w := GetGlobalWatcher(); w != nil {
		w.MarkOwnWrite()
	}
	if err := os.WriteFile(path, data, DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
