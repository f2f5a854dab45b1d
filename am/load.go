package am

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/teranos/qntx-braket/errors"
)

var (
	loadMu       sync.Mutex
	globalConfig *Config
	globalViper  *viper.Viper
	activeFile   string
)

// Load returns the process configuration, reading it on first use.
func Load() (*Config, error) {
	loadMu.Lock()
	defer loadMu.Unlock()
	if globalConfig != nil {
		return globalConfig, nil
	}

	v, file, err := buildViper(configCandidates())
	if err != nil {
		return nil, err
	}
	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}
	globalConfig, globalViper, activeFile = cfg, v, file
	return cfg, nil
}

// LoadFiles builds a configuration from defaults, the given files (lowest
// precedence first) and the environment. Missing files are skipped.
func LoadFiles(paths ...string) (*Config, error) {
	candidates := make([]candidate, len(paths))
	for i, p := range paths {
		candidates[i] = candidate{path: p, source: SourceUser}
	}
	v, _, err := buildViper(candidates)
	if err != nil {
		return nil, err
	}
	return LoadWithViper(v)
}

// LoadWithViper unmarshals a prepared viper instance.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &cfg, nil
}

// LoadFromFile reads a single file over the defaults, ignoring the
// environment.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}
	return LoadWithViper(v)
}

// GetViper returns the viper instance behind Load.
func GetViper() *viper.Viper {
	if _, err := Load(); err != nil {
		v := viper.New()
		SetDefaults(v)
		return v
	}
	loadMu.Lock()
	defer loadMu.Unlock()
	return globalViper
}

// ActiveConfigFile is the highest-precedence file Load merged, or "".
func ActiveConfigFile() string {
	if _, err := Load(); err != nil {
		return ""
	}
	loadMu.Lock()
	defer loadMu.Unlock()
	return activeFile
}

// Reset drops the cached configuration so the next Load rereads it.
func Reset() {
	loadMu.Lock()
	defer loadMu.Unlock()
	globalConfig, globalViper, activeFile = nil, nil, ""
}

type candidate struct {
	path   string
	source ConfigSource
}

func configCandidates() []candidate {
	c := []candidate{{path: filepath.Join("/etc/qntx", ConfigFileName), source: SourceSystem}}
	if home, err := os.UserHomeDir(); err == nil {
		c = append(c, candidate{path: filepath.Join(home, ".qntx", ConfigFileName), source: SourceUser})
	}
	if project := findProjectConfig(); project != "" {
		c = append(c, candidate{path: project, source: SourceProject})
	}
	return c
}

// ConfigFilePaths lists candidate files, lowest precedence first: system,
// user, then the nearest braket.toml walking up from the working directory.
func ConfigFilePaths() []string {
	var paths []string
	for _, c := range configCandidates() {
		paths = append(paths, c.path)
	}
	return paths
}

// UserConfigPath is where `config init` writes by default.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ConfigFileName
	}
	return filepath.Join(home, ".qntx", ConfigFileName)
}

func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		path := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func buildViper(candidates []candidate) (*viper.Viper, string, error) {
	v := viper.New()
	v.SetEnvPrefix("QNTX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	BindEnvVars(v)
	SetDefaults(v)

	sources := make(map[string]SourceInfo)
	active := ""
	for _, c := range candidates {
		path := c.path
		if _, err := os.Stat(path); err != nil {
			continue
		}
		file := viper.New()
		file.SetConfigFile(path)
		file.SetConfigType("toml")
		if err := file.ReadInConfig(); err != nil {
			return nil, "", errors.WithHint(
				errors.Wrapf(err, "failed to read config file %s", path),
				"fix the TOML syntax or remove the file",
			)
		}
		// MergeConfigMap keeps environment variables above file values.
		if err := v.MergeConfigMap(file.AllSettings()); err != nil {
			return nil, "", errors.Wrapf(err, "failed to merge %s", path)
		}
		for _, key := range file.AllKeys() {
			sources[key] = SourceInfo{Source: c.source, Path: path}
		}
		active = path
	}

	setSources(sources)
	return v, active, nil
}
