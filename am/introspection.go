package am

import (
	"os"
	"sort"
	"strings"
	"sync"
)

// ConfigSource identifies where a value came from.
type ConfigSource string

const (
	SourceDefault     ConfigSource = "default"
	SourceSystem      ConfigSource = "system"      // /etc/qntx/braket.toml
	SourceUser        ConfigSource = "user"        // ~/.qntx/braket.toml
	SourceProject     ConfigSource = "project"     // nearest braket.toml
	SourceEnvironment ConfigSource = "environment" // QNTX_* or AWS_REGION
)

// SourceInfo pairs a source with its file path or variable name.
type SourceInfo struct {
	Source ConfigSource
	Path   string
}

// SettingInfo is one effective setting and its origin.
type SettingInfo struct {
	Key        string       `json:"key"`
	Value      any          `json:"value"`
	Source     ConfigSource `json:"source"`
	SourcePath string       `json:"source_path,omitempty"`
}

var (
	sourcesMu     sync.RWMutex
	configSources = map[string]SourceInfo{}
)

func setSources(s map[string]SourceInfo) {
	sourcesMu.Lock()
	configSources = s
	sourcesMu.Unlock()
}

// envAliases lists non-QNTX variables bound to a key.
var envAliases = map[string][]string{
	"braket.region": {"AWS_REGION"},
}

// Introspect lists every effective setting of the loaded configuration,
// sorted by key, with the source that supplied it.
func Introspect() []SettingInfo {
	v := GetViper()

	sourcesMu.RLock()
	defer sourcesMu.RUnlock()

	keys := v.AllKeys()
	sort.Strings(keys)
	settings := make([]SettingInfo, 0, len(keys))
	for _, key := range keys {
		info := SourceInfo{Source: SourceDefault, Path: "built-in default"}
		if si, ok := configSources[key]; ok {
			info = si
		}
		if name, ok := envOverride(key); ok {
			info = SourceInfo{Source: SourceEnvironment, Path: name}
		}
		settings = append(settings, SettingInfo{
			Key:        key,
			Value:      v.Get(key),
			Source:     info.Source,
			SourcePath: info.Path,
		})
	}
	return settings
}

func envOverride(key string) (string, bool) {
	names := append([]string{"QNTX_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}, envAliases[key]...)
	for _, name := range names {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			return name, true
		}
	}
	return "", false
}
