package am

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/teranos/qntx-braket/braket"
)

// Default values
const (
	DefaultRegion            = "us-east-1"
	DefaultS3Prefix          = "braket-mcp"
	DefaultShots             = 1000
	DefaultMaxShots          = 100000
	DefaultRequestsPerSecond = 5.0
	DefaultBurst             = 5
	DefaultServerName        = "qntx-braket"
	DefaultAddress           = ":8765"
)

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("braket.region", DefaultRegion)
	v.SetDefault("braket.default_device_arn", braket.DefaultDeviceARN)
	v.SetDefault("braket.s3_bucket", "")
	v.SetDefault("braket.s3_prefix", DefaultS3Prefix)
	v.SetDefault("braket.default_shots", DefaultShots)
	v.SetDefault("braket.max_shots", DefaultMaxShots)
	v.SetDefault("braket.requests_per_second", DefaultRequestsPerSecond)
	v.SetDefault("braket.burst", DefaultBurst)
	v.SetDefault("braket.validate_access", true)

	v.SetDefault("server.name", DefaultServerName)
	v.SetDefault("server.transport", TransportStdio)
	v.SetDefault("server.address", DefaultAddress)

	v.SetDefault("visualization.workspace_dir", "")
	v.SetDefault("visualization.catalog", true)
	v.SetDefault("visualization.catalog_path", "")

	v.SetDefault("log.json", false)
	v.SetDefault("log.theme", "everforest")
}

// BindEnvVars binds keys whose environment names differ from QNTX_<KEY>.
func BindEnvVars(v *viper.Viper) {
	v.BindEnv("braket.region", "QNTX_BRAKET_REGION", "AWS_REGION")
}

// Default returns the configuration with only defaults applied.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, _ := LoadWithViper(v)
	return cfg
}

// GetWorkspaceDir returns the visualization workspace, defaulting to the
// OS temp dir.
func (c *Config) GetWorkspaceDir() string {
	if c.Visualization.WorkspaceDir == "" {
		return os.TempDir()
	}
	return c.Visualization.WorkspaceDir
}

// GetCatalogPath returns the catalog database path.
func (c *Config) GetCatalogPath() string {
	if c.Visualization.CatalogPath != "" {
		return c.Visualization.CatalogPath
	}
	return filepath.Join(c.GetWorkspaceDir(), "braket_visualizations", "catalog.db")
}

// ClampShots applies the configured default and ceiling to a requested
// shot count. Zero or negative means the default.
func (c *Config) ClampShots(requested int) int {
	if requested <= 0 {
		return c.Braket.DefaultShots
	}
	return min(requested, c.Braket.MaxShots)
}

// BraketOptions converts the braket section for braket.NewService.
func (c *Config) BraketOptions() braket.Options {
	return braket.Options{
		Region:            c.Braket.Region,
		DefaultDeviceARN:  c.Braket.DefaultDeviceARN,
		S3Bucket:          c.Braket.S3Bucket,
		S3Prefix:          c.Braket.S3Prefix,
		RequestsPerSecond: c.Braket.RequestsPerSecond,
		Burst:             c.Braket.Burst,
	}
}
