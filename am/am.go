// Package am loads the qntx-braket configuration: defaults, TOML files and
// QNTX_* environment variables merged through viper.
package am

// Config is the complete service configuration.
type Config struct {
	Braket        BraketConfig        `mapstructure:"braket" toml:"braket"`
	Server        ServerConfig        `mapstructure:"server" toml:"server"`
	Visualization VisualizationConfig `mapstructure:"visualization" toml:"visualization"`
	Log           LogConfig           `mapstructure:"log" toml:"log"`
}

// BraketConfig configures the AWS side.
type BraketConfig struct {
	Region            string  `mapstructure:"region" toml:"region"`
	DefaultDeviceARN  string  `mapstructure:"default_device_arn" toml:"default_device_arn"`
	S3Bucket          string  `mapstructure:"s3_bucket" toml:"s3_bucket"` // empty = amazon-braket-<region>-<account>
	S3Prefix          string  `mapstructure:"s3_prefix" toml:"s3_prefix"`
	DefaultShots      int     `mapstructure:"default_shots" toml:"default_shots"`
	MaxShots          int     `mapstructure:"max_shots" toml:"max_shots"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" toml:"requests_per_second"`
	Burst             int     `mapstructure:"burst" toml:"burst"`
	ValidateAccess    bool    `mapstructure:"validate_access" toml:"validate_access"` // warn at start-up if credentials fail
}

// ServerConfig configures the MCP server.
type ServerConfig struct {
	Name      string `mapstructure:"name" toml:"name"`
	Transport string `mapstructure:"transport" toml:"transport"` // stdio or http
	Address   string `mapstructure:"address" toml:"address"`     // listen address for http
}

// VisualizationConfig configures where rendered diagrams go.
type VisualizationConfig struct {
	WorkspaceDir string `mapstructure:"workspace_dir" toml:"workspace_dir"` // empty = OS temp dir
	Catalog      bool   `mapstructure:"catalog" toml:"catalog"`
	CatalogPath  string `mapstructure:"catalog_path" toml:"catalog_path"` // empty = <workspace>/braket_visualizations/catalog.db
}

// LogConfig configures logging.
type LogConfig struct {
	JSON  bool   `mapstructure:"json" toml:"json"`
	Theme string `mapstructure:"theme" toml:"theme"` // gruvbox, everforest
}

// Transports
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// ConfigFileName is looked up in /etc/qntx, ~/.qntx and the working tree.
const ConfigFileName = "braket.toml"

// File system constants
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)
