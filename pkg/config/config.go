// Package config provides configuration management for climbex.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via
// gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > climbex.yaml >
// defaults.
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions
// - Invalid options are rejected with gn.Warn() - config stays valid
//
// # Environment Variables
//
// Use the CLIMBEX_ prefix with underscores for nesting:
//
//	CLIMBEX_API_URL=https://api.openbeta.io/graphql
//	CLIMBEX_API_PAGE_SIZE=500
//	CLIMBEX_EXPORT_COMPRESSION=zstd
//	CLIMBEX_LOG_LEVEL=debug
package config

// Config represents the complete climbex configuration.
type Config struct {
	// API contains settings for the OpenBeta GraphQL endpoint.
	API APIConfig `mapstructure:"api" yaml:"api"`

	// Export contains settings for the export command.
	Export ExportConfig `mapstructure:"export" yaml:"export"`

	// Convert contains settings for the convert command.
	Convert ConvertConfig `mapstructure:"convert" yaml:"convert"`

	Log LogConfig `mapstructure:"log" yaml:"log"`
}

// APIConfig contains the remote endpoint parameters.
type APIConfig struct {
	// URL is the GraphQL endpoint serving paginated area queries.
	URL string `mapstructure:"url" yaml:"url"`

	// PageSize bounds how many areas one page request may return.
	PageSize int `mapstructure:"page_size" yaml:"page_size"`

	// TimeoutSec is the per-request timeout in seconds.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`

	// MaxRetries bounds retry attempts per page before the whole
	// fetch aborts. Retries use exponential backoff.
	MaxRetries int `mapstructure:"max_retries" yaml:"max_retries"`
}

// ExportConfig contains settings for the export command.
type ExportConfig struct {
	// Regions limits the export to climbs whose first path token
	// (the country) is in the list. Empty means export everything.
	Regions []string `mapstructure:"regions" yaml:"regions"`

	// Output is the destination parquet filename.
	Output string `mapstructure:"output" yaml:"output"`

	// Compression is the parquet codec: none, snappy, gzip, zstd,
	// brotli or lz4. Unrecognized values abort the run before I/O.
	Compression string `mapstructure:"compression" yaml:"compression"`

	// SchemaFile points to the declarative transformation document.
	SchemaFile string `mapstructure:"schema_file" yaml:"schema_file"`
}

// ConvertConfig contains settings for the convert command.
type ConvertConfig struct {
	// LatitudeColumn and LongitudeColumn name the coordinate columns
	// GeoJSON conversion reads point geometry from.
	LatitudeColumn  string `mapstructure:"latitude_column" yaml:"latitude_column"`
	LongitudeColumn string `mapstructure:"longitude_column" yaml:"longitude_column"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format" yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level" yaml:"level"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	return &Config{
		API: APIConfig{
			URL:        "https://api.openbeta.io/graphql",
			PageSize:   500,
			TimeoutSec: 120,
			MaxRetries: 5,
		},
		Export: ExportConfig{
			Output:      "openbeta-climbs.parquet",
			Compression: "snappy",
			SchemaFile:  "schemas/minimal.yaml",
		},
		Convert: ConvertConfig{
			LatitudeColumn:  "latitude",
			LongitudeColumn: "longitude",
		},
		Log: LogConfig{
			Format: "text",
			Level:  "info",
		},
	}
}

// Update applies a slice of Option functions to the Config.
// Invalid options are rejected with warnings - config remains valid.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}
