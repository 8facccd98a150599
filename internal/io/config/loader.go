// Package config provides I/O operations for loading configuration
// from files, environment variables and flags. This is an impure
// package that handles file system and flag operations.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/climbdata/climbex/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Load reads configuration from a YAML file and environment variables
// and returns a Config. If configPath is empty, it searches default
// locations:
//   - ./climbex.yaml
//   - ~/.config/climbex/climbex.yaml
//
// Returns error if the file is malformed.
func Load(configPath string) (*config.Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// Precedence: flags > env vars > config file > defaults
	v.SetEnvPrefix("CLIMBEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults BEFORE reading config - even if a config file
	// exists, defaults ensure viper knows which keys to check for
	// env vars with AutomaticEnv()
	cfg := config.New()
	setDefaults(v, cfg)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("climbex")
		v.AddConfigPath(".")
		homeDir, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".config", "climbex"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			return nil, LoadError(configPath, err)
		}
		// No usable config file; env vars and defaults still apply
		// through Unmarshal below.
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, LoadError(v.ConfigFileUsed(), err)
	}

	return cfg, nil
}

// setDefaults registers every config key with viper. Without this,
// AutomaticEnv() cannot surface env-only keys through Unmarshal.
func setDefaults(v *viper.Viper, cfg *config.Config) {
	v.SetDefault("api.url", cfg.API.URL)
	v.SetDefault("api.page_size", cfg.API.PageSize)
	v.SetDefault("api.timeout_sec", cfg.API.TimeoutSec)
	v.SetDefault("api.max_retries", cfg.API.MaxRetries)
	v.SetDefault("export.regions", cfg.Export.Regions)
	v.SetDefault("export.output", cfg.Export.Output)
	v.SetDefault("export.compression", cfg.Export.Compression)
	v.SetDefault("export.schema_file", cfg.Export.SchemaFile)
	v.SetDefault("convert.latitude_column", cfg.Convert.LatitudeColumn)
	v.SetDefault("convert.longitude_column", cfg.Convert.LongitudeColumn)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.level", cfg.Log.Level)
}

// BindFlags folds export command flags into the config. CLI flags take
// precedence over config file and environment values.
func BindFlags(cmd *cobra.Command, cfg *config.Config) error {
	v := viper.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	var opts []config.Option
	if v.IsSet("output") && cmd.Flags().Changed("output") {
		opts = append(opts, config.OptExportOutput(v.GetString("output")))
	}
	if v.IsSet("compression") && cmd.Flags().Changed("compression") {
		opts = append(opts,
			config.OptExportCompression(v.GetString("compression")))
	}
	if v.IsSet("schema") && cmd.Flags().Changed("schema") {
		opts = append(opts, config.OptExportSchemaFile(v.GetString("schema")))
	}
	if v.IsSet("region") && cmd.Flags().Changed("region") {
		opts = append(opts,
			config.OptExportRegions(v.GetStringSlice("region")))
	}

	cfg.Update(opts)
	return nil
}
