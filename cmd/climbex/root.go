package main

import (
	"fmt"
	"log/slog"

	ioconfig "github.com/climbdata/climbex/internal/io/config"
	pkgconfig "github.com/climbdata/climbex/pkg/config"
	"github.com/climbdata/climbex/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *pkgconfig.Config
	log     *slog.Logger
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "climbex",
		Short: "climbex exports the OpenBeta climb catalog for analysis",
		Long: `climbex is a CLI tool for exporting the crowd-sourced OpenBeta catalog
of climbing routes into a columnar file for offline analysis, and for
converting such exports into row-oriented JSON or GeoJSON.

The tool provides two commands:
  - export: fetch the catalog, apply a declarative schema, write parquet
  - convert: turn an existing parquet export into JSON or GeoJSON

Configuration precedence (highest to lowest):
  1. CLI flags (--output, --compression, etc.)
  2. Environment variables (CLIMBEX_*)
  3. Config file (climbex.yaml)
  4. Built-in defaults

Environment Variables:
  All configuration can be set via CLIMBEX_* environment variables.
  Nested fields use underscores (export.compression → CLIMBEX_EXPORT_COMPRESSION).

  Examples:
    CLIMBEX_API_URL                 GraphQL endpoint
    CLIMBEX_API_PAGE_SIZE           Areas per page request
    CLIMBEX_EXPORT_OUTPUT           Destination parquet file
    CLIMBEX_EXPORT_COMPRESSION      Codec (none/snappy/gzip/zstd/brotli/lz4)
    CLIMBEX_LOG_LEVEL               Log level (debug/info/warn/error)

  See 'go doc github.com/climbdata/climbex/pkg/config' for complete list.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Auto-generate config file on first run if it doesn't exist
			if cfgFile == "" {
				exists, err := ioconfig.ConfigFileExists()
				if err != nil {
					return fmt.Errorf("failed to check config file: %w", err)
				}

				if !exists {
					generatedPath, err := ioconfig.GenerateDefaultConfig()
					if err != nil {
						// Only warn, don't fail - can use defaults
						fmt.Printf("Warning: could not generate config file: %v\n", err)
					} else {
						fmt.Printf("Generated default config at: %s\n", generatedPath)
					}
				}
			}

			result, err := ioconfig.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			cfg = result
			log = logger.New(&cfg.Log)

			return nil
		},
	}

	// Persistent flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./climbex.yaml or ~/.config/climbex/climbex.yaml)")

	// Override version flag to use -V
	rootCmd.Flags().BoolP("version", "V", false, "version for climbex")

	rootCmd.AddCommand(getExportCmd())
	rootCmd.AddCommand(getConvertCmd())

	return rootCmd
}

// getConfig returns the loaded configuration (for use in subcommands)
func getConfig() *pkgconfig.Config {
	return cfg
}
