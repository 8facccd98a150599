package main

import (
	"github.com/climbdata/climbex/internal/io/convert"
	"github.com/spf13/cobra"
)

func getConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <dest.json|dest.geojson> [source.parquet]",
		Short: "Converts a parquet export to JSON or GeoJSON",
		Long: `Converts a completed parquet export to row-oriented JSON or to a
GeoJSON FeatureCollection. The output kind is inferred from the
destination extension; the source defaults to the configured export
output file.

GeoJSON conversion reads point geometry from the latitude/longitude
columns and drops rows missing either coordinate.

Examples:
  climbex convert climbs.json
  climbex convert climbs.geojson openbeta-climbs.parquet`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig()

			dest := args[0]
			src := cfg.Export.Output
			if len(args) == 2 {
				src = args[1]
			}

			return convert.Run(log, src, dest, &cfg.Convert)
		},
	}
	return cmd
}
