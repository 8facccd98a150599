package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	ioconfig "github.com/climbdata/climbex/internal/io/config"
	"github.com/climbdata/climbex/internal/io/fetch"
	"github.com/climbdata/climbex/internal/io/parquetio"
	"github.com/climbdata/climbex/pkg/relation"
	"github.com/climbdata/climbex/pkg/schema"
	"github.com/spf13/cobra"
)

func getExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exports the climb catalog to a parquet file",
		Long: `Exports the OpenBeta climb catalog to a columnar parquet file.

This command:
  1. Compiles the declarative schema and validates the codec up front
  2. Fetches all pages of the catalog with bounded retries
  3. Applies the schema's projections and row filter
  4. Writes the parquet file atomically (temp file + rename)

A failed run never leaves a partial output file; a previous valid
export at the same path stays intact.

Examples:
  climbex export
  climbex export --schema schemas/filtered.yaml --region USA
  climbex export --output climbs.parquet --compression zstd`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig()
			if err := ioconfig.BindFlags(cmd, cfg); err != nil {
				return err
			}

			// Schema and codec problems must surface before any
			// network traffic or file I/O.
			doc, err := schema.Load(cfg.Export.SchemaFile)
			if err != nil {
				return err
			}
			plan, err := doc.Compile()
			if err != nil {
				return err
			}
			if _, err := parquetio.Codec(cfg.Export.Compression); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(
				context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info("starting export",
				"schema", cfg.Export.SchemaFile,
				"output", cfg.Export.Output,
				"regions", cfg.Export.Regions,
			)

			fetcher := fetch.New(cfg, log)
			climbs, err := fetcher.Fetch(ctx)
			if err != nil {
				return err
			}
			if len(climbs) == 0 {
				return fetch.EmptyError(cfg.Export.Regions)
			}

			store := relation.New()
			store.Ingest(climbs)

			table := plan.Execute(store)
			if len(table.Rows) == 0 {
				return fetch.EmptyError(cfg.Export.Regions)
			}
			err = parquetio.Write(
				log, table, cfg.Export.Output, cfg.Export.Compression)
			if err != nil {
				return err
			}

			log.Info("export complete",
				"fetched", store.Len(), "written", len(table.Rows))
			return nil
		},
	}

	cmd.Flags().StringP("schema", "s", "",
		"declarative schema file (default from config)")
	cmd.Flags().StringP("output", "o", "", "destination parquet file")
	cmd.Flags().String("compression", "",
		"codec: none, snappy, gzip, zstd, brotli, lz4")
	cmd.Flags().StringSlice("region", nil,
		"limit export to these countries (first path token)")

	return cmd
}
