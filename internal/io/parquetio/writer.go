// Package parquetio serializes output tables to parquet files and
// reads them back. It uses the segmentio/parquet-go library; the
// on-disk byte layout is the library's concern, not ours.
package parquetio

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/climbdata/climbex/pkg/relation"
	"github.com/climbdata/climbex/pkg/schema"
	"github.com/segmentio/parquet-go"
)

// Write serializes the table to dest with the named compression codec.
// The write is whole-file: rows go to a temporary file in the
// destination directory which is renamed over dest only after a clean
// close, so a failed run never leaves a partial file behind.
func Write(
	log *slog.Logger, table *schema.Table, dest, codecName string,
) error {
	codec, err := Codec(codecName)
	if err != nil {
		return err
	}
	sch := buildSchema(table.Columns)

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".climbex-*.parquet")
	if err != nil {
		return OutputError(dest, err)
	}
	tmpPath := tmp.Name()
	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpPath)
		return OutputError(dest, err)
	}

	w := parquet.NewWriter(tmp, sch, parquet.Compression(codec))
	cols := leafColumns(table.Columns)

	bar := pb.Full.Start(len(table.Rows))
	bar.Set(pb.CleanOnFinish, true)
	for _, row := range table.Rows {
		if _, err := w.WriteRows([]parquet.Row{rowValues(cols, row)}); err != nil {
			bar.Finish()
			return fail(err)
		}
		bar.Increment()
	}
	bar.Finish()

	if err := w.Close(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return OutputError(dest, err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return OutputError(dest, err)
	}

	if stat, err := os.Stat(dest); err == nil {
		log.Info("export written",
			"file", dest,
			"rows", len(table.Rows),
			"bytes", stat.Size(),
			"compression", codecName,
		)
	}
	return nil
}

// leafColumns orders the compiled columns the way the parquet schema
// lays out its leaves: parquet.Group sorts fields by name, so leaf
// column indexes follow the sorted column names.
func leafColumns(cols []schema.Column) []schema.Column {
	sorted := slices.Clone(cols)
	slices.SortFunc(sorted, func(a, b schema.Column) int {
		return strings.Compare(a.Name, b.Name)
	})
	return sorted
}

// rowValues flattens one output row into a parquet row, one value per
// leaf in leaf order. An absent propagate-column becomes a null value
// at definition level zero; token lists emit one value per element.
func rowValues(cols []schema.Column, row schema.Row) parquet.Row {
	out := make(parquet.Row, 0, len(cols))
	for i, col := range cols {
		v := row[col.Name]

		if col.Type == relation.KindStringList {
			tokens, _ := v.([]string)
			if len(tokens) == 0 {
				out = append(out, parquet.ValueOf(nil).Level(0, 0, i))
				continue
			}
			for j, tok := range tokens {
				rep := 0
				if j > 0 {
					rep = 1
				}
				out = append(out, parquet.ValueOf(tok).Level(rep, 1, i))
			}
			continue
		}

		if v == nil {
			out = append(out, parquet.ValueOf(nil).Level(0, 0, i))
			continue
		}
		out = append(out, parquet.ValueOf(v).Level(0, 1, i))
	}
	return out
}

// buildSchema maps the compiled column signature to a parquet schema.
// Scalar columns are optional leaves so propagated absence round-trips
// as null; path-token lists are repeated strings.
func buildSchema(cols []schema.Column) *parquet.Schema {
	group := parquet.Group{}
	for _, col := range cols {
		var node parquet.Node
		switch col.Type {
		case relation.KindString:
			node = parquet.Optional(parquet.String())
		case relation.KindBool:
			node = parquet.Optional(parquet.Leaf(parquet.BooleanType))
		case relation.KindInt:
			node = parquet.Optional(parquet.Int(64))
		case relation.KindDouble:
			node = parquet.Optional(parquet.Leaf(parquet.DoubleType))
		case relation.KindStringList:
			node = parquet.Repeated(parquet.String())
		}
		group[col.Name] = node
	}
	return parquet.NewSchema("climbs", group)
}
