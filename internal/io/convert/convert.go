// Package convert re-serializes a completed parquet export as
// row-oriented JSON or as a GeoJSON FeatureCollection. It runs
// independently of the export pipeline and only ever reads files the
// writer has already published.
package convert

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/climbdata/climbex/internal/io/parquetio"
	"github.com/climbdata/climbex/pkg/config"
)

type kind int

const (
	kindJSON kind = iota
	kindGeoJSON
)

// outputKind infers the conversion mode from the destination
// extension. Anything but .json or .geojson is a configuration error,
// raised before the source is opened.
func outputKind(dest string) (kind, error) {
	switch filepath.Ext(dest) {
	case ".json":
		return kindJSON, nil
	case ".geojson":
		return kindGeoJSON, nil
	}
	return 0, OutputKindError(dest)
}

// Run converts the parquet file src into dest. Row order of the
// output equals row order of the source file.
func Run(log *slog.Logger, src, dest string, cfg *config.ConvertConfig) error {
	mode, err := outputKind(dest)
	if err != nil {
		return err
	}

	file, err := parquetio.Read(src)
	if err != nil {
		return err
	}

	switch mode {
	case kindGeoJSON:
		err = writeGeoJSON(file, dest, cfg)
	default:
		err = writeJSON(file, dest)
	}
	if err != nil {
		return err
	}

	log.Info("conversion complete",
		"source", src, "destination", dest, "rows", len(file.Rows()))
	return nil
}

// writeJSON emits one JSON object per row, keyed by column name.
// Columns that are null in the source appear as explicit JSON nulls.
func writeJSON(file *parquetio.File, dest string) error {
	out := make([]map[string]any, 0, len(file.Rows()))
	for _, row := range file.Rows() {
		out = append(out, objectFor(row, file.Columns(), nil))
	}
	return writeFile(dest, out)
}

// writeGeoJSON emits a FeatureCollection of Point features. A row
// missing either coordinate is dropped: emitting a fabricated
// coordinate would poison every map built from the file, and a
// feature with null geometry carries no more information than the
// plain JSON output already does.
func writeGeoJSON(
	file *parquetio.File, dest string, cfg *config.ConvertConfig,
) error {
	latCol, lngCol := cfg.LatitudeColumn, cfg.LongitudeColumn
	cols := file.Columns()
	if !slices.Contains(cols, latCol) || !slices.Contains(cols, lngCol) {
		return ColumnError(latCol, lngCol)
	}

	fc := featureCollection{Type: "FeatureCollection", Features: []feature{}}
	skip := []string{latCol, lngCol}
	for _, row := range file.Rows() {
		lat, okLat := row[latCol].(float64)
		lng, okLng := row[lngCol].(float64)
		if !okLat || !okLng {
			continue
		}
		fc.Features = append(fc.Features, feature{
			Type: "Feature",
			Geometry: geometry{
				Type: "Point",
				// GeoJSON wants longitude first.
				Coordinates: [2]float64{lng, lat},
			},
			Properties: objectFor(row, cols, skip),
		})
	}

	return writeFile(dest, &fc)
}

// objectFor builds the JSON object of one row: every column except the
// skipped ones, absent values as explicit nulls.
func objectFor(row map[string]any, cols, skip []string) map[string]any {
	obj := make(map[string]any, len(cols))
	for _, col := range cols {
		if slices.Contains(skip, col) {
			continue
		}
		v, ok := row[col]
		if !ok {
			obj[col] = nil
			continue
		}
		obj[col] = v
	}
	return obj
}

// writeFile encodes v into a temporary file next to dest and renames
// it into place, so a failed conversion leaves no partial output.
func writeFile(dest string, v any) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".climbex-*")
	if err != nil {
		return WriteError(dest, err)
	}
	tmpPath := tmp.Name()
	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpPath)
		return WriteError(dest, err)
	}

	if err := json.NewEncoder(tmp).Encode(v); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return WriteError(dest, err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return WriteError(dest, err)
	}
	return nil
}

type geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

type feature struct {
	Type       string         `json:"type"`
	Geometry   geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}
