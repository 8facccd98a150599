package convert_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/climbdata/climbex/internal/io/convert"
	"github.com/climbdata/climbex/internal/io/parquetio"
	"github.com/climbdata/climbex/pkg/climb"
	"github.com/climbdata/climbex/pkg/config"
	"github.com/climbdata/climbex/pkg/errcode"
	"github.com/climbdata/climbex/pkg/relation"
	"github.com/climbdata/climbex/pkg/schema"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func assertConvCode(t *testing.T, err error, code gn.ErrorCode) {
	t.Helper()
	var gerr *gn.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, code, gerr.Code)
}

// exportFixture writes a small three-row export: two geolocated rows
// and one missing its longitude.
func exportFixture(t *testing.T, dir string) string {
	t.Helper()
	doc := schema.Document{
		Columns: []schema.ColumnDef{
			{Name: "climb_id", Path: "uuid", Type: "string"},
			{Name: "climb_name", Path: "name", Type: "string"},
			{Name: "grade_yds", Path: "grades.yds", Type: "string"},
			{Name: "latitude", Path: "metadata.lat", Type: "double"},
			{Name: "longitude", Path: "metadata.lng", Type: "double"},
		},
	}
	plan, err := doc.Compile()
	require.NoError(t, err)

	store := relation.New()
	store.Ingest([]climb.Climb{
		{
			UUID: "a", Name: "The Nose",
			Grades:   climb.Grades{YDS: ptr("5.9")},
			Metadata: climb.Metadata{Lat: ptr(37.5), Lng: ptr(-122.3)},
		},
		{
			UUID: "b", Name: "Lost Coordinates",
			Metadata: climb.Metadata{Lat: ptr(40.0)},
		},
		{
			UUID: "c", Name: "Biographie",
			Metadata: climb.Metadata{Lat: ptr(44.26), Lng: ptr(5.45)},
		},
	})
	table := plan.Execute(store)

	src := filepath.Join(dir, "climbs.parquet")
	require.NoError(t, parquetio.Write(discard(), table, src, "snappy"))
	return src
}

func TestConvertJSON(t *testing.T) {
	dir := t.TempDir()
	src := exportFixture(t, dir)
	dest := filepath.Join(dir, "climbs.json")

	cfg := config.New()
	require.NoError(t, convert.Run(discard(), src, dest, &cfg.Convert))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 3)

	// values survive the round trip exactly
	assert.Equal(t, "The Nose", rows[0]["climb_name"])
	assert.Equal(t, "5.9", rows[0]["grade_yds"])
	assert.Equal(t, 37.5, rows[0]["latitude"])
	assert.Equal(t, -122.3, rows[0]["longitude"])

	// absence becomes an explicit JSON null, not a missing key
	v, ok := rows[1]["longitude"]
	require.True(t, ok)
	assert.Nil(t, v)
	g, ok := rows[1]["grade_yds"]
	require.True(t, ok)
	assert.Nil(t, g)
}

func TestConvertGeoJSON(t *testing.T) {
	dir := t.TempDir()
	src := exportFixture(t, dir)
	dest := filepath.Join(dir, "climbs.geojson")

	cfg := config.New()
	require.NoError(t, convert.Run(discard(), src, dest, &cfg.Convert))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Type     string `json:"type"`
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &fc))

	assert.Equal(t, "FeatureCollection", fc.Type)
	// the row without longitude is dropped, never fabricated
	require.Len(t, fc.Features, 2)

	first := fc.Features[0]
	assert.Equal(t, "Feature", first.Type)
	assert.Equal(t, "Point", first.Geometry.Type)
	// longitude first, latitude second
	assert.Equal(t, []float64{-122.3, 37.5}, first.Geometry.Coordinates)

	assert.Equal(t, "The Nose", first.Properties["climb_name"])
	_, hasLat := first.Properties["latitude"]
	_, hasLng := first.Properties["longitude"]
	assert.False(t, hasLat)
	assert.False(t, hasLng)

	assert.Equal(t,
		[]float64{5.45, 44.26}, fc.Features[1].Geometry.Coordinates)
}

func TestConvertUnknownKind(t *testing.T) {
	dir := t.TempDir()
	src := exportFixture(t, dir)

	cfg := config.New()
	err := convert.Run(discard(), src,
		filepath.Join(dir, "climbs.csv"), &cfg.Convert)
	require.Error(t, err)
	assertConvCode(t, err, errcode.ConfigOutputKindError)
}

func TestConvertGeoJSONWithoutCoordinateColumns(t *testing.T) {
	dir := t.TempDir()

	doc := schema.Document{
		Columns: []schema.ColumnDef{
			{Name: "climb_id", Path: "uuid", Type: "string"},
		},
	}
	plan, err := doc.Compile()
	require.NoError(t, err)
	store := relation.New()
	store.Ingest([]climb.Climb{{UUID: "a"}})

	src := filepath.Join(dir, "bare.parquet")
	require.NoError(t,
		parquetio.Write(discard(), plan.Execute(store), src, "none"))

	cfg := config.New()
	err = convert.Run(discard(), src,
		filepath.Join(dir, "bare.geojson"), &cfg.Convert)
	require.Error(t, err)
	assertConvCode(t, err, errcode.ConvertColumnError)
}

func TestConvertUnwritableDestination(t *testing.T) {
	dir := t.TempDir()
	src := exportFixture(t, dir)
	dest := filepath.Join(dir, "missing", "climbs.json")

	cfg := config.New()
	err := convert.Run(discard(), src, dest, &cfg.Convert)
	require.Error(t, err)
	assertConvCode(t, err, errcode.ConvertWriteError)

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}

func TestConvertMissingSource(t *testing.T) {
	dir := t.TempDir()
	cfg := config.New()
	err := convert.Run(discard(),
		filepath.Join(dir, "nope.parquet"),
		filepath.Join(dir, "out.json"), &cfg.Convert)
	require.Error(t, err)
	assertConvCode(t, err, errcode.ConvertReadError)
}
