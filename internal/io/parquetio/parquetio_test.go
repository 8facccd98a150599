package parquetio_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/climbdata/climbex/internal/io/parquetio"
	"github.com/climbdata/climbex/pkg/climb"
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

func assertIOCode(t *testing.T, err error, code gn.ErrorCode) {
	t.Helper()
	var gerr *gn.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, code, gerr.Code)
}

// testTable runs a small schema over two records, one of them sparse,
// so the table carries defaults, propagated nulls and a token list.
func testTable(t *testing.T) *schema.Table {
	t.Helper()
	doc := schema.Document{
		Columns: []schema.ColumnDef{
			{Name: "climb_id", Path: "uuid", Type: "string"},
			{Name: "grade_yds", Path: "grades.yds", Type: "string",
				Default: ""},
			{Name: "latitude", Path: "metadata.lat", Type: "double"},
			{Name: "length_meters", Path: "length", Type: "integer"},
			{Name: "is_sport", Path: "type.sport", Type: "boolean"},
			{Name: "path_tokens", Path: "pathTokens", Type: "string_list"},
		},
	}
	plan, err := doc.Compile()
	require.NoError(t, err)

	store := relation.New()
	store.Ingest([]climb.Climb{
		{
			UUID:       "a",
			Grades:     climb.Grades{YDS: ptr("5.10a")},
			Metadata:   climb.Metadata{Lat: ptr(37.5)},
			Length:     ptr(int64(25)),
			Type:       climb.TypeFlags{Sport: ptr(true)},
			PathTokens: []string{"USA", "California"},
		},
		{UUID: "b", PathTokens: []string{"Canada"}},
	})
	return plan.Execute(store)
}

func TestCodec(t *testing.T) {
	for _, name := range []string{
		"none", "snappy", "gzip", "zstd", "brotli", "lz4",
	} {
		t.Run(name, func(t *testing.T) {
			codec, err := parquetio.Codec(name)
			require.NoError(t, err)
			assert.NotNil(t, codec)
		})
	}
}

func TestCodecUnknown(t *testing.T) {
	_, err := parquetio.Codec("deflate")
	require.Error(t, err)
	assertIOCode(t, err, errcode.ConfigCodecError)
}

func TestWriteReadRoundTrip(t *testing.T) {
	table := testTable(t)
	dest := filepath.Join(t.TempDir(), "climbs.parquet")

	err := parquetio.Write(discard(), table, dest, "snappy")
	require.NoError(t, err)

	file, err := parquetio.Read(dest)
	require.NoError(t, err)
	require.Len(t, file.Rows(), 2)
	assert.ElementsMatch(t, []string{
		"climb_id", "grade_yds", "latitude", "length_meters",
		"is_sport", "path_tokens",
	}, file.Columns())

	full := file.Rows()[0]
	assert.Equal(t, "a", full["climb_id"])
	assert.Equal(t, "5.10a", full["grade_yds"])
	assert.Equal(t, 37.5, full["latitude"])
	assert.Equal(t, int64(25), full["length_meters"])
	assert.Equal(t, true, full["is_sport"])
	tokens, err := json.Marshal(full["path_tokens"])
	require.NoError(t, err)
	assert.JSONEq(t, `["USA","California"]`, string(tokens))

	// sparse row: default applied, propagated nulls absent
	sparse := file.Rows()[1]
	assert.Equal(t, "b", sparse["climb_id"])
	assert.Equal(t, "", sparse["grade_yds"])
	_, hasLat := sparse["latitude"]
	assert.False(t, hasLat)
	_, hasSport := sparse["is_sport"]
	assert.False(t, hasSport)
}

// Columns are declared in projection order but stored in the parquet
// schema's leaf order; every value must still land in its own column.
// The record carries no path tokens, exercising the empty repeated
// field.
func TestWriteReadLeafOrder(t *testing.T) {
	doc := schema.Document{
		Columns: []schema.ColumnDef{
			{Name: "longitude", Path: "metadata.lng", Type: "double"},
			{Name: "climb_name", Path: "name", Type: "string"},
			{Name: "latitude", Path: "metadata.lat", Type: "double"},
			{Name: "path_tokens", Path: "pathTokens", Type: "string_list"},
		},
	}
	plan, err := doc.Compile()
	require.NoError(t, err)

	store := relation.New()
	store.Ingest([]climb.Climb{
		{
			UUID: "a", Name: "Separate Reality",
			Metadata: climb.Metadata{Lat: ptr(37.72), Lng: ptr(-119.57)},
		},
	})
	dest := filepath.Join(t.TempDir(), "order.parquet")
	require.NoError(t,
		parquetio.Write(discard(), plan.Execute(store), dest, "none"))

	file, err := parquetio.Read(dest)
	require.NoError(t, err)
	require.Len(t, file.Rows(), 1)

	row := file.Rows()[0]
	assert.Equal(t, "Separate Reality", row["climb_name"])
	assert.Equal(t, 37.72, row["latitude"])
	assert.Equal(t, -119.57, row["longitude"])
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "climbs.parquet")

	err := parquetio.Write(discard(), testTable(t), dest, "none")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "climbs.parquet", entries[0].Name())
}

func TestWriteUnknownCodecBeforeIO(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "climbs.parquet")

	err := parquetio.Write(discard(), testTable(t), dest, "bzip2")
	require.Error(t, err)
	assertIOCode(t, err, errcode.ConfigCodecError)

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteUnwritableDestination(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "missing", "climbs.parquet")

	err := parquetio.Write(discard(), testTable(t), dest, "snappy")
	require.Error(t, err)
	assertIOCode(t, err, errcode.WriteOutputError)

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}

func TestReadMissingFile(t *testing.T) {
	_, err := parquetio.Read(filepath.Join(t.TempDir(), "nope.parquet"))
	require.Error(t, err)
	assertIOCode(t, err, errcode.ConvertReadError)
}

func TestReadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.parquet")
	require.NoError(t, os.WriteFile(path, []byte("not parquet"), 0o644))

	_, err := parquetio.Read(path)
	require.Error(t, err)
	assertIOCode(t, err, errcode.ConvertReadError)
}
