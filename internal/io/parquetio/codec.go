package parquetio

import (
	"github.com/segmentio/parquet-go"
	"github.com/segmentio/parquet-go/compress"
)

// codecs enumerates the recognized compression codec names.
var codecs = map[string]compress.Codec{
	"none":   &parquet.Uncompressed,
	"snappy": &parquet.Snappy,
	"gzip":   &parquet.Gzip,
	"zstd":   &parquet.Zstd,
	"brotli": &parquet.Brotli,
	"lz4":    &parquet.Lz4Raw,
}

// Codec resolves a configured codec name. An unrecognized name is a
// fatal configuration error, raised before any file is touched.
func Codec(name string) (compress.Codec, error) {
	codec, ok := codecs[name]
	if !ok {
		return nil, CodecError(name)
	}
	return codec, nil
}
