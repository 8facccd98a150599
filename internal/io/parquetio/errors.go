package parquetio

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/climbdata/climbex/pkg/errcode"
	"github.com/gnames/gn"
)

// CodecError creates an error for an unrecognized compression codec.
func CodecError(name string) error {
	valid := slices.Sorted(maps.Keys(codecs))
	msg := `Unrecognized compression codec

<em>Codec:</em> %s
<em>Valid codecs:</em> %s`

	return &gn.Error{
		Code: errcode.ConfigCodecError,
		Msg:  msg,
		Vars: []any{name, strings.Join(valid, ", ")},
		Err:  fmt.Errorf("unrecognized codec %q", name),
	}
}

// OutputError creates an error for a failed parquet write. The
// destination is left untouched.
func OutputError(dest string, err error) error {
	msg := `Cannot write parquet output

<em>Destination:</em> %s

The destination was not modified; a previous valid file stays intact.`

	return &gn.Error{
		Code: errcode.WriteOutputError,
		Msg:  msg,
		Vars: []any{dest},
		Err:  err,
	}
}

// ReadError creates an error for an unreadable or malformed parquet
// source file.
func ReadError(src string, err error) error {
	msg := `Cannot read parquet file

<em>Source:</em> %s

<em>How to fix:</em>
  1. Check that the file exists
  2. Check that it is a completed climbex export`

	return &gn.Error{
		Code: errcode.ConvertReadError,
		Msg:  msg,
		Vars: []any{src},
		Err:  err,
	}
}
