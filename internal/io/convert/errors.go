package convert

import (
	"fmt"

	"github.com/climbdata/climbex/pkg/errcode"
	"github.com/gnames/gn"
)

// OutputKindError creates an error for a destination whose extension
// maps to no known output kind.
func OutputKindError(dest string) error {
	msg := `Cannot infer output kind from destination

<em>Destination:</em> %s
<em>Recognized extensions:</em> .json, .geojson`

	return &gn.Error{
		Code: errcode.ConfigOutputKindError,
		Msg:  msg,
		Vars: []any{dest},
		Err:  fmt.Errorf("unrecognized output kind for %q", dest),
	}
}

// ColumnError creates an error for a GeoJSON conversion whose source
// file lacks the designated coordinate columns.
func ColumnError(latCol, lngCol string) error {
	msg := `GeoJSON conversion needs coordinate columns

<em>Expected columns:</em> %s, %s

<em>How to fix:</em>
  1. Export with a schema that projects latitude and longitude
  2. Or set convert.latitude_column / convert.longitude_column`

	return &gn.Error{
		Code: errcode.ConvertColumnError,
		Msg:  msg,
		Vars: []any{latCol, lngCol},
		Err: fmt.Errorf("columns %q and %q not found in source",
			latCol, lngCol),
	}
}

// WriteError creates an error for a failed JSON/GeoJSON write.
func WriteError(dest string, err error) error {
	return &gn.Error{
		Code: errcode.ConvertWriteError,
		Msg:  "Cannot write conversion output to <em>%s</em>",
		Vars: []any{dest},
		Err:  err,
	}
}
