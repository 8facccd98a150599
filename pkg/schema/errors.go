package schema

import (
	"fmt"

	"github.com/climbdata/climbex/pkg/errcode"
	"github.com/climbdata/climbex/pkg/relation"
	"github.com/gnames/gn"
)

// ReadError creates an error for an unreadable or malformed schema file.
func ReadError(path string, err error) error {
	msg := `Cannot read schema file

<em>File:</em> %s

<em>How to fix:</em>
  1. Check that the file exists and is readable
  2. Check that it is valid YAML (see schemas/ for examples)`

	return &gn.Error{
		Code: errcode.SchemaReadError,
		Msg:  msg,
		Vars: []any{path},
		Err:  err,
	}
}

// EmptyError creates an error for a schema that declares no columns.
func EmptyError() error {
	return &gn.Error{
		Code: errcode.SchemaEmptyError,
		Msg:  "Schema declares no columns",
		Vars: nil,
		Err:  fmt.Errorf("empty schema"),
	}
}

// NamelessColumnError creates an error for a column without a name.
func NamelessColumnError(path string) error {
	return &gn.Error{
		Code: errcode.SchemaColumnError,
		Msg:  "Column projecting <em>%s</em> has no output name",
		Vars: []any{path},
		Err:  fmt.Errorf("column without name (path %q)", path),
	}
}

// DuplicateColumnError creates an error for a repeated output name.
func DuplicateColumnError(name string) error {
	return &gn.Error{
		Code: errcode.SchemaColumnError,
		Msg:  "Output column <em>%s</em> is declared more than once",
		Vars: []any{name},
		Err:  fmt.Errorf("duplicate column %q", name),
	}
}

// UnknownPathError creates an error for a projection that references a
// field the climb relation does not have.
func UnknownPathError(column, path string, err error) error {
	msg := `Schema references an unknown field

<em>Column:</em> %s
<em>Path:</em> %s

<em>How to fix:</em>
  Use a dotted field like grades.yds or a positional token
  like pathTokens[1]; see schemas/extended.yaml for the full list.`

	return &gn.Error{
		Code: errcode.SchemaUnknownPathError,
		Msg:  msg,
		Vars: []any{column, path},
		Err:  err,
	}
}

// UnknownTypeError creates an error for an unrecognized coercion type.
func UnknownTypeError(column, typeName string) error {
	msg := `Schema uses an unknown type

<em>Column:</em> %s
<em>Type:</em> %s

<em>Valid types:</em> string, boolean, integer, double, string_list`

	return &gn.Error{
		Code: errcode.SchemaUnknownTypeError,
		Msg:  msg,
		Vars: []any{column, typeName},
		Err:  fmt.Errorf("unknown type %q for column %q", typeName, column),
	}
}

// CoercionError creates an error for a source/target kind pair that has
// no deterministic conversion.
func CoercionError(column string, src, dst relation.Kind) error {
	msg := `Schema declares an impossible coercion

<em>Column:</em> %s
<em>Source kind:</em> %s
<em>Target type:</em> %s`

	return &gn.Error{
		Code: errcode.SchemaCoercionError,
		Msg:  msg,
		Vars: []any{column, src.String(), dst.String()},
		Err: fmt.Errorf("cannot coerce %s to %s for column %q",
			src, dst, column),
	}
}

// DefaultMismatchError creates an error for a default literal that does
// not match the column's declared type.
func DefaultMismatchError(column string, dst relation.Kind, lit any) error {
	msg := `Schema default does not match the column type

<em>Column:</em> %s
<em>Type:</em> %s
<em>Default:</em> %v`

	return &gn.Error{
		Code: errcode.SchemaDefaultMismatchError,
		Msg:  msg,
		Vars: []any{column, dst.String(), lit},
		Err: fmt.Errorf("default %v does not match type %s for column %q",
			lit, dst, column),
	}
}

// PredicateError creates an error for an invalid row filter.
func PredicateError(detail string, err error) error {
	if err == nil {
		err = fmt.Errorf("invalid filter: %s", detail)
	}
	return &gn.Error{
		Code: errcode.SchemaPredicateError,
		Msg:  "Schema filter is invalid: <em>%s</em>",
		Vars: []any{detail},
		Err:  err,
	}
}
