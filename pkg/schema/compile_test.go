package schema_test

import (
	"testing"

	"github.com/climbdata/climbex/pkg/errcode"
	"github.com/climbdata/climbex/pkg/relation"
	"github.com/climbdata/climbex/pkg/schema"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func col(name, path, typ string, dflt any) schema.ColumnDef {
	return schema.ColumnDef{Name: name, Path: path, Type: typ, Default: dflt}
}

func assertCode(t *testing.T, err error, code gn.ErrorCode) {
	t.Helper()
	var gerr *gn.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, code, gerr.Code)
}

func TestCompileValid(t *testing.T) {
	doc := schema.Document{
		Columns: []schema.ColumnDef{
			col("climb_id", "uuid", "string", nil),
			col("grade_yds", "grades.yds", "string", ""),
			col("is_sport", "type.sport", "boolean", false),
			col("latitude", "metadata.lat", "double", 0.0),
			col("length_meters", "length", "integer", 0),
			col("length_str", "length", "string", nil),
			col("length_f", "length", "double", nil),
			col("tokens", "pathTokens", "string_list", nil),
		},
	}

	plan, err := doc.Compile()
	require.NoError(t, err)
	require.Len(t, plan.Columns, 8)

	// default literals land as the target kind's Go type
	assert.Equal(t, "", plan.Columns[1].Default)
	assert.Equal(t, false, plan.Columns[2].Default)
	assert.Equal(t, 0.0, plan.Columns[3].Default)
	assert.Equal(t, int64(0), plan.Columns[4].Default)
	assert.Nil(t, plan.Columns[5].Default)
	assert.Equal(t, relation.KindDouble, plan.Columns[6].Type)
}

func TestCompileIntegerDefaultForDouble(t *testing.T) {
	// YAML "default: 0" for a double column arrives as an int literal
	doc := schema.Document{
		Columns: []schema.ColumnDef{
			col("latitude", "metadata.lat", "double", 0),
		},
	}
	plan, err := doc.Compile()
	require.NoError(t, err)
	assert.Equal(t, 0.0, plan.Columns[0].Default)
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  schema.Document
		code gn.ErrorCode
	}{
		{
			"no columns",
			schema.Document{},
			errcode.SchemaEmptyError,
		},
		{
			"unknown path",
			schema.Document{Columns: []schema.ColumnDef{
				col("x", "grades.polish", "string", nil),
			}},
			errcode.SchemaUnknownPathError,
		},
		{
			"unknown type",
			schema.Document{Columns: []schema.ColumnDef{
				col("x", "uuid", "varchar", nil),
			}},
			errcode.SchemaUnknownTypeError,
		},
		{
			"double to integer",
			schema.Document{Columns: []schema.ColumnDef{
				col("x", "metadata.lat", "integer", nil),
			}},
			errcode.SchemaCoercionError,
		},
		{
			"string to boolean",
			schema.Document{Columns: []schema.ColumnDef{
				col("x", "grades.yds", "boolean", nil),
			}},
			errcode.SchemaCoercionError,
		},
		{
			"list to string",
			schema.Document{Columns: []schema.ColumnDef{
				col("x", "pathTokens", "string", nil),
			}},
			errcode.SchemaCoercionError,
		},
		{
			"default wrong type",
			schema.Document{Columns: []schema.ColumnDef{
				col("x", "type.sport", "boolean", "no"),
			}},
			errcode.SchemaDefaultMismatchError,
		},
		{
			"numeric default for string",
			schema.Document{Columns: []schema.ColumnDef{
				col("x", "grades.yds", "string", 5),
			}},
			errcode.SchemaDefaultMismatchError,
		},
		{
			"nameless column",
			schema.Document{Columns: []schema.ColumnDef{
				col("", "uuid", "string", nil),
			}},
			errcode.SchemaColumnError,
		},
		{
			"duplicate column",
			schema.Document{Columns: []schema.ColumnDef{
				col("x", "uuid", "string", nil),
				col("x", "name", "string", nil),
			}},
			errcode.SchemaColumnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.doc.Compile()
			require.Error(t, err)
			assertCode(t, err, tt.code)
		})
	}
}

func TestCompilePredicateErrors(t *testing.T) {
	valid := []schema.ColumnDef{col("climb_id", "uuid", "string", nil)}

	tests := []struct {
		name   string
		filter *schema.Condition
	}{
		{
			"unknown path in leaf",
			&schema.Condition{Path: "grades.polish", Eq: "5a"},
		},
		{
			"leaf without operator",
			&schema.Condition{Path: "uuid"},
		},
		{
			"leaf with two operators",
			&schema.Condition{Path: "uuid", Eq: "a", Ne: "b"},
		},
		{
			"empty condition",
			&schema.Condition{},
		},
		{
			"literal kind mismatch",
			&schema.Condition{Path: "type.sport", Eq: "yes"},
		},
		{
			"comparison on token list",
			&schema.Condition{Path: "pathTokens", Eq: "USA"},
		},
		{
			"invalid nested condition",
			&schema.Condition{All: []schema.Condition{
				{Path: "grades.polish", Eq: "5a"},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := schema.Document{Columns: valid, Filter: tt.filter}
			_, err := doc.Compile()
			require.Error(t, err)
			assertCode(t, err, errcode.SchemaPredicateError)
		})
	}
}
