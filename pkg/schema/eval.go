package schema

import (
	"strconv"

	"github.com/climbdata/climbex/pkg/relation"
)

// Row is one flat output row keyed by column name. A nil value is the
// null marker of a propagate-absence column; explicit-default columns
// never hold nil.
type Row map[string]any

// Table is the result of executing a plan: rows in ingestion order,
// all sharing the plan's column signature.
type Table struct {
	Columns []Column
	Rows    []Row
}

// Execute applies the plan to the whole relation. The predicate runs
// against raw ingested values; projections then extract and coerce.
// Compile has already rejected anything that could fail here.
func (p *Plan) Execute(store *relation.Store) *Table {
	table := &Table{Columns: p.Columns}
	rows := store.Rows()

	for i := range rows {
		rec := &rows[i]
		if p.pred != nil && !p.pred.match(rec) {
			continue
		}

		row := make(Row, len(p.Columns))
		for _, col := range p.Columns {
			v, ok := col.Path.Resolve(rec)
			if !ok {
				row[col.Name] = col.Default
				continue
			}
			row[col.Name] = coerceValue(v, col.Type)
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

// coerceValue converts a resolved source value to the column's target
// kind. The pairs here mirror coercible(); both must change together.
func coerceValue(v any, dst relation.Kind) any {
	switch val := v.(type) {
	case int64:
		switch dst {
		case relation.KindDouble:
			return float64(val)
		case relation.KindString:
			return strconv.FormatInt(val, 10)
		}
	case float64:
		if dst == relation.KindString {
			return strconv.FormatFloat(val, 'g', -1, 64)
		}
	case bool:
		if dst == relation.KindString {
			return strconv.FormatBool(val)
		}
	}
	return v
}
