package schema

import (
	"fmt"

	"github.com/climbdata/climbex/pkg/climb"
	"github.com/climbdata/climbex/pkg/relation"
)

// Plan is a compiled, validated transformation. Executing a plan can
// no longer fail: every path, coercion and default literal has been
// checked against the relation shape.
type Plan struct {
	Columns []Column
	pred    *predNode
}

// Column is one compiled projection of the plan.
type Column struct {
	Name string
	Path relation.Path
	Type relation.Kind
	// Default is the coerced default literal, nil when absence
	// propagates as null.
	Default any
}

// Compile validates the document against the climb relation and builds
// the typed plan. Unknown paths, unknown coercion types, incompatible
// coercions and mismatched default literals are all fatal here, before
// any row is processed.
func (d *Document) Compile() (*Plan, error) {
	if len(d.Columns) == 0 {
		return nil, EmptyError()
	}

	plan := &Plan{Columns: make([]Column, 0, len(d.Columns))}
	seen := make(map[string]struct{}, len(d.Columns))

	for _, def := range d.Columns {
		if def.Name == "" {
			return nil, NamelessColumnError(def.Path)
		}
		if _, ok := seen[def.Name]; ok {
			return nil, DuplicateColumnError(def.Name)
		}
		seen[def.Name] = struct{}{}

		path, err := relation.ParsePath(def.Path)
		if err != nil {
			return nil, UnknownPathError(def.Name, def.Path, err)
		}
		kind, err := relation.ParseKind(def.Type)
		if err != nil {
			return nil, UnknownTypeError(def.Name, def.Type)
		}
		if !coercible(path.Kind(), kind) {
			return nil, CoercionError(def.Name, path.Kind(), kind)
		}

		dflt, err := coerceLiteral(def.Default, kind)
		if err != nil {
			return nil, DefaultMismatchError(def.Name, kind, def.Default)
		}

		plan.Columns = append(plan.Columns, Column{
			Name:    def.Name,
			Path:    path,
			Type:    kind,
			Default: dflt,
		})
	}

	if d.Filter != nil {
		pred, err := compileCondition(d.Filter)
		if err != nil {
			return nil, err
		}
		plan.pred = pred
	}

	return plan, nil
}

// coercible reports whether a source value kind can be deterministically
// converted to a target kind. Anything outside this table is a schema
// validation error.
func coercible(src, dst relation.Kind) bool {
	if src == dst {
		return true
	}
	switch src {
	case relation.KindInt:
		return dst == relation.KindDouble || dst == relation.KindString
	case relation.KindDouble:
		return dst == relation.KindString
	case relation.KindBool:
		return dst == relation.KindString
	}
	return false
}

// coerceLiteral converts a YAML default literal to the Go value of the
// target kind. A nil literal means "propagate absence" and stays nil.
func coerceLiteral(lit any, dst relation.Kind) (any, error) {
	if lit == nil {
		return nil, nil
	}
	switch dst {
	case relation.KindString:
		if s, ok := lit.(string); ok {
			return s, nil
		}
	case relation.KindBool:
		if b, ok := lit.(bool); ok {
			return b, nil
		}
	case relation.KindInt:
		if i, ok := lit.(int); ok {
			return int64(i), nil
		}
	case relation.KindDouble:
		switch v := lit.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		}
	case relation.KindStringList:
		items, ok := lit.([]any)
		if !ok {
			break
		}
		list := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("list default must contain only strings")
			}
			list = append(list, s)
		}
		return list, nil
	}
	return nil, fmt.Errorf("default %v does not match type %s", lit, dst)
}

type predOp int

const (
	opAll predOp = iota
	opAny
	opNot
	opEq
	opNe
	opPresent
)

type predNode struct {
	op   predOp
	kids []predNode
	path relation.Path
	lit  any
	want bool // for opPresent
}

func compileCondition(c *Condition) (*predNode, error) {
	connectives := 0
	if len(c.All) > 0 {
		connectives++
	}
	if len(c.Any) > 0 {
		connectives++
	}
	if c.Not != nil {
		connectives++
	}
	leaf := c.Path != ""
	if leaf {
		connectives++
	}
	if connectives != 1 {
		return nil, PredicateError(
			"condition must have exactly one of all/any/not or a path", nil)
	}

	switch {
	case len(c.All) > 0:
		return compileKids(opAll, c.All)
	case len(c.Any) > 0:
		return compileKids(opAny, c.Any)
	case c.Not != nil:
		kid, err := compileCondition(c.Not)
		if err != nil {
			return nil, err
		}
		return &predNode{op: opNot, kids: []predNode{*kid}}, nil
	}

	return compileLeaf(c)
}

func compileKids(op predOp, conds []Condition) (*predNode, error) {
	node := &predNode{op: op, kids: make([]predNode, 0, len(conds))}
	for i := range conds {
		kid, err := compileCondition(&conds[i])
		if err != nil {
			return nil, err
		}
		node.kids = append(node.kids, *kid)
	}
	return node, nil
}

func compileLeaf(c *Condition) (*predNode, error) {
	path, err := relation.ParsePath(c.Path)
	if err != nil {
		return nil, PredicateError(c.Path, err)
	}

	ops := 0
	if c.Eq != nil {
		ops++
	}
	if c.Ne != nil {
		ops++
	}
	if c.Present != nil {
		ops++
	}
	if ops != 1 {
		return nil, PredicateError(c.Path,
			fmt.Errorf("leaf needs exactly one of eq, ne or present"))
	}

	if c.Present != nil {
		return &predNode{op: opPresent, path: path, want: *c.Present}, nil
	}

	op, lit := opEq, c.Eq
	if c.Ne != nil {
		op, lit = opNe, c.Ne
	}
	lit, err = predicateLiteral(lit, path.Kind())
	if err != nil {
		return nil, PredicateError(c.Path, err)
	}
	return &predNode{op: op, path: path, lit: lit}, nil
}

// predicateLiteral validates a comparison literal against the kind of
// the addressed field and normalizes it for runtime comparison.
func predicateLiteral(lit any, kind relation.Kind) (any, error) {
	switch kind {
	case relation.KindString:
		if s, ok := lit.(string); ok {
			return s, nil
		}
	case relation.KindBool:
		if b, ok := lit.(bool); ok {
			return b, nil
		}
	case relation.KindInt, relation.KindDouble:
		switch v := lit.(type) {
		case int:
			return float64(v), nil
		case float64:
			return v, nil
		}
	case relation.KindStringList:
		return nil, fmt.Errorf("pathTokens supports only presence checks")
	}
	return nil, fmt.Errorf("literal %v is not comparable to %s", lit, kind)
}

// match evaluates the predicate for one record. A comparison against
// an absent field is false, so rows with missing optional data fall
// out of filtered exports instead of raising errors.
func (n *predNode) match(c *climb.Climb) bool {
	switch n.op {
	case opAll:
		for i := range n.kids {
			if !n.kids[i].match(c) {
				return false
			}
		}
		return true
	case opAny:
		for i := range n.kids {
			if n.kids[i].match(c) {
				return true
			}
		}
		return false
	case opNot:
		return !n.kids[0].match(c)
	case opPresent:
		_, ok := n.path.Resolve(c)
		return ok == n.want
	}

	v, ok := n.path.Resolve(c)
	if !ok {
		return false
	}
	eq := literalEqual(v, n.lit)
	if n.op == opNe {
		return !eq
	}
	return eq
}

func literalEqual(v, lit any) bool {
	switch val := v.(type) {
	case string:
		return val == lit
	case bool:
		return val == lit
	case int64:
		return float64(val) == lit
	case float64:
		return val == lit
	}
	return false
}
