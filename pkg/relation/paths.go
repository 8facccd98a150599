package relation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/climbdata/climbex/pkg/climb"
)

// Kind is the value kind a path resolves to. Coercion compatibility is
// decided against these kinds before any row is processed.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt
	KindDouble
	KindStringList
)

// String returns the name used for the kind in schema files and errors.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindDouble:
		return "double"
	case KindStringList:
		return "string_list"
	}
	return "unknown"
}

// ParseKind converts a schema type name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "string":
		return KindString, nil
	case "boolean":
		return KindBool, nil
	case "integer":
		return KindInt, nil
	case "double":
		return KindDouble, nil
	case "string_list":
		return KindStringList, nil
	}
	return 0, fmt.Errorf("unknown type %q", s)
}

type accessor func(*climb.Climb) (any, bool)

type pathEntry struct {
	kind Kind
	get  accessor
}

// registry enumerates every addressable path of the Climb relation.
// The record shape is closed, so an unknown path is a schema error,
// not a missing value.
var registry = map[string]pathEntry{
	"uuid": {KindString, func(c *climb.Climb) (any, bool) { return c.UUID, true }},
	"name": {KindString, func(c *climb.Climb) (any, bool) { return c.Name, true }},
	"fa":   {KindString, optString(func(c *climb.Climb) *string { return c.FA })},
	"safety": {KindString,
		optString(func(c *climb.Climb) *string { return c.Safety })},
	"length": {KindInt,
		optInt(func(c *climb.Climb) *int64 { return c.Length })},
	"boltsCount": {KindInt,
		optInt(func(c *climb.Climb) *int64 { return c.BoltsCount })},

	"grades.yds": {KindString,
		optString(func(c *climb.Climb) *string { return c.Grades.YDS })},
	"grades.vscale": {KindString,
		optString(func(c *climb.Climb) *string { return c.Grades.VScale })},
	"grades.french": {KindString,
		optString(func(c *climb.Climb) *string { return c.Grades.French })},
	"grades.ewbank": {KindString,
		optString(func(c *climb.Climb) *string { return c.Grades.Ewbank })},
	"grades.uiaa": {KindString,
		optString(func(c *climb.Climb) *string { return c.Grades.UIAA })},
	"grades.za": {KindString,
		optString(func(c *climb.Climb) *string { return c.Grades.ZA })},
	"grades.british": {KindString,
		optString(func(c *climb.Climb) *string { return c.Grades.British })},

	"type.sport": {KindBool,
		optBool(func(c *climb.Climb) *bool { return c.Type.Sport })},
	"type.trad": {KindBool,
		optBool(func(c *climb.Climb) *bool { return c.Type.Trad })},
	"type.bouldering": {KindBool,
		optBool(func(c *climb.Climb) *bool { return c.Type.Bouldering })},
	"type.alpine": {KindBool,
		optBool(func(c *climb.Climb) *bool { return c.Type.Alpine })},
	"type.tr": {KindBool,
		optBool(func(c *climb.Climb) *bool { return c.Type.TR })},
	"type.mixed": {KindBool,
		optBool(func(c *climb.Climb) *bool { return c.Type.Mixed })},
	"type.ice": {KindBool,
		optBool(func(c *climb.Climb) *bool { return c.Type.Ice })},
	"type.snow": {KindBool,
		optBool(func(c *climb.Climb) *bool { return c.Type.Snow })},
	"type.aid": {KindBool,
		optBool(func(c *climb.Climb) *bool { return c.Type.Aid })},

	"metadata.lat": {KindDouble,
		optFloat(func(c *climb.Climb) *float64 { return c.Metadata.Lat })},
	"metadata.lng": {KindDouble,
		optFloat(func(c *climb.Climb) *float64 { return c.Metadata.Lng })},
	"metadata.elevation": {KindDouble,
		optFloat(func(c *climb.Climb) *float64 { return c.Metadata.Elevation })},

	"content.description": {KindString,
		optString(func(c *climb.Climb) *string { return c.Content.Description })},
	"content.location": {KindString,
		optString(func(c *climb.Climb) *string { return c.Content.Location })},
	"content.protection": {KindString,
		optString(func(c *climb.Climb) *string { return c.Content.Protection })},

	"pathTokens": {KindStringList, func(c *climb.Climb) (any, bool) {
		if c.PathTokens == nil {
			return nil, false
		}
		return c.PathTokens, true
	}},
}

func optString(f func(*climb.Climb) *string) accessor {
	return func(c *climb.Climb) (any, bool) {
		if v := f(c); v != nil {
			return *v, true
		}
		return nil, false
	}
}

func optBool(f func(*climb.Climb) *bool) accessor {
	return func(c *climb.Climb) (any, bool) {
		if v := f(c); v != nil {
			return *v, true
		}
		return nil, false
	}
}

func optInt(f func(*climb.Climb) *int64) accessor {
	return func(c *climb.Climb) (any, bool) {
		if v := f(c); v != nil {
			return *v, true
		}
		return nil, false
	}
}

func optFloat(f func(*climb.Climb) *float64) accessor {
	return func(c *climb.Climb) (any, bool) {
		if v := f(c); v != nil {
			return *v, true
		}
		return nil, false
	}
}

// Path is a compiled reference into the Climb relation: either a dotted
// field like "grades.yds" or a 1-based positional extraction like
// "pathTokens[2]".
type Path struct {
	raw   string
	kind  Kind
	index int // 1-based token index, 0 when not positional
	get   accessor
}

// ParsePath validates a path expression against the relation shape.
func ParsePath(raw string) (Path, error) {
	if base, idx, ok := splitIndex(raw); ok {
		if base != "pathTokens" {
			return Path{}, fmt.Errorf(
				"field %q does not support positional access", base)
		}
		if idx < 1 {
			return Path{}, fmt.Errorf(
				"positional index in %q must be 1 or greater", raw)
		}
		return Path{raw: raw, kind: KindString, index: idx}, nil
	}

	entry, ok := registry[raw]
	if !ok {
		return Path{}, fmt.Errorf("unknown field path %q", raw)
	}
	return Path{raw: raw, kind: entry.kind, get: entry.get}, nil
}

func splitIndex(raw string) (string, int, bool) {
	open := strings.IndexByte(raw, '[')
	if open < 0 || !strings.HasSuffix(raw, "]") {
		return "", 0, false
	}
	idx, err := strconv.Atoi(raw[open+1 : len(raw)-1])
	if err != nil {
		return "", 0, false
	}
	return raw[:open], idx, true
}

// String returns the original path expression.
func (p Path) String() string { return p.raw }

// Kind returns the value kind the path resolves to.
func (p Path) Kind() Kind { return p.kind }

// Resolve extracts the path's value from one record. The second return
// reports presence: out-of-range positional access and nil optional
// fields yield absence, never an error.
func (p Path) Resolve(c *climb.Climb) (any, bool) {
	if p.index > 0 {
		return resolveToken(c, p.index)
	}
	return p.get(c)
}

func resolveToken(c *climb.Climb, idx int) (any, bool) {
	tok, ok := c.PathToken(idx)
	if !ok {
		return nil, false
	}
	return tok, true
}
