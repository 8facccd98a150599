// Package schema compiles declarative transformation documents into
// typed projection plans and executes them against the climb relation.
//
// A document is data, not code: a list of column projections plus an
// optional row predicate, written in YAML. Example:
//
//	columns:
//	  - name: climb_id
//	    path: uuid
//	    type: string
//	  - name: grade_yds
//	    path: grades.yds
//	    type: string
//	    default: ""
//	  - name: country
//	    path: pathTokens[1]
//	    type: string
//	    default: ""
//	filter:
//	  all:
//	    - path: type.sport
//	      eq: true
//	    - path: metadata.lat
//	      present: true
//
// All validation happens in Compile, before any row is touched.
package schema

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Document is the parsed form of a schema file.
type Document struct {
	Columns []ColumnDef `yaml:"columns"`
	Filter  *Condition  `yaml:"filter,omitempty"`
}

// ColumnDef is one declared output column. Default distinguishes the
// two absence policies: a non-nil literal means "emit this value when
// the source is absent", nil means "propagate absence as null".
type ColumnDef struct {
	Name    string `yaml:"name"`
	Path    string `yaml:"path"`
	Type    string `yaml:"type"`
	Default any    `yaml:"default,omitempty"`
}

// Condition is one node of the row predicate. Exactly one of the
// connective fields (All, Any, Not) or the leaf fields (Path with
// Eq, Ne or Present) must be set.
type Condition struct {
	All []Condition `yaml:"all,omitempty"`
	Any []Condition `yaml:"any,omitempty"`
	Not *Condition  `yaml:"not,omitempty"`

	Path    string `yaml:"path,omitempty"`
	Eq      any    `yaml:"eq,omitempty"`
	Ne      any    `yaml:"ne,omitempty"`
	Present *bool  `yaml:"present,omitempty"`
}

// Load reads and parses a schema document from a YAML file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ReadError(path, err)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, ReadError(path, err)
	}
	return &doc, nil
}
