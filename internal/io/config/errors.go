package config

import (
	"github.com/climbdata/climbex/pkg/errcode"
	"github.com/gnames/gn"
)

// LoadError creates an error for an unreadable or malformed config file.
func LoadError(path string, err error) error {
	msg := `Cannot load configuration

<em>File:</em> %s

<em>How to fix:</em>
  1. Check that the file exists and is valid YAML
  2. Or remove it to fall back to defaults`

	return &gn.Error{
		Code: errcode.ConfigLoadError,
		Msg:  msg,
		Vars: []any{path},
		Err:  err,
	}
}
