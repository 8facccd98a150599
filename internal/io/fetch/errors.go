package fetch

import (
	"fmt"

	"github.com/climbdata/climbex/pkg/errcode"
	"github.com/gnames/gn"
)

// RequestError creates an error for a failed page request. These are
// transient and retried with backoff before escalating.
func RequestError(cursor string, err error) error {
	if cursor == "" {
		cursor = "<start>"
	}
	return &gn.Error{
		Code: errcode.FetchRequestError,
		Msg:  "Page request failed at cursor <em>%s</em>",
		Vars: []any{cursor},
		Err:  err,
	}
}

// ExhaustedError creates an error for a page that kept failing after
// the retry bound. The export aborts rather than emit a truncated file.
func ExhaustedError(retries int, err error) error {
	msg := `Page request failed after %d retries

<em>How to fix:</em>
  1. Check network connectivity and the API endpoint
  2. Re-run the export; no partial file was written`

	return &gn.Error{
		Code: errcode.FetchExhaustedError,
		Msg:  msg,
		Vars: []any{retries},
		Err:  err,
	}
}

// PayloadError creates an error for a page that violates the expected
// shape. Malformed pages are never skipped.
func PayloadError(detail string, err error) error {
	return &gn.Error{
		Code: errcode.FetchPayloadError,
		Msg:  "Malformed page payload: <em>%s</em>",
		Vars: []any{detail},
		Err:  err,
	}
}

// EmptyError creates an error for an export with no rows to write,
// either because nothing was fetched or because the schema filter
// excluded every fetched climb.
func EmptyError(regions []string) error {
	msg := `No climbs to export

<em>Regions:</em> %v

<em>How to fix:</em>
  1. Check the region filter spelling (first path token, e.g. "USA")
  2. Check the schema's row filter; it may exclude every climb
  3. Retry without regions to export the whole catalog`

	return &gn.Error{
		Code: errcode.FetchEmptyError,
		Msg:  msg,
		Vars: []any{regions},
		Err:  fmt.Errorf("no climbs matched the export filter"),
	}
}
