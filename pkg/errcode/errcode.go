// Package errcode enumerates error codes for the climbex pipeline,
// grouped by the failure category they belong to.
package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// Configuration errors (fatal before the run starts)
	ConfigLoadError
	ConfigCodecError
	ConfigOutputKindError

	// Transport errors (retried, then fatal)
	FetchRequestError
	FetchExhaustedError
	FetchPayloadError
	FetchEmptyError

	// Schema validation errors (fatal before any row is processed)
	SchemaReadError
	SchemaUnknownPathError
	SchemaUnknownTypeError
	SchemaCoercionError
	SchemaDefaultMismatchError
	SchemaPredicateError
	SchemaEmptyError
	SchemaColumnError

	// I/O errors
	WriteOutputError
	ConvertReadError
	ConvertWriteError
	ConvertColumnError
)
