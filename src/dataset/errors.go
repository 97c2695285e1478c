package dataset

import "errors"

var (
	// ErrEmpty is returned when the file has no header row.
	ErrEmpty = errors.New("no columns to parse from file")
	// ErrMalformed wraps CSV syntax errors and rows wider than the header.
	ErrMalformed = errors.New("malformed csv")
	// ErrUnknownEngine is returned by Load for an unsupported Options.Engine.
	ErrUnknownEngine = errors.New("unknown engine")
)
