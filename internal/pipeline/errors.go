package pipeline

import "errors"

var (
	ErrSheetNotFound  = errors.New("sheet not found")
	ErrMissingColumn  = errors.New("missing column")
	ErrSchemaMismatch = errors.New("schema mismatch")
)
