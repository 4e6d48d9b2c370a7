package domain

import "errors"

var (
	// ErrNoHeaderRow is returned when CSV input cannot be tokenized into even a
	// header row; the run produces no partial output in that case.
	ErrNoHeaderRow = errors.New("csv input has no header row")
	// ErrSetNotFound indicates a published question set does not exist in the store.
	ErrSetNotFound = errors.New("question set not found")
)
