// Package apperr defines the sentinel errors shared across Skillet.
package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation failed")
)

// Plan-document and ingredient parsing errors. A per-line parse failure is
// always surfaced to the caller; the caller decides whether to log or skip.
var (
	ErrNoIngredientPrefix       = errors.New("line has no list-item prefix")
	ErrEmptyIngredientLine      = errors.New("ingredient line is empty")
	ErrIngredientGrammar        = errors.New("ingredient grammar produced no result")
	ErrMissingIngredientSection = errors.New("recipe has no ingredients section")
	ErrMalformedTableHeader     = errors.New("table header is missing the week start column")
	ErrInvalidIgnorePattern     = errors.New("ignore pattern does not compile")
)
