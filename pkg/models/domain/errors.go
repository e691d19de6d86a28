package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDataUnavailable = errors.New("data unavailable")
	ErrSchemaMismatch  = errors.New("schema mismatch")
	ErrRenderFailure   = errors.New("render failure")
	ErrUnknownReport   = errors.New("unknown report")
)

// SchemaMismatchError carries the expected columns absent from a result table.
type SchemaMismatchError struct {
	Missing []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("expected columns not found: %s", strings.Join(e.Missing, ", "))
}

func (e *SchemaMismatchError) Unwrap() error {
	return ErrSchemaMismatch
}
