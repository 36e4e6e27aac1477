package slugs

import (
	"errors"
	"fmt"
)

// ErrUnsupportedField is returned by sources asked to match a field they do not index.
var ErrUnsupportedField = errors.New("slugs: unsupported lookup field")

// StoreError reports a data source failure in the stage that ends the pipeline.
type StoreError struct {
	Entity string
	Stage  string
	Err    error
}

func (e *StoreError) Error() string {
	if e.Entity != "" {
		return fmt.Sprintf("slugs: %s lookup failed at %s stage: %v", e.Entity, e.Stage, e.Err)
	}
	return fmt.Sprintf("slugs: lookup failed at %s stage: %v", e.Stage, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
