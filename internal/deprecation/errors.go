package deprecation

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// ErrDeprecatedOperation is matched by every DeprecatedOperationError.
var ErrDeprecatedOperation = errors.New("deprecation: operation is no longer supported")

// TextCode tags categorised deprecation errors.
const TextCode = "DEPRECATED_OPERATION"

// DeprecatedOperationError is returned by write paths that moved to the
// external CMS. It is a behaviour change, not a transient failure.
type DeprecatedOperationError struct {
	Operation string
	Entity    string
	CMS       string
}

func (e *DeprecatedOperationError) Error() string {
	msg := fmt.Sprintf("deprecated operation %q on %s", e.Operation, e.Entity)
	if e.CMS != "" {
		msg += "; use " + e.CMS + " instead"
	}
	return msg
}

func (e *DeprecatedOperationError) Is(target error) bool {
	return target == ErrDeprecatedOperation
}

// Categorized wraps the error for callers that route on go-errors categories.
func (e *DeprecatedOperationError) Categorized() error {
	return goerrors.Wrap(e, goerrors.CategoryCommand, e.Error()).
		WithTextCode(TextCode)
}

// IsDeprecated reports whether err is, or wraps, a DeprecatedOperationError.
func IsDeprecated(err error) bool {
	var target *DeprecatedOperationError
	return errors.As(err, &target)
}
