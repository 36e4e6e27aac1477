package transform

import (
	"fmt"

	"github.com/goliatone/go-vendcms/internal/logging"
	"github.com/goliatone/go-vendcms/pkg/interfaces"
)

// RowError describes a row dropped from a batch.
type RowError struct {
	Index int
	ID    string
	Err   error
}

func (e RowError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("transform: row %d (%s): %v", e.Index, e.ID, e.Err)
	}
	return fmt.Sprintf("transform: row %d: %v", e.Index, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// Report summarises a batch. Dropped is empty when every row transformed.
type Report struct {
	Entity  string
	Total   int
	Kept    int
	Dropped []RowError
}

// Partial reports whether any row was dropped.
func (r Report) Partial() bool { return len(r.Dropped) > 0 }

// Batch carries the context shared by every row of a transformation.
type Batch struct {
	Entity string
	Logger interfaces.Logger
}

// MapRows applies fn to every row. A row whose fn returns an error or panics
// is logged and dropped; the remaining rows are still returned in order.
func MapRows[R, V any](batch Batch, rows []R, fn func(R) (V, error), id func(R) string) ([]V, Report) {
	logger := batch.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	report := Report{Entity: batch.Entity, Total: len(rows)}
	out := make([]V, 0, len(rows))

	for i, row := range rows {
		value, err := safeApply(fn, row)
		if err != nil {
			rowErr := RowError{Index: i, Err: err}
			if id != nil {
				rowErr.ID = safeID(id, row)
			}
			report.Dropped = append(report.Dropped, rowErr)
			logger.Warn("transform.row_dropped",
				logging.FieldEntity, batch.Entity,
				"index", i,
				"id", rowErr.ID,
				"error", err,
			)
			continue
		}
		out = append(out, value)
	}
	report.Kept = len(out)
	return out, report
}

func safeApply[R, V any](fn func(R) (V, error), row R) (value V, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(row)
}

func safeID[R any](id func(R) string, row R) (out string) {
	defer func() {
		if recover() != nil {
			out = ""
		}
	}()
	return id(row)
}
