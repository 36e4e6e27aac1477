package migration

import (
	"errors"
	"fmt"
)

// Direction names which way a sync moved content.
type Direction string

const (
	DirectionPull Direction = "pull"
	DirectionPush Direction = "push"
)

// Action is what happened to one item.
type Action string

const (
	ActionSaved   Action = "saved"
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionPlanned Action = "planned"
	ActionFailed  Action = "failed"
)

// Outcome records the result for one item. Slug is empty for entries that
// could not be mapped.
type Outcome struct {
	Slug    string
	EntryID string
	Action  Action
	Err     error
}

// Report lists per item outcomes in processing order.
type Report struct {
	Entity    string
	Direction Direction
	Outcomes  []Outcome
}

func (r *Report) add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// Count returns how many outcomes carry action.
func (r Report) Count(action Action) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Action == action {
			n++
		}
	}
	return n
}

// Failed returns the failed outcomes.
func (r Report) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Action == ActionFailed {
			out = append(out, o)
		}
	}
	return out
}

// Err joins every item failure, or returns nil when all items succeeded.
func (r Report) Err() error {
	var errs []error
	for _, o := range r.Failed() {
		label := o.Slug
		if label == "" {
			label = o.EntryID
		}
		errs = append(errs, fmt.Errorf("%s %s %q: %w", r.Direction, r.Entity, label, o.Err))
	}
	return errors.Join(errs...)
}

func (r Report) String() string {
	return fmt.Sprintf("%s %s: %d ok, %d failed", r.Direction, r.Entity, len(r.Outcomes)-r.Count(ActionFailed), r.Count(ActionFailed))
}
