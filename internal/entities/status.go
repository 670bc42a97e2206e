package entities

import (
	"fmt"
	"slices"
	"time"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s Status) CanTransitionTo(target Status) bool {
	return slices.Contains(transitions[s], target)
}

// AllowedTransitions returns a copy, callers may modify it.
func (s Status) AllowedTransitions() []Status {
	return slices.Clone(transitions[s])
}

// Transition moves the order to the target status. Entering in_progress or
// completed stamps ActualDeliveryDate unless it is already set.
func (o *Order) Transition(to Status, now time.Time) error {
	if !to.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, to)
	}
	if !o.Status.CanTransitionTo(to) {
		return fmt.Errorf("%w: cannot transition from %s to %s", ErrIllegalTransition, o.Status, to)
	}

	o.Status = to
	if (to == StatusInProgress || to == StatusCompleted) && o.ActualDeliveryDate == nil {
		o.ActualDeliveryDate = &now
	}
	return nil
}
