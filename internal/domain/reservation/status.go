package reservation

import "meetingroom/internal/pkg/apperror"

type Status string

const (
	StatusPending         Status = "PENDING"
	StatusConfirmed       Status = "CONFIRMED"
	StatusCancelled       Status = "CANCELLED"
	StatusCancelRequested Status = "CANCEL_REQUESTED"
	StatusCompleted       Status = "COMPLETED"
	StatusNoShow          Status = "NO_SHOW"
)

// transitions is the whole state machine. Anything absent is rejected.
var transitions = map[Status][]Status{
	StatusPending:         {StatusConfirmed, StatusCancelled},
	StatusConfirmed:       {StatusCancelRequested, StatusCancelled, StatusCompleted, StatusNoShow},
	StatusCancelRequested: {StatusConfirmed, StatusCancelled},
	StatusCancelled:       nil,
	StatusCompleted:       nil,
	StatusNoShow:          nil,
}

var labels = map[Status]string{
	StatusPending:         "Pending",
	StatusConfirmed:       "Confirmed",
	StatusCancelled:       "Cancelled",
	StatusCancelRequested: "Cancellation requested",
	StatusCompleted:       "Completed",
	StatusNoShow:          "No show",
}

// AllStatuses lists every status in declaration order.
func AllStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCancelRequested, StatusCompleted, StatusNoShow}
}

// ActiveStatuses occupy their slot and count against the per-user limit.
func ActiveStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusCancelRequested}
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := transitions[st]; !ok {
		return "", apperror.Validation("unknown reservation status %q", s)
	}
	return st, nil
}

func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCancelRequested
}

func (s Status) IsFinal() bool {
	return s == StatusCancelled || s == StatusCompleted || s == StatusNoShow
}

func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func (s Status) Label() string { return labels[s] }

// Transition validates from -> to against the table.
func Transition(from, to Status) (Status, error) {
	if !from.CanTransitionTo(to) {
		return from, apperror.Domain("cannot transition from %s to %s", from, to)
	}
	return to, nil
}
