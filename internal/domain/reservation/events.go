package reservation

import "time"

type Created struct {
	ReservationID ID        `json:"reservation_id"`
	RoomID        string    `json:"room_id"`
	UserID        UserID    `json:"user_id"`
	Slot          TimeSlot  `json:"slot"`
	At            time.Time `json:"occurred_at"`
}

type Cancelled struct {
	ReservationID ID        `json:"reservation_id"`
	Reason        *string   `json:"reason,omitempty"`
	At            time.Time `json:"occurred_at"`
}

type CancelRequested struct {
	ReservationID ID        `json:"reservation_id"`
	Reason        string    `json:"reason"`
	At            time.Time `json:"occurred_at"`
}

type CancelRejected struct {
	ReservationID ID        `json:"reservation_id"`
	At            time.Time `json:"occurred_at"`
}

type Confirmed struct {
	ReservationID ID        `json:"reservation_id"`
	At            time.Time `json:"occurred_at"`
}

type Completed struct {
	ReservationID ID        `json:"reservation_id"`
	At            time.Time `json:"occurred_at"`
}

type NoShow struct {
	ReservationID ID        `json:"reservation_id"`
	At            time.Time `json:"occurred_at"`
}

func (e Created) Name() string         { return "reservation.created" }
func (e Cancelled) Name() string       { return "reservation.cancelled" }
func (e CancelRequested) Name() string { return "reservation.cancel_requested" }
func (e CancelRejected) Name() string  { return "reservation.cancel_rejected" }
func (e Confirmed) Name() string       { return "reservation.confirmed" }
func (e Completed) Name() string       { return "reservation.completed" }
func (e NoShow) Name() string          { return "reservation.no_show" }

func (e Created) AggregateID() string         { return e.ReservationID.String() }
func (e Cancelled) AggregateID() string       { return e.ReservationID.String() }
func (e CancelRequested) AggregateID() string { return e.ReservationID.String() }
func (e CancelRejected) AggregateID() string  { return e.ReservationID.String() }
func (e Confirmed) AggregateID() string       { return e.ReservationID.String() }
func (e Completed) AggregateID() string       { return e.ReservationID.String() }
func (e NoShow) AggregateID() string          { return e.ReservationID.String() }

func (e Created) OccurredAt() time.Time         { return e.At }
func (e Cancelled) OccurredAt() time.Time       { return e.At }
func (e CancelRequested) OccurredAt() time.Time { return e.At }
func (e CancelRejected) OccurredAt() time.Time  { return e.At }
func (e Confirmed) OccurredAt() time.Time       { return e.At }
func (e Completed) OccurredAt() time.Time       { return e.At }
func (e NoShow) OccurredAt() time.Time          { return e.At }
