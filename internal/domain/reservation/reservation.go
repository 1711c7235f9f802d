package reservation

import (
	"strings"
	"time"

	"meetingroom/internal/domain/room"
	"meetingroom/internal/pkg/apperror"
)

const (
	// MaxDurationMinutes caps a single non-admin booking.
	MaxDurationMinutes = 120

	// ImmediateCancelWindow is how far ahead of the start a booking must
	// still be for self-service cancellation.
	ImmediateCancelWindow = 48 * time.Hour
)

type Reservation struct {
	id                ID
	roomID            room.ID
	userID            UserID
	slot              TimeSlot
	status            Status
	totalPrice        room.Money
	purpose           *string
	cancelReason      *string
	cancelRequestedAt *time.Time
	createdAt         time.Time
	updatedAt         time.Time
	// version is the stored revision; 0 until the first save.
	version int
}

// New books slot for userID. The reservation starts CONFIRMED and is priced
// at pricePerSlot times the number of 30-minute slots.
func New(roomID room.ID, userID UserID, slot TimeSlot, pricePerSlot room.Money, purpose *string, isAdmin bool, now time.Time) (*Reservation, Created, error) {
	if !isAdmin && slot.DurationInMinutes() > MaxDurationMinutes {
		return nil, Created{}, apperror.Validation("reservations are limited to %d minutes", MaxDurationMinutes)
	}

	r := &Reservation{
		id:         NewID(),
		roomID:     roomID,
		userID:     userID,
		slot:       slot,
		status:     StatusConfirmed,
		totalPrice: pricePerSlot.Multiply(slot.SlotCount()),
		purpose:    purpose,
		createdAt:  now,
		updatedAt:  now,
	}
	return r, Created{
		ReservationID: r.id,
		RoomID:        roomID.String(),
		UserID:        userID,
		Slot:          slot,
		At:            now,
	}, nil
}

// CanCancelImmediately is true only while now is strictly more than 48h
// before the start.
func (r *Reservation) CanCancelImmediately(now time.Time) bool {
	return now.Before(r.slot.start.Add(-ImmediateCancelWindow))
}

func (r *Reservation) CancelImmediately(reason *string, now time.Time) (Cancelled, error) {
	if !r.CanCancelImmediately(now) {
		return Cancelled{}, apperror.Domain("immediate cancellation closes 48 hours before the start, submit a cancellation request instead")
	}
	return r.cancel(reason, now)
}

// RequestCancel is the path for bookings inside the 48h window that have
// not started yet. An administrator approves or rejects the request.
func (r *Reservation) RequestCancel(reason string, now time.Time) (CancelRequested, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return CancelRequested{}, apperror.Validation("cancellation reason is required")
	}
	if r.CanCancelImmediately(now) {
		return CancelRequested{}, apperror.Domain("reservation is more than 48 hours away, cancel it immediately instead")
	}
	if !now.Before(r.slot.start) {
		return CancelRequested{}, apperror.Domain("reservation has already started and can no longer be cancelled")
	}
	if err := r.transitionTo(StatusCancelRequested, now); err != nil {
		return CancelRequested{}, err
	}
	at := now
	r.cancelReason = &reason
	r.cancelRequestedAt = &at
	return CancelRequested{ReservationID: r.id, Reason: reason, At: now}, nil
}

// Cancel is the administrative cancel from any state that allows it.
// Approving a cancellation request goes through here as well.
func (r *Reservation) Cancel(reason *string, now time.Time) (Cancelled, error) {
	return r.cancel(reason, now)
}

func (r *Reservation) cancel(reason *string, now time.Time) (Cancelled, error) {
	if err := r.transitionTo(StatusCancelled, now); err != nil {
		return Cancelled{}, err
	}
	if reason != nil {
		r.cancelReason = reason
	}
	return Cancelled{ReservationID: r.id, Reason: r.cancelReason, At: now}, nil
}

func (r *Reservation) RejectCancelRequest(now time.Time) (CancelRejected, error) {
	if r.status != StatusCancelRequested {
		return CancelRejected{}, apperror.Domain("only a reservation awaiting cancellation can have its request rejected")
	}
	if err := r.transitionTo(StatusConfirmed, now); err != nil {
		return CancelRejected{}, err
	}
	r.cancelReason = nil
	r.cancelRequestedAt = nil
	return CancelRejected{ReservationID: r.id, At: now}, nil
}

func (r *Reservation) Confirm(now time.Time) (Confirmed, error) {
	if err := r.transitionTo(StatusConfirmed, now); err != nil {
		return Confirmed{}, err
	}
	return Confirmed{ReservationID: r.id, At: now}, nil
}

func (r *Reservation) Complete(now time.Time) (Completed, error) {
	if err := r.transitionTo(StatusCompleted, now); err != nil {
		return Completed{}, err
	}
	return Completed{ReservationID: r.id, At: now}, nil
}

func (r *Reservation) MarkNoShow(now time.Time) (NoShow, error) {
	if err := r.transitionTo(StatusNoShow, now); err != nil {
		return NoShow{}, err
	}
	return NoShow{ReservationID: r.id, At: now}, nil
}

// Overlaps reports whether r blocks slot. Only active reservations block.
func (r *Reservation) Overlaps(slot TimeSlot) bool {
	return r.status.IsActive() && r.slot.Overlaps(slot)
}

func (r *Reservation) transitionTo(to Status, now time.Time) error {
	next, err := Transition(r.status, to)
	if err != nil {
		return err
	}
	r.status = next
	r.updatedAt = now
	return nil
}

func (r *Reservation) ID() ID                        { return r.id }
func (r *Reservation) RoomID() room.ID               { return r.roomID }
func (r *Reservation) UserID() UserID                { return r.userID }
func (r *Reservation) TimeSlot() TimeSlot            { return r.slot }
func (r *Reservation) Status() Status                { return r.status }
func (r *Reservation) TotalPrice() room.Money        { return r.totalPrice }
func (r *Reservation) Purpose() *string              { return r.purpose }
func (r *Reservation) CancelReason() *string         { return r.cancelReason }
func (r *Reservation) CancelRequestedAt() *time.Time { return r.cancelRequestedAt }
func (r *Reservation) CreatedAt() time.Time          { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time          { return r.updatedAt }
func (r *Reservation) Version() int                  { return r.version }

// MarkSaved records the revision storage assigned on a successful save.
func (r *Reservation) MarkSaved(version int) { r.version = version }

type Snapshot struct {
	ID                ID
	RoomID            room.ID
	UserID            UserID
	Slot              TimeSlot
	Status            Status
	TotalPrice        room.Money
	Purpose           *string
	CancelReason      *string
	CancelRequestedAt *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Version           int
}

func (r *Reservation) Snapshot() Snapshot {
	return Snapshot{
		ID:                r.id,
		RoomID:            r.roomID,
		UserID:            r.userID,
		Slot:              r.slot,
		Status:            r.status,
		TotalPrice:        r.totalPrice,
		Purpose:           r.purpose,
		CancelReason:      r.cancelReason,
		CancelRequestedAt: r.cancelRequestedAt,
		CreatedAt:         r.createdAt,
		UpdatedAt:         r.updatedAt,
		Version:           r.version,
	}
}

// Restore rebuilds a reservation loaded from storage. No events are produced.
func Restore(s Snapshot) *Reservation {
	return &Reservation{
		id:                s.ID,
		roomID:            s.RoomID,
		userID:            s.UserID,
		slot:              s.Slot,
		status:            s.Status,
		totalPrice:        s.TotalPrice,
		purpose:           s.Purpose,
		cancelReason:      s.CancelReason,
		cancelRequestedAt: s.CancelRequestedAt,
		createdAt:         s.CreatedAt,
		updatedAt:         s.UpdatedAt,
		version:           s.Version,
	}
}
