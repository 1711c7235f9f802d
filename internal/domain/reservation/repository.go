package reservation

import (
	"context"
	"time"

	"meetingroom/internal/domain/room"
)

type Repository interface {
	// FindByID fails with a NotFound error when absent.
	FindByID(ctx context.Context, id ID) (*Reservation, error)
	// FindByIDForUpdate also row-locks the reservation until the
	// surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id ID) (*Reservation, error)
	FindActiveByRoomID(ctx context.Context, roomID room.ID) ([]*Reservation, error)
	FindActiveByUserID(ctx context.Context, userID UserID) ([]*Reservation, error)
	// FindActiveByUserIDForUpdate serializes transactions that check the
	// one-active-booking rule for the same user, even when the user has no
	// rows to lock yet.
	FindActiveByUserIDForUpdate(ctx context.Context, userID UserID) ([]*Reservation, error)
	// FindByUserID returns the user's history, newest first.
	FindByUserID(ctx context.Context, userID UserID) ([]*Reservation, error)
	// FindByRoomAndDate returns the active reservations overlapping [from, to).
	FindByRoomAndDate(ctx context.Context, roomID room.ID, from, to time.Time) ([]*Reservation, error)
	// FindPendingCancellations is ordered by request time, oldest first.
	FindPendingCancellations(ctx context.Context) ([]*Reservation, error)
	FindConfirmedEndedBefore(ctx context.Context, t time.Time) ([]*Reservation, error)
	// Save inserts a new reservation or updates a loaded one. An update whose
	// version no longer matches the stored row fails with ErrStaleReservation.
	Save(ctx context.Context, r *Reservation) error
}
