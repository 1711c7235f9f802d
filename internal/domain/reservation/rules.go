package reservation

import (
	"time"

	"meetingroom/internal/domain/room"
)

// Rules holds the user-level booking policy.
type Rules struct{}

func NewRules() Rules { return Rules{} }

// EnsureUserHasNoActiveReservation enforces one active booking per user.
func (Rules) EnsureUserHasNoActiveReservation(userReservations []*Reservation) error {
	for _, r := range userReservations {
		if r.status.IsActive() {
			return ErrUserHasActiveBooking
		}
	}
	return nil
}

// CreateReservation applies the per-user rule (skipped for admins) and
// builds the reservation priced from the room.
func (rl Rules) CreateReservation(
	rm *room.Room,
	userID UserID,
	slot TimeSlot,
	userActive []*Reservation,
	purpose *string,
	isAdmin bool,
	now time.Time,
) (*Reservation, Created, error) {
	if !isAdmin {
		if err := rl.EnsureUserHasNoActiveReservation(userActive); err != nil {
			return nil, Created{}, err
		}
	}
	return New(rm.ID(), userID, slot, rm.PricePerSlot(), purpose, isAdmin, now)
}
