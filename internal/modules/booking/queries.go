package booking

import (
	"context"
	"time"

	"meetingroom/internal/domain/reservation"
	"meetingroom/internal/domain/room"
	"meetingroom/internal/pkg/apperror"
)

const dateLayout = "2006-01-02"

// Reservation returns one reservation to its owner or to an administrator.
func (s *Service) Reservation(ctx context.Context, actor Actor, rawID string) (*reservation.Reservation, error) {
	id, err := reservation.ParseID(rawID)
	if err != nil {
		return nil, err
	}
	r, err := s.store.Reservations().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && r.UserID() != actor.UserID {
		return nil, apperror.Forbidden("you can only view your own reservations")
	}
	return r, nil
}

// AvailableSlots lists the bookable slots of a room on a calendar date.
func (s *Service) AvailableSlots(ctx context.Context, rawRoomID, date string) ([]reservation.TimeSlot, error) {
	rm, existing, day, err := s.loadDay(ctx, rawRoomID, date)
	if err != nil {
		return nil, err
	}
	return s.availability.AvailableSlots(rm, day, existing), nil
}

// SlotGrid lists every slot of the room's window on a date with its status.
func (s *Service) SlotGrid(ctx context.Context, rawRoomID, date string) ([]reservation.SlotStatus, error) {
	rm, existing, day, err := s.loadDay(ctx, rawRoomID, date)
	if err != nil {
		return nil, err
	}
	return s.availability.SlotsWithStatus(rm, day, existing), nil
}

func (s *Service) PendingCancellations(ctx context.Context) ([]*reservation.Reservation, error) {
	return s.store.Reservations().FindPendingCancellations(ctx)
}

// UserReservations is the user's history, newest first.
func (s *Service) UserReservations(ctx context.Context, userID reservation.UserID) ([]*reservation.Reservation, error) {
	return s.store.Reservations().FindByUserID(ctx, userID)
}

// CanUserMakeReservation reports whether a non-admin user is free to book.
func (s *Service) CanUserMakeReservation(ctx context.Context, userID reservation.UserID) (bool, error) {
	active, err := s.store.Reservations().FindActiveByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	return s.rules.EnsureUserHasNoActiveReservation(active) == nil, nil
}

func (s *Service) loadDay(ctx context.Context, rawRoomID, date string) (*room.Room, []*reservation.Reservation, time.Time, error) {
	roomID, err := room.ParseID(rawRoomID)
	if err != nil {
		return nil, nil, time.Time{}, err
	}
	day, err := time.ParseInLocation(dateLayout, date, s.loc)
	if err != nil {
		return nil, nil, time.Time{}, apperror.Validation("invalid date %q, expected YYYY-MM-DD", date)
	}

	rm, err := s.store.Rooms().FindByID(ctx, roomID)
	if err != nil {
		return nil, nil, time.Time{}, err
	}
	existing, err := s.store.Reservations().FindByRoomAndDate(ctx, roomID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, nil, time.Time{}, err
	}
	return rm, existing, day, nil
}
