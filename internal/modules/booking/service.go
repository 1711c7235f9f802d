package booking

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"meetingroom/internal/domain"
	"meetingroom/internal/domain/event"
	"meetingroom/internal/domain/reservation"
	"meetingroom/internal/domain/room"
	"meetingroom/internal/pkg/apperror"
	"meetingroom/internal/pkg/clock"
	"meetingroom/internal/pkg/lock"
)

// Actor is the authenticated caller of a use case.
type Actor struct {
	UserID  reservation.UserID
	IsAdmin bool
}

type Service struct {
	store        domain.Store
	locker       lock.Locker
	publisher    event.Publisher
	clock        clock.Clock
	loc          *time.Location
	availability reservation.Availability
	rules        reservation.Rules
}

// NewService wires the reservation use cases. loc is the time zone in which
// operating hours and calendar dates are interpreted.
func NewService(
	store domain.Store,
	locker lock.Locker,
	publisher event.Publisher,
	clk clock.Clock,
	loc *time.Location,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		store:        store,
		locker:       locker,
		publisher:    publisher,
		clock:        clk,
		loc:          loc,
		availability: reservation.NewAvailability(),
		rules:        reservation.NewRules(),
	}
}

func roomKey(id room.ID) string               { return "room:" + id.String() }
func userKey(id reservation.UserID) string    { return "user:" + id.String() }
func reservationKey(id reservation.ID) string { return "reservation:" + id.String() }

// Now is the service clock in the business time zone.
func (s *Service) Now() time.Time { return s.clock.Now().In(s.loc) }

// CreateReservation books a slot. Admins may book on behalf of another user
// and are exempt from the duration cap and the one-active-booking rule.
func (s *Service) CreateReservation(ctx context.Context, actor Actor, in CreateReservationInput) (*reservation.Reservation, error) {
	roomID, err := room.ParseID(in.RoomID)
	if err != nil {
		return nil, err
	}

	userID := actor.UserID
	if in.UserID != "" && in.UserID != actor.UserID.String() {
		if !actor.IsAdmin {
			return nil, apperror.Forbidden("only administrators can book on behalf of another user")
		}
		if userID, err = reservation.ParseUserID(in.UserID); err != nil {
			return nil, err
		}
	}

	slot, err := reservation.NewTimeSlot(in.StartTime.In(s.loc), in.EndTime.In(s.loc))
	if err != nil {
		return nil, err
	}

	now := s.Now()
	if !slot.Start().After(now) {
		return nil, apperror.Domain("cannot book a time slot that has already started")
	}

	keys := []string{roomKey(roomID)}
	if !actor.IsAdmin {
		keys = append(keys, userKey(userID))
	}
	unlock, err := lock.LockAll(ctx, s.locker, keys...)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var (
		created *reservation.Reservation
		events  []event.Event
	)
	err = s.store.WithinTransaction(ctx, func(tx domain.Repositories) error {
		rm, err := tx.Rooms().FindByIDForUpdate(ctx, roomID)
		if err != nil {
			return err
		}

		existing, err := tx.Reservations().FindByRoomAndDate(ctx, roomID, slot.Start(), slot.End())
		if err != nil {
			return err
		}
		if err := s.availability.EnsureSlotAvailable(rm, slot, existing); err != nil {
			return err
		}

		var userActive []*reservation.Reservation
		if !actor.IsAdmin {
			if userActive, err = tx.Reservations().FindActiveByUserIDForUpdate(ctx, userID); err != nil {
				return err
			}
		}

		res, ev, err := s.rules.CreateReservation(rm, userID, slot, userActive, normalizePurpose(in.Purpose), actor.IsAdmin, now)
		if err != nil {
			return err
		}
		if err := tx.Reservations().Save(ctx, res); err != nil {
			return err
		}

		created = res
		events = append(events, ev)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(events)
	return created, nil
}

// CancelImmediately is the owner's self-service cancel, open until 48h before the start.
func (s *Service) CancelImmediately(ctx context.Context, actor Actor, id string, reason *string) (*reservation.Reservation, error) {
	return s.mutate(ctx, id, &actor, func(r *reservation.Reservation, now time.Time) (event.Event, error) {
		return r.CancelImmediately(normalizePurpose(reason), now)
	})
}

// RequestCancellation asks an administrator to cancel a booking that is
// inside the 48h window.
func (s *Service) RequestCancellation(ctx context.Context, actor Actor, id string, reason string) (*reservation.Reservation, error) {
	return s.mutate(ctx, id, &actor, func(r *reservation.Reservation, now time.Time) (event.Event, error) {
		return r.RequestCancel(reason, now)
	})
}

// CancelReservation is the administrator's direct cancel.
func (s *Service) CancelReservation(ctx context.Context, id string, reason *string) (*reservation.Reservation, error) {
	return s.mutate(ctx, id, nil, func(r *reservation.Reservation, now time.Time) (event.Event, error) {
		return r.Cancel(normalizePurpose(reason), now)
	})
}

func (s *Service) ApproveCancellation(ctx context.Context, id string) (*reservation.Reservation, error) {
	return s.mutate(ctx, id, nil, func(r *reservation.Reservation, now time.Time) (event.Event, error) {
		if r.Status() != reservation.StatusCancelRequested {
			return nil, apperror.Domain("only a reservation awaiting cancellation can be approved")
		}
		return r.Cancel(nil, now)
	})
}

func (s *Service) RejectCancellation(ctx context.Context, id string) (*reservation.Reservation, error) {
	return s.mutate(ctx, id, nil, func(r *reservation.Reservation, now time.Time) (event.Event, error) {
		return r.RejectCancelRequest(now)
	})
}

func (s *Service) CompleteReservation(ctx context.Context, id string) (*reservation.Reservation, error) {
	return s.mutate(ctx, id, nil, func(r *reservation.Reservation, now time.Time) (event.Event, error) {
		return r.Complete(now)
	})
}

func (s *Service) MarkNoShow(ctx context.Context, id string) (*reservation.Reservation, error) {
	return s.mutate(ctx, id, nil, func(r *reservation.Reservation, now time.Time) (event.Event, error) {
		return r.MarkNoShow(now)
	})
}

// CompleteFinished completes confirmed reservations that ended at least grace
// ago. Each one is re-read under its row lock and completed in its own
// transaction, so a booking cancelled or marked no-show in the meantime is
// left alone.
func (s *Service) CompleteFinished(ctx context.Context, grace time.Duration) (int, error) {
	cutoff := s.Now().Add(-grace)
	candidates, err := s.store.Reservations().FindConfirmedEndedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	var events []event.Event
	for _, c := range candidates {
		ev, err := s.completeIfFinished(ctx, c.ID(), cutoff)
		if errors.Is(err, reservation.ErrStaleReservation) {
			log.Printf("job=completion_sweep reservation_id=%s skipped=stale", c.ID())
			continue
		}
		if err != nil {
			s.publish(events)
			return len(events), err
		}
		if ev != nil {
			events = append(events, ev)
		}
	}

	s.publish(events)
	return len(events), nil
}

func (s *Service) completeIfFinished(ctx context.Context, id reservation.ID, cutoff time.Time) (event.Event, error) {
	unlock, err := s.locker.Lock(ctx, reservationKey(id))
	if err != nil {
		return nil, err
	}
	defer unlock()

	var ev event.Event
	err = s.store.WithinTransaction(ctx, func(tx domain.Repositories) error {
		r, err := tx.Reservations().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if r.Status() != reservation.StatusConfirmed || r.TimeSlot().End().After(cutoff) {
			return nil
		}
		if ev, err = r.Complete(s.Now()); err != nil {
			return err
		}
		return tx.Reservations().Save(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// mutate runs one state transition on a reservation in its own transaction.
// A non-nil owner restricts the call to the reservation's owner.
func (s *Service) mutate(
	ctx context.Context,
	rawID string,
	owner *Actor,
	apply func(r *reservation.Reservation, now time.Time) (event.Event, error),
) (*reservation.Reservation, error) {
	id, err := reservation.ParseID(rawID)
	if err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, reservationKey(id))
	if err != nil {
		return nil, err
	}
	defer unlock()

	now := s.Now()
	var (
		out    *reservation.Reservation
		events []event.Event
	)
	err = s.store.WithinTransaction(ctx, func(tx domain.Repositories) error {
		r, err := tx.Reservations().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if owner != nil && r.UserID() != owner.UserID {
			return apperror.Forbidden("you can only manage your own reservations")
		}

		ev, err := apply(r, now)
		if err != nil {
			return err
		}
		if err := tx.Reservations().Save(ctx, r); err != nil {
			return err
		}

		out = r
		events = append(events, ev)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(events)
	return out, nil
}

// publish runs after commit. Delivery problems are the publisher's to log;
// they never undo a committed booking.
func (s *Service) publish(events []event.Event) {
	for _, ev := range events {
		log.Printf("event=%s aggregate_id=%s occurred_at=%s", ev.Name(), ev.AggregateID(), ev.OccurredAt().Format(time.RFC3339))
	}
	if s.publisher != nil && len(events) > 0 {
		s.publisher.Publish(events...)
	}
}

func normalizePurpose(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}
