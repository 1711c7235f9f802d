package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"meetingroom/internal/domain/reservation"
	"meetingroom/internal/domain/room"
	"meetingroom/internal/pkg/apperror"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func activeStatuses() []string {
	var out []string
	for _, s := range reservation.ActiveStatuses() {
		out = append(out, string(s))
	}
	return out
}

func (r *ReservationRepository) FindByID(ctx context.Context, id reservation.ID) (*reservation.Reservation, error) {
	return r.findByID(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate locks the row until the surrounding transaction ends.
// SQLite ignores the clause; its writer lock serializes instead.
func (r *ReservationRepository) FindByIDForUpdate(ctx context.Context, id reservation.ID) (*reservation.Reservation, error) {
	return r.findByID(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *ReservationRepository) findByID(q *gorm.DB, id reservation.ID) (*reservation.Reservation, error) {
	var m reservationModel
	if err := q.Where("id = ?", id.String()).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("reservation %s not found", id)
		}
		return nil, fmt.Errorf("find reservation: %w", err)
	}
	return toDomainReservation(m)
}

func (r *ReservationRepository) FindActiveByRoomID(ctx context.Context, roomID room.ID) ([]*reservation.Reservation, error) {
	return r.find(ctx, "list room reservations", func(q *gorm.DB) *gorm.DB {
		return q.Where("room_id = ? AND status IN ?", roomID.String(), activeStatuses()).Order("start_time asc")
	})
}

func (r *ReservationRepository) FindActiveByUserID(ctx context.Context, userID reservation.UserID) ([]*reservation.Reservation, error) {
	return r.find(ctx, "list user reservations", func(q *gorm.DB) *gorm.DB {
		return q.Where("user_id = ? AND status IN ?", userID.String(), activeStatuses()).Order("start_time asc")
	})
}

// FindActiveByUserIDForUpdate locks the user's active rows. PostgreSQL also
// takes a transaction-scoped advisory lock on the user, because FOR UPDATE
// over an empty result locks nothing there. MySQL's next-key locks on the
// user_id index cover the empty case, and SQLite has a single writer.
func (r *ReservationRepository) FindActiveByUserIDForUpdate(ctx context.Context, userID reservation.UserID) ([]*reservation.Reservation, error) {
	db := r.db.WithContext(ctx)
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("SELECT pg_advisory_xact_lock(hashtextextended(?, 0))", "reservations:user:"+userID.String()).Error; err != nil {
			return nil, fmt.Errorf("lock user reservations: %w", err)
		}
	}
	return r.find(ctx, "lock user reservations", func(q *gorm.DB) *gorm.DB {
		return q.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND status IN ?", userID.String(), activeStatuses()).
			Order("start_time asc")
	})
}

func (r *ReservationRepository) FindByUserID(ctx context.Context, userID reservation.UserID) ([]*reservation.Reservation, error) {
	return r.find(ctx, "list user history", func(q *gorm.DB) *gorm.DB {
		return q.Where("user_id = ?", userID.String()).Order("start_time desc")
	})
}

// FindByRoomAndDate uses the standard overlap test start < to AND end > from.
func (r *ReservationRepository) FindByRoomAndDate(ctx context.Context, roomID room.ID, from, to time.Time) ([]*reservation.Reservation, error) {
	return r.find(ctx, "list reservations by date", func(q *gorm.DB) *gorm.DB {
		return q.Where("room_id = ? AND status IN ?", roomID.String(), activeStatuses()).
			Where("start_time < ? AND end_time > ?", to.UTC(), from.UTC()).
			Order("start_time asc")
	})
}

func (r *ReservationRepository) FindPendingCancellations(ctx context.Context) ([]*reservation.Reservation, error) {
	return r.find(ctx, "list pending cancellations", func(q *gorm.DB) *gorm.DB {
		return q.Where("status = ?", string(reservation.StatusCancelRequested)).Order("cancel_requested_at asc")
	})
}

func (r *ReservationRepository) FindConfirmedEndedBefore(ctx context.Context, t time.Time) ([]*reservation.Reservation, error) {
	return r.find(ctx, "list finished reservations", func(q *gorm.DB) *gorm.DB {
		return q.Where("status = ? AND end_time <= ?", string(reservation.StatusConfirmed), t.UTC()).Order("end_time asc")
	})
}

func (r *ReservationRepository) Save(ctx context.Context, res *reservation.Reservation) error {
	m := toReservationModel(res)

	if m.Version == 0 {
		m.Version = 1
		if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
			return writeError("insert reservation", err)
		}
		res.MarkSaved(m.Version)
		return nil
	}

	next := m.Version + 1
	result := r.db.WithContext(ctx).Model(&reservationModel{}).
		Where("id = ? AND version = ?", m.ID, m.Version).
		Updates(map[string]any{
			"status":              m.Status,
			"total_price":         m.TotalPrice,
			"price_currency":      m.PriceCurrency,
			"purpose":             m.Purpose,
			"cancel_reason":       m.CancelReason,
			"cancel_requested_at": m.CancelRequestedAt,
			"updated_at":          m.UpdatedAt,
			"version":             next,
		})
	if result.Error != nil {
		return writeError("update reservation", result.Error)
	}
	if result.RowsAffected == 0 {
		return reservation.ErrStaleReservation
	}
	res.MarkSaved(next)
	return nil
}

func writeError(op string, err error) error {
	if translated := translateReservationWrite(err); translated != err {
		return translated
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (r *ReservationRepository) find(ctx context.Context, op string, scope func(*gorm.DB) *gorm.DB) ([]*reservation.Reservation, error) {
	var ms []reservationModel
	if err := scope(r.db.WithContext(ctx)).Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return toDomainReservations(ms)
}
