package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"meetingroom/internal/domain/reservation"
)

const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// isSlotConflict reports whether a write was rejected by one of the
// reservation overlap guards in the schema.
func isSlotConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation || pgErr.Code == pgExclusionViolation
	}
	return isUniqueConstraintError(err)
}

func isUniqueConstraintError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint") || strings.Contains(msg, "unique failed")
}

// translateReservationWrite maps a storage conflict onto the same error a
// caller gets from the availability check.
func translateReservationWrite(err error) error {
	if err == nil {
		return nil
	}
	if isSlotConflict(err) {
		return reservation.ErrSlotAlreadyBooked
	}
	return err
}
