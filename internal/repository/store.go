package repository

import (
	"context"

	"gorm.io/gorm"

	"meetingroom/internal/domain"
	"meetingroom/internal/domain/reservation"
	"meetingroom/internal/domain/room"
)

// Store is the gorm-backed unit of work.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Rooms() room.Repository               { return NewRoomRepository(s.db) }
func (s *Store) RoomGroups() room.GroupRepository     { return NewRoomGroupRepository(s.db) }
func (s *Store) Reservations() reservation.Repository { return NewReservationRepository(s.db) }

func (s *Store) WithinTransaction(ctx context.Context, fn func(tx domain.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

var _ domain.Store = (*Store)(nil)
