package domain

import (
	"context"

	"meetingroom/internal/domain/reservation"
	"meetingroom/internal/domain/room"
)

// Repositories groups the repositories that share one unit of work.
type Repositories interface {
	Rooms() room.Repository
	RoomGroups() room.GroupRepository
	Reservations() reservation.Repository
}

// Store runs fn inside a transaction. The Repositories handed to fn are
// bound to it; returning an error rolls every write back.
type Store interface {
	Repositories
	WithinTransaction(ctx context.Context, fn func(tx Repositories) error) error
}
