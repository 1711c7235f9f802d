package room

import "context"

// Repository is implemented by the persistence layer. FindByID fails with a
// NotFound error when the room does not exist.
type Repository interface {
	FindByID(ctx context.Context, id ID) (*Room, error)
	// FindByIDForUpdate also row-locks the room for the rest of the transaction.
	FindByIDForUpdate(ctx context.Context, id ID) (*Room, error)
	FindAll(ctx context.Context) ([]*Room, error)
	FindActive(ctx context.Context) ([]*Room, error)
	FindByGroupIDs(ctx context.Context, ids []GroupID) ([]*Room, error)
	Save(ctx context.Context, r *Room) error
}

type GroupRepository interface {
	FindByID(ctx context.Context, id GroupID) (*Group, error)
	FindAll(ctx context.Context) ([]*Group, error)
	Save(ctx context.Context, g *Group) error
}
