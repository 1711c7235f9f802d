package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"meetingroom/internal/domain/room"
	"meetingroom/internal/pkg/apperror"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) FindByID(ctx context.Context, id room.ID) (*room.Room, error) {
	return r.findByID(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate takes a row lock that is held until the surrounding
// transaction ends. SQLite ignores the clause; its writer lock serializes instead.
func (r *RoomRepository) FindByIDForUpdate(ctx context.Context, id room.ID) (*room.Room, error) {
	return r.findByID(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *RoomRepository) findByID(q *gorm.DB, id room.ID) (*room.Room, error) {
	var m roomModel
	if err := q.Where("id = ?", id.String()).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("room %s not found", id)
		}
		return nil, fmt.Errorf("find room: %w", err)
	}
	return toDomainRoom(m)
}

func (r *RoomRepository) FindAll(ctx context.Context) ([]*room.Room, error) {
	var ms []roomModel
	if err := r.db.WithContext(ctx).Order("name asc").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return toDomainRooms(ms)
}

func (r *RoomRepository) FindActive(ctx context.Context) ([]*room.Room, error) {
	var ms []roomModel
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name asc").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("list active rooms: %w", err)
	}
	return toDomainRooms(ms)
}

func (r *RoomRepository) FindByGroupIDs(ctx context.Context, ids []room.GroupID) ([]*room.Room, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, id.String())
	}
	var ms []roomModel
	if err := r.db.WithContext(ctx).Where("room_group_id IN ?", keys).Order("name asc").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("list rooms by group: %w", err)
	}
	return toDomainRooms(ms)
}

func (r *RoomRepository) Save(ctx context.Context, rm *room.Room) error {
	m, err := toRoomModel(rm)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(&m).Error
	if err != nil {
		return fmt.Errorf("save room: %w", err)
	}
	return nil
}
