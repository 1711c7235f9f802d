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

type RoomGroupRepository struct {
	db *gorm.DB
}

func NewRoomGroupRepository(db *gorm.DB) *RoomGroupRepository {
	return &RoomGroupRepository{db: db}
}

func (r *RoomGroupRepository) FindByID(ctx context.Context, id room.GroupID) (*room.Group, error) {
	var m roomGroupModel
	if err := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("room group %s not found", id)
		}
		return nil, fmt.Errorf("find room group: %w", err)
	}
	return toDomainRoomGroup(m)
}

// FindAll is ordered by sort order, then name.
func (r *RoomGroupRepository) FindAll(ctx context.Context) ([]*room.Group, error) {
	var ms []roomGroupModel
	if err := r.db.WithContext(ctx).Order("sort_order asc").Order("name asc").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("list room groups: %w", err)
	}
	out := make([]*room.Group, 0, len(ms))
	for _, m := range ms {
		g, err := toDomainRoomGroup(m)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

func (r *RoomGroupRepository) Save(ctx context.Context, g *room.Group) error {
	m := toRoomGroupModel(g)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(&m).Error
	if err != nil {
		return fmt.Errorf("save room group: %w", err)
	}
	return nil
}
