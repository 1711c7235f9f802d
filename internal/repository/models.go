package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"meetingroom/internal/domain/reservation"
	"meetingroom/internal/domain/room"
)

// Timestamps are owned by the domain clock, so gorm's auto timestamps are off.

type roomModel struct {
	ID             string         `gorm:"column:id;primaryKey;type:varchar(36)"`
	Name           string         `gorm:"column:name;size:100;not null"`
	Description    *string        `gorm:"column:description;type:text"`
	Capacity       int            `gorm:"column:capacity;not null"`
	OperatingHours string         `gorm:"column:operating_hours;type:text;not null"`
	PricePerSlot   int64          `gorm:"column:price_per_slot;not null"`
	PriceCurrency  string         `gorm:"column:price_currency;size:3;not null"`
	RoomGroupID    *string        `gorm:"column:room_group_id;type:varchar(36);index"`
	IsActive       bool           `gorm:"column:is_active;not null;index"`
	Metadata       *string        `gorm:"column:metadata;type:text"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime:false"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (roomModel) TableName() string { return "rooms" }

type roomGroupModel struct {
	ID          string         `gorm:"column:id;primaryKey;type:varchar(36)"`
	Name        string         `gorm:"column:name;size:100;not null"`
	Description *string        `gorm:"column:description;type:text"`
	ParentID    *string        `gorm:"column:parent_id;type:varchar(36);index"`
	SortOrder   int            `gorm:"column:sort_order;not null;default:0"`
	IsActive    bool           `gorm:"column:is_active;not null"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime:false"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (roomGroupModel) TableName() string { return "room_groups" }

type reservationModel struct {
	ID                string         `gorm:"column:id;primaryKey;type:varchar(36)"`
	RoomID            string         `gorm:"column:room_id;type:varchar(36);not null;index:idx_reservations_room_time"`
	UserID            string         `gorm:"column:user_id;type:varchar(36);not null;index"`
	StartTime         time.Time      `gorm:"column:start_time;not null;index:idx_reservations_room_time"`
	EndTime           time.Time      `gorm:"column:end_time;not null"`
	Status            string         `gorm:"column:status;size:20;not null;index"`
	TotalPrice        int64          `gorm:"column:total_price;not null"`
	PriceCurrency     string         `gorm:"column:price_currency;size:3;not null"`
	Purpose           *string        `gorm:"column:purpose;type:text"`
	CancelReason      *string        `gorm:"column:cancel_reason;type:text"`
	CancelRequestedAt *time.Time     `gorm:"column:cancel_requested_at"`
	Version           int            `gorm:"column:version;not null;default:1"`
	CreatedAt         time.Time      `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt         time.Time      `gorm:"column:updated_at;autoUpdateTime:false"`
	DeletedAt         gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (reservationModel) TableName() string { return "reservations" }

func toRoomModel(r *room.Room) (roomModel, error) {
	s := r.Snapshot()

	hours, err := json.Marshal(s.Hours)
	if err != nil {
		return roomModel{}, fmt.Errorf("encode operating hours: %w", err)
	}

	var metadata *string
	if s.Metadata != nil {
		raw, err := json.Marshal(s.Metadata)
		if err != nil {
			return roomModel{}, fmt.Errorf("encode metadata: %w", err)
		}
		v := string(raw)
		metadata = &v
	}

	var groupID *string
	if s.GroupID != nil {
		v := s.GroupID.String()
		groupID = &v
	}

	return roomModel{
		ID:             s.ID.String(),
		Name:           s.Name,
		Description:    s.Description,
		Capacity:       s.Capacity,
		OperatingHours: string(hours),
		PricePerSlot:   s.PricePerSlot.Amount(),
		PriceCurrency:  s.PricePerSlot.Currency(),
		RoomGroupID:    groupID,
		IsActive:       s.Active,
		Metadata:       metadata,
		CreatedAt:      s.CreatedAt.UTC(),
		UpdatedAt:      s.UpdatedAt.UTC(),
	}, nil
}

func toDomainRoom(m roomModel) (*room.Room, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, fmt.Errorf("room %q: %w", m.ID, err)
	}

	var hours room.OperatingHours
	if err := json.Unmarshal([]byte(m.OperatingHours), &hours); err != nil {
		return nil, fmt.Errorf("room %s operating hours: %w", m.ID, err)
	}

	price, err := room.NewMoney(m.PricePerSlot, m.PriceCurrency)
	if err != nil {
		return nil, fmt.Errorf("room %s price: %w", m.ID, err)
	}

	var metadata map[string]any
	if m.Metadata != nil && *m.Metadata != "" {
		if err := json.Unmarshal([]byte(*m.Metadata), &metadata); err != nil {
			return nil, fmt.Errorf("room %s metadata: %w", m.ID, err)
		}
	}

	var groupID *room.GroupID
	if m.RoomGroupID != nil {
		g, err := uuid.Parse(*m.RoomGroupID)
		if err != nil {
			return nil, fmt.Errorf("room %s group id: %w", m.ID, err)
		}
		gid := room.GroupID(g)
		groupID = &gid
	}

	return room.Restore(room.Snapshot{
		ID:           room.ID(id),
		Name:         m.Name,
		Description:  m.Description,
		Capacity:     m.Capacity,
		Hours:        hours,
		PricePerSlot: price,
		GroupID:      groupID,
		Active:       m.IsActive,
		Metadata:     metadata,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}), nil
}

func toRoomGroupModel(g *room.Group) roomGroupModel {
	s := g.Snapshot()
	var parentID *string
	if s.ParentID != nil {
		v := s.ParentID.String()
		parentID = &v
	}
	return roomGroupModel{
		ID:          s.ID.String(),
		Name:        s.Name,
		Description: s.Description,
		ParentID:    parentID,
		SortOrder:   s.SortOrder,
		IsActive:    s.Active,
		CreatedAt:   s.CreatedAt.UTC(),
		UpdatedAt:   s.UpdatedAt.UTC(),
	}
}

func toDomainRoomGroup(m roomGroupModel) (*room.Group, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, fmt.Errorf("room group %q: %w", m.ID, err)
	}
	var parentID *room.GroupID
	if m.ParentID != nil {
		p, err := uuid.Parse(*m.ParentID)
		if err != nil {
			return nil, fmt.Errorf("room group %s parent id: %w", m.ID, err)
		}
		pid := room.GroupID(p)
		parentID = &pid
	}
	return room.RestoreGroup(room.GroupSnapshot{
		ID:          room.GroupID(id),
		Name:        m.Name,
		Description: m.Description,
		ParentID:    parentID,
		SortOrder:   m.SortOrder,
		Active:      m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}), nil
}

func toReservationModel(r *reservation.Reservation) reservationModel {
	s := r.Snapshot()
	var requestedAt *time.Time
	if s.CancelRequestedAt != nil {
		v := s.CancelRequestedAt.UTC()
		requestedAt = &v
	}
	return reservationModel{
		ID:                s.ID.String(),
		RoomID:            s.RoomID.String(),
		UserID:            s.UserID.String(),
		StartTime:         s.Slot.Start().UTC(),
		EndTime:           s.Slot.End().UTC(),
		Status:            string(s.Status),
		TotalPrice:        s.TotalPrice.Amount(),
		PriceCurrency:     s.TotalPrice.Currency(),
		Purpose:           s.Purpose,
		CancelReason:      s.CancelReason,
		CancelRequestedAt: requestedAt,
		Version:           s.Version,
		CreatedAt:         s.CreatedAt.UTC(),
		UpdatedAt:         s.UpdatedAt.UTC(),
	}
}

func toDomainReservation(m reservationModel) (*reservation.Reservation, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, fmt.Errorf("reservation %q: %w", m.ID, err)
	}
	roomID, err := uuid.Parse(m.RoomID)
	if err != nil {
		return nil, fmt.Errorf("reservation %s room id: %w", m.ID, err)
	}
	userID, err := uuid.Parse(m.UserID)
	if err != nil {
		return nil, fmt.Errorf("reservation %s user id: %w", m.ID, err)
	}
	slot, err := reservation.NewTimeSlot(m.StartTime, m.EndTime)
	if err != nil {
		return nil, fmt.Errorf("reservation %s time slot: %w", m.ID, err)
	}
	status, err := reservation.ParseStatus(m.Status)
	if err != nil {
		return nil, fmt.Errorf("reservation %s: %w", m.ID, err)
	}
	price, err := room.NewMoney(m.TotalPrice, m.PriceCurrency)
	if err != nil {
		return nil, fmt.Errorf("reservation %s price: %w", m.ID, err)
	}

	return reservation.Restore(reservation.Snapshot{
		ID:                reservation.ID(id),
		RoomID:            room.ID(roomID),
		UserID:            reservation.UserID(userID),
		Slot:              slot,
		Status:            status,
		TotalPrice:        price,
		Purpose:           m.Purpose,
		CancelReason:      m.CancelReason,
		CancelRequestedAt: m.CancelRequestedAt,
		Version:           m.Version,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}), nil
}

func toDomainReservations(ms []reservationModel) ([]*reservation.Reservation, error) {
	out := make([]*reservation.Reservation, 0, len(ms))
	for _, m := range ms {
		r, err := toDomainReservation(m)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func toDomainRooms(ms []roomModel) ([]*room.Room, error) {
	out := make([]*room.Room, 0, len(ms))
	for _, m := range ms {
		r, err := toDomainRoom(m)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
