package room

import (
	"strings"
	"time"

	"meetingroom/internal/pkg/apperror"
	"meetingroom/internal/pkg/optional"
)

type Room struct {
	id           ID
	name         string
	description  *string
	capacity     int
	hours        OperatingHours
	pricePerSlot Money
	groupID      *GroupID
	active       bool
	metadata     map[string]any
	createdAt    time.Time
	updatedAt    time.Time
}

type NewRoomParams struct {
	Name         string
	Description  *string
	Capacity     int
	Hours        OperatingHours
	PricePerSlot Money
	GroupID      *GroupID
	Metadata     map[string]any
}

// NewRoom creates an active room.
func NewRoom(p NewRoomParams, now time.Time) (*Room, Created, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, Created{}, apperror.Validation("room name is required")
	}
	if p.Capacity <= 0 {
		return nil, Created{}, apperror.Validation("capacity must be positive")
	}
	if p.PricePerSlot.Currency() == "" {
		return nil, Created{}, apperror.Validation("price per slot is required")
	}

	r := &Room{
		id:           NewID(),
		name:         name,
		description:  p.Description,
		capacity:     p.Capacity,
		hours:        p.Hours,
		pricePerSlot: p.PricePerSlot,
		groupID:      p.GroupID,
		active:       true,
		metadata:     p.Metadata,
		createdAt:    now,
		updatedAt:    now,
	}
	return r, Created{RoomID: r.id, RoomName: r.name, At: now}, nil
}

// RoomUpdate carries only the fields a caller wants changed. A pointer field
// set to nil clears it; an unset field is left alone.
type RoomUpdate struct {
	Name         optional.Value[string]
	Description  optional.Value[*string]
	Capacity     optional.Value[int]
	Hours        optional.Value[OperatingHours]
	PricePerSlot optional.Value[Money]
	GroupID      optional.Value[*GroupID]
	Metadata     optional.Value[map[string]any]
}

// Update validates every provided field before applying any of them.
func (r *Room) Update(u RoomUpdate, now time.Time) (Updated, error) {
	name, setName := u.Name.Get()
	if setName {
		name = strings.TrimSpace(name)
		if name == "" {
			return Updated{}, apperror.Validation("room name is required")
		}
	}
	capacity, setCapacity := u.Capacity.Get()
	if setCapacity && capacity <= 0 {
		return Updated{}, apperror.Validation("capacity must be positive")
	}

	var fields []string
	if setName {
		r.name = name
		fields = append(fields, "name")
	}
	if setCapacity {
		r.capacity = capacity
		fields = append(fields, "capacity")
	}
	if v, ok := u.Description.Get(); ok {
		r.description = v
		fields = append(fields, "description")
	}
	if v, ok := u.Hours.Get(); ok {
		r.hours = v
		fields = append(fields, "operating_hours")
	}
	if v, ok := u.PricePerSlot.Get(); ok {
		r.pricePerSlot = v
		fields = append(fields, "price_per_slot")
	}
	if v, ok := u.GroupID.Get(); ok {
		r.groupID = v
		fields = append(fields, "group_id")
	}
	if v, ok := u.Metadata.Get(); ok {
		r.metadata = v
		fields = append(fields, "metadata")
	}

	r.updatedAt = now
	return Updated{RoomID: r.id, Fields: fields, At: now}, nil
}

// Activate and Deactivate leave existing reservations untouched.
func (r *Room) Activate(now time.Time) {
	if r.active {
		return
	}
	r.active = true
	r.updatedAt = now
}

func (r *Room) Deactivate(now time.Time) {
	if !r.active {
		return
	}
	r.active = false
	r.updatedAt = now
}

func (r *Room) IsAvailableAt(t time.Time) bool {
	return r.active && r.hours.IsOpenAt(t)
}

func (r *Room) ID() ID                         { return r.id }
func (r *Room) Name() string                   { return r.name }
func (r *Room) Description() *string           { return r.description }
func (r *Room) Capacity() int                  { return r.capacity }
func (r *Room) OperatingHours() OperatingHours { return r.hours }
func (r *Room) PricePerSlot() Money            { return r.pricePerSlot }
func (r *Room) GroupID() *GroupID              { return r.groupID }
func (r *Room) IsActive() bool                 { return r.active }
func (r *Room) Metadata() map[string]any       { return r.metadata }
func (r *Room) CreatedAt() time.Time           { return r.createdAt }
func (r *Room) UpdatedAt() time.Time           { return r.updatedAt }

// Snapshot is the flat persisted form of a Room.
type Snapshot struct {
	ID           ID
	Name         string
	Description  *string
	Capacity     int
	Hours        OperatingHours
	PricePerSlot Money
	GroupID      *GroupID
	Active       bool
	Metadata     map[string]any
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r *Room) Snapshot() Snapshot {
	return Snapshot{
		ID:           r.id,
		Name:         r.name,
		Description:  r.description,
		Capacity:     r.capacity,
		Hours:        r.hours,
		PricePerSlot: r.pricePerSlot,
		GroupID:      r.groupID,
		Active:       r.active,
		Metadata:     r.metadata,
		CreatedAt:    r.createdAt,
		UpdatedAt:    r.updatedAt,
	}
}

// Restore rebuilds a Room from storage without emitting events.
func Restore(s Snapshot) *Room {
	return &Room{
		id:           s.ID,
		name:         s.Name,
		description:  s.Description,
		capacity:     s.Capacity,
		hours:        s.Hours,
		pricePerSlot: s.PricePerSlot,
		groupID:      s.GroupID,
		active:       s.Active,
		metadata:     s.Metadata,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
	}
}
