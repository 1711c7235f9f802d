package room

import "time"

type Created struct {
	RoomID   ID        `json:"room_id"`
	RoomName string    `json:"room_name"`
	At       time.Time `json:"occurred_at"`
}

func (e Created) Name() string          { return "room.created" }
func (e Created) AggregateID() string   { return e.RoomID.String() }
func (e Created) OccurredAt() time.Time { return e.At }

// Updated lists the fields that were explicitly provided.
type Updated struct {
	RoomID ID        `json:"room_id"`
	Fields []string  `json:"fields"`
	At     time.Time `json:"occurred_at"`
}

func (e Updated) Name() string          { return "room.updated" }
func (e Updated) AggregateID() string   { return e.RoomID.String() }
func (e Updated) OccurredAt() time.Time { return e.At }

type GroupCreated struct {
	GroupID   GroupID   `json:"group_id"`
	GroupName string    `json:"group_name"`
	At        time.Time `json:"occurred_at"`
}

func (e GroupCreated) Name() string          { return "room_group.created" }
func (e GroupCreated) AggregateID() string   { return e.GroupID.String() }
func (e GroupCreated) OccurredAt() time.Time { return e.At }

type GroupUpdated struct {
	GroupID GroupID   `json:"group_id"`
	Fields  []string  `json:"fields"`
	At      time.Time `json:"occurred_at"`
}

func (e GroupUpdated) Name() string          { return "room_group.updated" }
func (e GroupUpdated) AggregateID() string   { return e.GroupID.String() }
func (e GroupUpdated) OccurredAt() time.Time { return e.At }
