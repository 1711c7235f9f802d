package catalog

import (
	"time"

	"meetingroom/internal/domain/room"
	"meetingroom/internal/pkg/optional"
)

// ---------- ROOMS ----------

type CreateRoomRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Capacity    int     `json:"capacity" validate:"required,gt=0"`
	// OperatingHours defaults to weekdays 09:00-18:00 when omitted.
	OperatingHours *room.OperatingHours `json:"operating_hours"`
	PricePerSlot   int64                `json:"price_per_slot" validate:"gte=0"`
	Currency       string               `json:"currency" validate:"omitempty,len=3"`
	GroupID        *string              `json:"group_id" validate:"omitempty,uuid"`
	Metadata       map[string]any       `json:"metadata"`
}

// UpdateRoomRequest is a partial update: absent keys are left alone,
// explicit nulls clear nullable fields.
type UpdateRoomRequest struct {
	Name           optional.Value[string]              `json:"name"`
	Description    optional.Value[*string]             `json:"description"`
	Capacity       optional.Value[int]                 `json:"capacity"`
	OperatingHours optional.Value[room.OperatingHours] `json:"operating_hours"`
	PricePerSlot   optional.Value[int64]               `json:"price_per_slot"`
	Currency       optional.Value[string]              `json:"currency"`
	GroupID        optional.Value[*string]             `json:"group_id"`
	Metadata       optional.Value[map[string]any]      `json:"metadata"`
}

// ---------- GROUPS ----------

type CreateGroupRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	ParentID    *string `json:"parent_id" validate:"omitempty,uuid"`
	SortOrder   int     `json:"sort_order"`
}

type UpdateGroupRequest struct {
	Name        optional.Value[string]  `json:"name"`
	Description optional.Value[*string] `json:"description"`
	ParentID    optional.Value[*string] `json:"parent_id"`
	SortOrder   optional.Value[int]     `json:"sort_order"`
}

// ---------- RESPONSES ----------

type RoomResponse struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Description    *string             `json:"description,omitempty"`
	Capacity       int                 `json:"capacity"`
	OperatingHours room.OperatingHours `json:"operating_hours"`
	PricePerSlot   room.Money          `json:"price_per_slot"`
	GroupID        *string             `json:"group_id,omitempty"`
	IsActive       bool                `json:"is_active"`
	Metadata       map[string]any      `json:"metadata,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

type GroupResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	ParentID    *string `json:"parent_id,omitempty"`
	SortOrder   int     `json:"sort_order"`
	IsActive    bool    `json:"is_active"`
}

// GroupNodeResponse is one group with its direct rooms and nested children.
type GroupNodeResponse struct {
	GroupResponse
	Rooms          []RoomResponse      `json:"rooms"`
	Children       []GroupNodeResponse `json:"children"`
	TotalRoomCount int                 `json:"total_room_count"`
}

func toRoomResponse(r *room.Room) RoomResponse {
	resp := RoomResponse{
		ID:             r.ID().String(),
		Name:           r.Name(),
		Description:    r.Description(),
		Capacity:       r.Capacity(),
		OperatingHours: r.OperatingHours(),
		PricePerSlot:   r.PricePerSlot(),
		IsActive:       r.IsActive(),
		Metadata:       r.Metadata(),
		CreatedAt:      r.CreatedAt(),
		UpdatedAt:      r.UpdatedAt(),
	}
	if g := r.GroupID(); g != nil {
		s := g.String()
		resp.GroupID = &s
	}
	return resp
}

func toRoomResponses(rs []*room.Room) []RoomResponse {
	out := make([]RoomResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, toRoomResponse(r))
	}
	return out
}

func toGroupResponse(g *room.Group) GroupResponse {
	resp := GroupResponse{
		ID:          g.ID().String(),
		Name:        g.Name(),
		Description: g.Description(),
		SortOrder:   g.SortOrder(),
		IsActive:    g.IsActive(),
	}
	if p := g.ParentID(); p != nil {
		s := p.String()
		resp.ParentID = &s
	}
	return resp
}

func toNodeResponse(n room.Node) GroupNodeResponse {
	resp := GroupNodeResponse{
		GroupResponse:  toGroupResponse(n.Group),
		Rooms:          toRoomResponses(n.Rooms),
		Children:       make([]GroupNodeResponse, 0, len(n.Children)),
		TotalRoomCount: len(n.Rooms),
	}
	for _, c := range n.Children {
		child := toNodeResponse(c)
		resp.TotalRoomCount += child.TotalRoomCount
		resp.Children = append(resp.Children, child)
	}
	return resp
}
