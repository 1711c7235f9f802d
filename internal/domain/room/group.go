package room

import (
	"strings"
	"time"

	"meetingroom/internal/pkg/apperror"
	"meetingroom/internal/pkg/optional"
)

// Group is a node of the building/floor hierarchy. It stores only its
// parent reference; children are resolved through a GroupTree.
type Group struct {
	id          GroupID
	name        string
	description *string
	parentID    *GroupID
	sortOrder   int
	active      bool
	createdAt   time.Time
	updatedAt   time.Time
}

type NewGroupParams struct {
	Name        string
	Description *string
	ParentID    *GroupID
	SortOrder   int
}

func NewGroup(p NewGroupParams, now time.Time) (*Group, GroupCreated, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, GroupCreated{}, apperror.Validation("group name is required")
	}
	g := &Group{
		id:          NewGroupID(),
		name:        name,
		description: p.Description,
		parentID:    p.ParentID,
		sortOrder:   p.SortOrder,
		active:      true,
		createdAt:   now,
		updatedAt:   now,
	}
	return g, GroupCreated{GroupID: g.id, GroupName: g.name, At: now}, nil
}

type GroupUpdate struct {
	Name        optional.Value[string]
	Description optional.Value[*string]
	ParentID    optional.Value[*GroupID]
	SortOrder   optional.Value[int]
}

// Update applies the provided fields, or none of them when one is invalid.
// Cycles deeper than a self-reference need the whole tree and are checked
// by the caller.
func (g *Group) Update(u GroupUpdate, now time.Time) (GroupUpdated, error) {
	name, setName := u.Name.Get()
	if setName {
		name = strings.TrimSpace(name)
		if name == "" {
			return GroupUpdated{}, apperror.Validation("group name is required")
		}
	}
	parentID, setParent := u.ParentID.Get()
	if setParent && parentID != nil && *parentID == g.id {
		return GroupUpdated{}, apperror.Domain("a group cannot be its own parent")
	}

	var fields []string
	if setName {
		g.name = name
		fields = append(fields, "name")
	}
	if v, ok := u.Description.Get(); ok {
		g.description = v
		fields = append(fields, "description")
	}
	if setParent {
		g.parentID = parentID
		fields = append(fields, "parent_id")
	}
	if v, ok := u.SortOrder.Get(); ok {
		g.sortOrder = v
		fields = append(fields, "sort_order")
	}

	g.updatedAt = now
	return GroupUpdated{GroupID: g.id, Fields: fields, At: now}, nil
}

func (g *Group) Activate(now time.Time) {
	if !g.active {
		g.active = true
		g.updatedAt = now
	}
}

func (g *Group) Deactivate(now time.Time) {
	if g.active {
		g.active = false
		g.updatedAt = now
	}
}

func (g *Group) ID() GroupID          { return g.id }
func (g *Group) Name() string         { return g.name }
func (g *Group) Description() *string { return g.description }
func (g *Group) ParentID() *GroupID   { return g.parentID }
func (g *Group) SortOrder() int       { return g.sortOrder }
func (g *Group) IsActive() bool       { return g.active }
func (g *Group) CreatedAt() time.Time { return g.createdAt }
func (g *Group) UpdatedAt() time.Time { return g.updatedAt }
func (g *Group) IsRoot() bool         { return g.parentID == nil }

type GroupSnapshot struct {
	ID          GroupID
	Name        string
	Description *string
	ParentID    *GroupID
	SortOrder   int
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (g *Group) Snapshot() GroupSnapshot {
	return GroupSnapshot{
		ID:          g.id,
		Name:        g.name,
		Description: g.description,
		ParentID:    g.parentID,
		SortOrder:   g.sortOrder,
		Active:      g.active,
		CreatedAt:   g.createdAt,
		UpdatedAt:   g.updatedAt,
	}
}

func RestoreGroup(s GroupSnapshot) *Group {
	return &Group{
		id:          s.ID,
		name:        s.Name,
		description: s.Description,
		parentID:    s.ParentID,
		sortOrder:   s.SortOrder,
		active:      s.Active,
		createdAt:   s.CreatedAt,
		updatedAt:   s.UpdatedAt,
	}
}
