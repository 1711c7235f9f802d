package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetingroom/internal/pkg/apperror"
	"meetingroom/internal/pkg/optional"
)

func group(t *testing.T, name string, parent *Group, order int) *Group {
	t.Helper()
	p := NewGroupParams{Name: name, SortOrder: order}
	if parent != nil {
		id := parent.ID()
		p.ParentID = &id
	}
	g, _, err := NewGroup(p, t0)
	require.NoError(t, err)
	return g
}

func roomIn(t *testing.T, name string, g *Group) *Room {
	t.Helper()
	id := g.ID()
	r, _, err := NewRoom(NewRoomParams{Name: name, Capacity: 2, PricePerSlot: krw(t, 1000), GroupID: &id}, t0)
	require.NoError(t, err)
	return r
}

func TestGroupTree(t *testing.T) {
	hq := group(t, "HQ", nil, 0)
	annex := group(t, "Annex", nil, 1)
	f10 := group(t, "10F", hq, 3)
	f3 := group(t, "3F", hq, 1)
	f5 := group(t, "5F", hq, 2)
	wing := group(t, "East wing", f5, 0)

	rooms := []*Room{
		roomIn(t, "A", f3), roomIn(t, "B", f3),
		roomIn(t, "C", f5), roomIn(t, "D", wing),
		roomIn(t, "E", f10), roomIn(t, "F", annex),
	}
	tree := NewGroupTree([]*Group{f10, wing, hq, f3, annex, f5}, rooms)

	roots := tree.Roots()
	require.Len(t, roots, 2)
	assert.Equal(t, "HQ", roots[0].Name())
	assert.Equal(t, "Annex", roots[1].Name())

	children := tree.Children(hq.ID())
	require.Len(t, children, 3)
	assert.Equal(t, []string{"3F", "5F", "10F"}, []string{children[0].Name(), children[1].Name(), children[2].Name()})

	assert.Equal(t, 5, tree.TotalRoomCount(hq.ID()))
	assert.Len(t, tree.AllRooms(f5.ID()), 2)
	assert.Len(t, tree.Rooms(f5.ID()), 1)

	assert.True(t, tree.IsDescendant(wing.ID(), hq.ID()))
	assert.False(t, tree.IsDescendant(hq.ID(), wing.ID()))
	assert.False(t, tree.IsDescendant(hq.ID(), hq.ID()))

	node, ok := tree.Subtree(hq.ID())
	require.True(t, ok)
	assert.Len(t, node.Children, 3)
	assert.Len(t, node.Children[1].Children, 1)
}

func TestGroupTreeSurvivesCycles(t *testing.T) {
	a := group(t, "A", nil, 0)
	b := group(t, "B", a, 0)
	// corrupt storage: A now points at B
	bid := b.ID()
	a = RestoreGroup(GroupSnapshot{ID: a.ID(), Name: "A", ParentID: &bid, Active: true})

	tree := NewGroupTree([]*Group{a, b}, nil)
	assert.Empty(t, tree.Roots())
	assert.Equal(t, 0, tree.TotalRoomCount(a.ID()))
	assert.True(t, tree.IsDescendant(b.ID(), a.ID()))
}

func TestGroupUpdate(t *testing.T) {
	g := group(t, "HQ", nil, 0)

	self := g.ID()
	_, err := g.Update(GroupUpdate{ParentID: optional.Of(&self)}, t0)
	assert.ErrorIs(t, err, apperror.ErrDomain)

	before := g.Snapshot()
	_, err = g.Update(GroupUpdate{Name: optional.Of("Moved"), SortOrder: optional.Of(9), ParentID: optional.Of(&self)}, t0)
	assert.ErrorIs(t, err, apperror.ErrDomain)
	assert.Equal(t, before, g.Snapshot())

	ev, err := g.Update(GroupUpdate{SortOrder: optional.Of(5), Name: optional.Of("Main")}, t0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"name", "sort_order"}, ev.Fields)
	assert.Equal(t, 5, g.SortOrder())
	assert.Equal(t, "Main", g.Name())
}
