package room

import "sort"

// GroupTree is a read-time projection of the group hierarchy: an arena of
// groups indexed by id plus adjacency lists. It is rebuilt from storage on
// every read and never persisted.
type GroupTree struct {
	groups   map[GroupID]*Group
	children map[GroupID][]GroupID
	rooms    map[GroupID][]*Room
	roots    []GroupID
}

// Node is one level of an expanded subtree.
type Node struct {
	Group    *Group
	Rooms    []*Room
	Children []Node
}

func NewGroupTree(groups []*Group, rooms []*Room) *GroupTree {
	t := &GroupTree{
		groups:   make(map[GroupID]*Group, len(groups)),
		children: make(map[GroupID][]GroupID),
		rooms:    make(map[GroupID][]*Room),
	}
	for _, g := range groups {
		t.groups[g.id] = g
	}

	for _, g := range groups {
		if g.parentID != nil {
			if _, ok := t.groups[*g.parentID]; ok {
				t.children[*g.parentID] = append(t.children[*g.parentID], g.id)
				continue
			}
		}
		// a dangling parent reference makes the group a root of this projection
		t.roots = append(t.roots, g.id)
	}

	for _, r := range rooms {
		if r.groupID == nil {
			continue
		}
		if _, ok := t.groups[*r.groupID]; ok {
			t.rooms[*r.groupID] = append(t.rooms[*r.groupID], r)
		}
	}

	t.sortIDs(t.roots)
	for id := range t.children {
		t.sortIDs(t.children[id])
	}
	for id := range t.rooms {
		rs := t.rooms[id]
		sort.SliceStable(rs, func(i, j int) bool { return rs[i].name < rs[j].name })
	}
	return t
}

func (t *GroupTree) sortIDs(ids []GroupID) {
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := t.groups[ids[i]], t.groups[ids[j]]
		if a.sortOrder != b.sortOrder {
			return a.sortOrder < b.sortOrder
		}
		return a.name < b.name
	})
}

func (t *GroupTree) Group(id GroupID) (*Group, bool) {
	g, ok := t.groups[id]
	return g, ok
}

// Roots are ordered by sort order, then name.
func (t *GroupTree) Roots() []*Group {
	return t.resolve(t.roots)
}

func (t *GroupTree) Children(id GroupID) []*Group {
	return t.resolve(t.children[id])
}

// Rooms returns the rooms attached directly to id.
func (t *GroupTree) Rooms(id GroupID) []*Room {
	return t.rooms[id]
}

// AllRooms flattens the subtree rooted at id, parents before children.
func (t *GroupTree) AllRooms(id GroupID) []*Room {
	var out []*Room
	t.walk(id, func(g GroupID) {
		out = append(out, t.rooms[g]...)
	})
	return out
}

func (t *GroupTree) TotalRoomCount(id GroupID) int {
	n := 0
	t.walk(id, func(g GroupID) { n += len(t.rooms[g]) })
	return n
}

// IsDescendant reports whether candidate lies in the subtree below ancestor.
func (t *GroupTree) IsDescendant(candidate, ancestor GroupID) bool {
	found := false
	t.walk(ancestor, func(g GroupID) {
		if g == candidate && g != ancestor {
			found = true
		}
	})
	return found
}

// Subtree expands id into nested nodes.
func (t *GroupTree) Subtree(id GroupID) (Node, bool) {
	if _, ok := t.groups[id]; !ok {
		return Node{}, false
	}
	return t.expand(id, map[GroupID]bool{}), true
}

func (t *GroupTree) expand(id GroupID, seen map[GroupID]bool) Node {
	seen[id] = true
	n := Node{Group: t.groups[id], Rooms: t.rooms[id]}
	for _, c := range t.children[id] {
		if seen[c] {
			continue
		}
		n.Children = append(n.Children, t.expand(c, seen))
	}
	return n
}

// walk visits id and its descendants breadth first, once each, so a
// corrupted parent chain cannot loop forever.
func (t *GroupTree) walk(id GroupID, visit func(GroupID)) {
	if _, ok := t.groups[id]; !ok {
		return
	}
	seen := map[GroupID]bool{id: true}
	queue := []GroupID{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		visit(cur)
		for _, c := range t.children[cur] {
			if !seen[c] {
				seen[c] = true
				queue = append(queue, c)
			}
		}
	}
}

func (t *GroupTree) resolve(ids []GroupID) []*Group {
	out := make([]*Group, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.groups[id])
	}
	return out
}
