package catalog

import (
	"context"
	"log"
	"time"

	"meetingroom/internal/domain"
	"meetingroom/internal/domain/event"
	"meetingroom/internal/domain/room"
	"meetingroom/internal/pkg/apperror"
	"meetingroom/internal/pkg/clock"
	"meetingroom/internal/pkg/lock"
	"meetingroom/internal/pkg/optional"
)

// groupsKey serializes hierarchy changes; the cycle check reads the whole tree.
const groupsKey = "room_groups"

type Service struct {
	store     domain.Store
	locker    lock.Locker
	publisher event.Publisher
	clock     clock.Clock
}

func NewService(store domain.Store, locker lock.Locker, publisher event.Publisher, clk clock.Clock) *Service {
	return &Service{store: store, locker: locker, publisher: publisher, clock: clk}
}

func roomKey(id room.ID) string { return "room:" + id.String() }

/* ---------- ROOMS ---------- */

func (s *Service) CreateRoom(ctx context.Context, req CreateRoomRequest) (*room.Room, error) {
	hours, err := defaultHours(req.OperatingHours)
	if err != nil {
		return nil, err
	}
	price, err := room.NewMoney(req.PricePerSlot, currencyOrDefault(req.Currency))
	if err != nil {
		return nil, err
	}
	groupID, err := parseOptionalGroupID(req.GroupID)
	if err != nil {
		return nil, err
	}

	var (
		created *room.Room
		events  []event.Event
	)
	err = s.store.WithinTransaction(ctx, func(tx domain.Repositories) error {
		if groupID != nil {
			if _, err := tx.RoomGroups().FindByID(ctx, *groupID); err != nil {
				return err
			}
		}
		r, ev, err := room.NewRoom(room.NewRoomParams{
			Name:         req.Name,
			Description:  req.Description,
			Capacity:     req.Capacity,
			Hours:        hours,
			PricePerSlot: price,
			GroupID:      groupID,
			Metadata:     req.Metadata,
		}, s.clock.Now())
		if err != nil {
			return err
		}
		if err := tx.Rooms().Save(ctx, r); err != nil {
			return err
		}
		created = r
		events = append(events, ev)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(events)
	return created, nil
}

// UpdateRoom applies a partial update. Price and currency are patched
// independently; a missing one keeps the current value.
func (s *Service) UpdateRoom(ctx context.Context, rawID string, req UpdateRoomRequest) (*room.Room, error) {
	return s.mutateRoom(ctx, rawID, func(tx domain.Repositories, r *room.Room, now time.Time) (event.Event, error) {
		u := room.RoomUpdate{
			Name:        req.Name,
			Description: req.Description,
			Capacity:    req.Capacity,
			Hours:       req.OperatingHours,
			Metadata:    req.Metadata,
		}

		if req.PricePerSlot.IsSet() || req.Currency.IsSet() {
			current := r.PricePerSlot()
			price, err := room.NewMoney(
				req.PricePerSlot.OrElse(current.Amount()),
				currencyOrDefault(req.Currency.OrElse(current.Currency())),
			)
			if err != nil {
				return nil, err
			}
			u.PricePerSlot = optional.Of(price)
		}

		if raw, ok := req.GroupID.Get(); ok {
			groupID, err := parseOptionalGroupID(raw)
			if err != nil {
				return nil, err
			}
			if groupID != nil {
				if _, err := tx.RoomGroups().FindByID(ctx, *groupID); err != nil {
					return nil, err
				}
			}
			u.GroupID = optional.Of(groupID)
		}

		return r.Update(u, now)
	})
}

// ActivateRoom and DeactivateRoom only affect future bookings.
func (s *Service) ActivateRoom(ctx context.Context, rawID string) (*room.Room, error) {
	return s.mutateRoom(ctx, rawID, func(_ domain.Repositories, r *room.Room, now time.Time) (event.Event, error) {
		if r.IsActive() {
			return nil, nil
		}
		r.Activate(now)
		return room.Updated{RoomID: r.ID(), Fields: []string{"is_active"}, At: now}, nil
	})
}

func (s *Service) DeactivateRoom(ctx context.Context, rawID string) (*room.Room, error) {
	return s.mutateRoom(ctx, rawID, func(_ domain.Repositories, r *room.Room, now time.Time) (event.Event, error) {
		if !r.IsActive() {
			return nil, nil
		}
		r.Deactivate(now)
		return room.Updated{RoomID: r.ID(), Fields: []string{"is_active"}, At: now}, nil
	})
}

// mutateRoom holds the same room lock as reservation creation so a room
// cannot change underneath an in-flight booking. A nil event means no-op.
func (s *Service) mutateRoom(
	ctx context.Context,
	rawID string,
	apply func(tx domain.Repositories, r *room.Room, now time.Time) (event.Event, error),
) (*room.Room, error) {
	id, err := room.ParseID(rawID)
	if err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, roomKey(id))
	if err != nil {
		return nil, err
	}
	defer unlock()

	var (
		out    *room.Room
		events []event.Event
	)
	err = s.store.WithinTransaction(ctx, func(tx domain.Repositories) error {
		r, err := tx.Rooms().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		ev, err := apply(tx, r, s.clock.Now())
		if err != nil {
			return err
		}
		out = r
		if ev == nil {
			return nil
		}
		if err := tx.Rooms().Save(ctx, r); err != nil {
			return err
		}
		events = append(events, ev)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(events)
	return out, nil
}

func (s *Service) Room(ctx context.Context, rawID string) (*room.Room, error) {
	id, err := room.ParseID(rawID)
	if err != nil {
		return nil, err
	}
	return s.store.Rooms().FindByID(ctx, id)
}

func (s *Service) Rooms(ctx context.Context) ([]*room.Room, error) {
	return s.store.Rooms().FindAll(ctx)
}

func (s *Service) ActiveRooms(ctx context.Context) ([]*room.Room, error) {
	return s.store.Rooms().FindActive(ctx)
}

/* ---------- GROUPS ---------- */

func (s *Service) CreateRoomGroup(ctx context.Context, req CreateGroupRequest) (*room.Group, error) {
	parentID, err := parseOptionalGroupID(req.ParentID)
	if err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, groupsKey)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var (
		created *room.Group
		events  []event.Event
	)
	err = s.store.WithinTransaction(ctx, func(tx domain.Repositories) error {
		if parentID != nil {
			if _, err := tx.RoomGroups().FindByID(ctx, *parentID); err != nil {
				return err
			}
		}
		g, ev, err := room.NewGroup(room.NewGroupParams{
			Name:        req.Name,
			Description: req.Description,
			ParentID:    parentID,
			SortOrder:   req.SortOrder,
		}, s.clock.Now())
		if err != nil {
			return err
		}
		if err := tx.RoomGroups().Save(ctx, g); err != nil {
			return err
		}
		created = g
		events = append(events, ev)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(events)
	return created, nil
}

// UpdateRoomGroup rejects a new parent that lies inside the group's own subtree.
func (s *Service) UpdateRoomGroup(ctx context.Context, rawID string, req UpdateGroupRequest) (*room.Group, error) {
	id, err := room.ParseGroupID(rawID)
	if err != nil {
		return nil, err
	}

	u := room.GroupUpdate{
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	}
	var parentID *room.GroupID
	if raw, ok := req.ParentID.Get(); ok {
		if parentID, err = parseOptionalGroupID(raw); err != nil {
			return nil, err
		}
		u.ParentID = optional.Of(parentID)
	}

	unlock, err := s.locker.Lock(ctx, groupsKey)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var (
		out    *room.Group
		events []event.Event
	)
	err = s.store.WithinTransaction(ctx, func(tx domain.Repositories) error {
		g, err := tx.RoomGroups().FindByID(ctx, id)
		if err != nil {
			return err
		}

		if parentID != nil && *parentID != id {
			groups, err := tx.RoomGroups().FindAll(ctx)
			if err != nil {
				return err
			}
			tree := room.NewGroupTree(groups, nil)
			if _, ok := tree.Group(*parentID); !ok {
				return apperror.NotFound("room group %s not found", parentID.String())
			}
			if tree.IsDescendant(*parentID, id) {
				return apperror.Domain("a group cannot be moved under its own descendant")
			}
		}

		ev, err := g.Update(u, s.clock.Now())
		if err != nil {
			return err
		}
		if err := tx.RoomGroups().Save(ctx, g); err != nil {
			return err
		}
		out = g
		events = append(events, ev)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(events)
	return out, nil
}

// GroupDetail is a group's subtree together with every room found in it.
type GroupDetail struct {
	Node           room.Node
	AllRooms       []*room.Room
	TotalRoomCount int
}

// GroupRooms expands one group, including inactive members, for administration.
func (s *Service) GroupRooms(ctx context.Context, rawID string) (GroupDetail, error) {
	id, err := room.ParseGroupID(rawID)
	if err != nil {
		return GroupDetail{}, err
	}

	groups, err := s.store.RoomGroups().FindAll(ctx)
	if err != nil {
		return GroupDetail{}, err
	}
	skeleton := room.NewGroupTree(groups, nil)
	if _, ok := skeleton.Group(id); !ok {
		return GroupDetail{}, apperror.NotFound("room group %s not found", id.String())
	}

	var ids []room.GroupID
	collectIDs(mustSubtree(skeleton, id), &ids)
	rooms, err := s.store.Rooms().FindByGroupIDs(ctx, ids)
	if err != nil {
		return GroupDetail{}, err
	}

	tree := room.NewGroupTree(groups, rooms)
	return GroupDetail{
		Node:           mustSubtree(tree, id),
		AllRooms:       tree.AllRooms(id),
		TotalRoomCount: tree.TotalRoomCount(id),
	}, nil
}

// RootGroups is the public browse tree: active roots ordered by sort order
// then name, with inactive groups and rooms pruned below them.
func (s *Service) RootGroups(ctx context.Context) ([]room.Node, error) {
	groups, err := s.store.RoomGroups().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	rooms, err := s.store.Rooms().FindActive(ctx)
	if err != nil {
		return nil, err
	}

	tree := room.NewGroupTree(groups, rooms)
	var out []room.Node
	for _, g := range tree.Roots() {
		if !g.IsActive() {
			continue
		}
		out = append(out, pruneInactive(mustSubtree(tree, g.ID())))
	}
	return out, nil
}

func mustSubtree(t *room.GroupTree, id room.GroupID) room.Node {
	n, _ := t.Subtree(id)
	return n
}

func collectIDs(n room.Node, ids *[]room.GroupID) {
	*ids = append(*ids, n.Group.ID())
	for _, c := range n.Children {
		collectIDs(c, ids)
	}
}

func pruneInactive(n room.Node) room.Node {
	out := room.Node{Group: n.Group, Rooms: n.Rooms}
	for _, c := range n.Children {
		if c.Group.IsActive() {
			out.Children = append(out.Children, pruneInactive(c))
		}
	}
	return out
}

/* ---------- HELPERS ---------- */

func defaultHours(h *room.OperatingHours) (room.OperatingHours, error) {
	if h != nil {
		return *h, nil
	}
	return room.WeekdaysOnly("09:00", "18:00")
}

func currencyOrDefault(c string) string {
	if c == "" {
		return room.DefaultCurrency
	}
	return c
}

func parseOptionalGroupID(raw *string) (*room.GroupID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := room.ParseGroupID(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (s *Service) publish(events []event.Event) {
	for _, ev := range events {
		log.Printf("event=%s aggregate_id=%s occurred_at=%s", ev.Name(), ev.AggregateID(), ev.OccurredAt().Format(time.RFC3339))
	}
	if s.publisher != nil && len(events) > 0 {
		s.publisher.Publish(events...)
	}
}
