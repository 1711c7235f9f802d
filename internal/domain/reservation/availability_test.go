package reservation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetingroom/internal/domain/room"
	"meetingroom/internal/pkg/apperror"
)

func weekdayRoom(t *testing.T) *room.Room {
	t.Helper()
	hours, err := room.WeekdaysOnly("09:00", "18:00")
	require.NoError(t, err)
	r, _, err := room.NewRoom(room.NewRoomParams{
		Name:         "Orion",
		Capacity:     4,
		Hours:        hours,
		PricePerSlot: price(t, 5000),
	}, monday(0, 0))
	require.NoError(t, err)
	return r
}

func TestAvailableSlotsExcludesBooked(t *testing.T) {
	rm := weekdayRoom(t)
	existing := []*Reservation{newConfirmed(t, slot(t, monday(9, 0), monday(10, 0)), monday(0, 0))}
	a := NewAvailability()

	slots := a.AvailableSlots(rm, monday(0, 0), existing)
	require.Len(t, slots, 16)
	assert.Equal(t, monday(10, 0), slots[0].Start())
	assert.Equal(t, monday(17, 30), slots[len(slots)-1].Start())
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].Start().Before(slots[i].Start()))
	}

	assert.False(t, a.IsSlotAvailable(rm, slot(t, monday(8, 30), monday(9, 0)), nil))
	assert.True(t, a.IsSlotAvailable(rm, slot(t, monday(10, 0), monday(10, 30)), existing))
	assert.Empty(t, a.AvailableSlots(rm, monday(0, 0).AddDate(0, 0, 6), nil), "sunday is closed")
}

func TestSlotsWithStatus(t *testing.T) {
	rm := weekdayRoom(t)
	existing := []*Reservation{newConfirmed(t, slot(t, monday(9, 0), monday(10, 0)), monday(0, 0))}

	grid := NewAvailability().SlotsWithStatus(rm, monday(0, 0), existing)
	require.Len(t, grid, 18)
	assert.Equal(t, "09:00", grid[0].Time)
	assert.False(t, grid[0].Available)
	assert.False(t, grid[1].Available)
	assert.True(t, grid[2].Available)
	assert.Equal(t, "17:30", grid[17].Time)
}

func TestAvailableSlotsAllDayRollsToMidnight(t *testing.T) {
	hours, err := room.AllWeek("00:00", room.EndOfDay)
	require.NoError(t, err)
	rm, _, err := room.NewRoom(room.NewRoomParams{Name: "Lounge", Capacity: 10, Hours: hours, PricePerSlot: price(t, 0)}, monday(0, 0))
	require.NoError(t, err)

	slots := NewAvailability().AvailableSlots(rm, monday(15, 0), nil)
	require.Len(t, slots, 48)
	assert.Equal(t, monday(24, 0), slots[47].End())
}

func TestEnsureSlotAvailableReasons(t *testing.T) {
	rm := weekdayRoom(t)
	a := NewAvailability()
	booked := []*Reservation{newConfirmed(t, slot(t, monday(10, 0), monday(11, 0)), monday(0, 0))}

	err := a.EnsureSlotAvailable(rm, slot(t, monday(17, 0), monday(18, 30)), nil)
	require.ErrorIs(t, err, apperror.ErrDomain)
	assert.Contains(t, err.Error(), "18:00")

	err = a.EnsureSlotAvailable(rm, slot(t, monday(10, 30), monday(11, 30)), booked)
	assert.ErrorIs(t, err, ErrSlotAlreadyBooked)

	assert.NoError(t, a.EnsureSlotAvailable(rm, slot(t, monday(11, 0), monday(12, 0)), booked))

	rm.Deactivate(monday(1, 0))
	err = a.EnsureSlotAvailable(rm, slot(t, monday(11, 0), monday(12, 0)), booked)
	assert.ErrorIs(t, err, ErrRoomInactive)
}

func TestRulesOneActivePerUser(t *testing.T) {
	rm := weekdayRoom(t)
	rules := NewRules()
	user := UserID(uuid.New())
	s := slot(t, monday(13, 0), monday(14, 0))

	existing := newConfirmed(t, slot(t, monday(10, 0), monday(11, 0)), monday(0, 0))

	_, _, err := rules.CreateReservation(rm, user, s, []*Reservation{existing}, nil, false, monday(8, 0))
	assert.ErrorIs(t, err, ErrUserHasActiveBooking)

	r, _, err := rules.CreateReservation(rm, user, s, []*Reservation{existing}, nil, true, monday(8, 0))
	require.NoError(t, err)
	assert.Equal(t, user, r.UserID())

	_, err = existing.Cancel(nil, monday(8, 0))
	require.NoError(t, err)
	assert.NoError(t, rules.EnsureUserHasNoActiveReservation([]*Reservation{existing}))
}
