package reservation

import (
	"time"

	"meetingroom/internal/domain/room"
	"meetingroom/internal/pkg/apperror"
)

// Availability decides whether slots of a room can be booked given the
// reservations already on it. It is stateless.
type Availability struct{}

func NewAvailability() Availability { return Availability{} }

// SlotStatus is one row of a full-day grid.
type SlotStatus struct {
	Time      string    `json:"time"`
	Start     time.Time `json:"start_time"`
	End       time.Time `json:"end_time"`
	Available bool      `json:"available"`
}

func (Availability) IsSlotAvailable(r *room.Room, slot TimeSlot, existing []*Reservation) bool {
	return check(r, slot, existing) == nil
}

// EnsureSlotAvailable is IsSlotAvailable with the rejection reason.
func (Availability) EnsureSlotAvailable(r *room.Room, slot TimeSlot, existing []*Reservation) error {
	return check(r, slot, existing)
}

func check(r *room.Room, slot TimeSlot, existing []*Reservation) error {
	if !r.IsActive() {
		return ErrRoomInactive
	}

	var closedAt *time.Time
	slot.Each(func(t time.Time) bool {
		if !r.IsAvailableAt(t) {
			closedAt = &t
			return false
		}
		return true
	})
	if closedAt != nil {
		return apperror.Domain("the room is not open at %s", closedAt.Format("15:04"))
	}

	for _, res := range existing {
		if res.Overlaps(slot) {
			return ErrSlotAlreadyBooked
		}
	}
	return nil
}

// AvailableSlots lists the bookable 30-minute slots of the day containing
// date, in chronological order. date's location decides the calendar day.
func (a Availability) AvailableSlots(r *room.Room, date time.Time, existing []*Reservation) []TimeSlot {
	var out []TimeSlot
	daySlots(r, date, func(s TimeSlot) {
		if a.IsSlotAvailable(r, s, existing) {
			out = append(out, s)
		}
	})
	return out
}

// SlotsWithStatus lists every slot of the operating window with a flag.
func (a Availability) SlotsWithStatus(r *room.Room, date time.Time, existing []*Reservation) []SlotStatus {
	var out []SlotStatus
	daySlots(r, date, func(s TimeSlot) {
		out = append(out, SlotStatus{
			Time:      s.start.Format("15:04"),
			Start:     s.start,
			End:       s.end,
			Available: a.IsSlotAvailable(r, s, existing),
		})
	})
	return out
}

func daySlots(r *room.Room, date time.Time, fn func(TimeSlot)) {
	open, closeAt, ok := r.OperatingHours().HoursFor(date.Weekday()).Window(date)
	if !ok {
		return
	}

	// windows are not required to start on the grid
	cur := open.Truncate(SlotDuration)
	if cur.Before(open) {
		cur = cur.Add(SlotDuration)
	}
	for ; !cur.Add(SlotDuration).After(closeAt); cur = cur.Add(SlotDuration) {
		s, err := NewTimeSlot(cur, cur.Add(SlotDuration))
		if err != nil {
			continue
		}
		fn(s)
	}
}
