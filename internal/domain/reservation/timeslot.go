package reservation

import (
	"encoding/json"
	"time"

	"meetingroom/internal/pkg/apperror"
)

// SlotDuration is the booking grid. Every bookable interval is a whole
// number of slots starting on a slot boundary.
const SlotDuration = 30 * time.Minute

// TimeSlot is a half-open interval [start, end) on the slot grid.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !aligned(start) {
		return TimeSlot{}, apperror.Validation("start time %s is not on a 30-minute boundary", start.Format("15:04:05"))
	}
	if !aligned(end) {
		return TimeSlot{}, apperror.Validation("end time %s is not on a 30-minute boundary", end.Format("15:04:05"))
	}
	if !start.Before(end) {
		return TimeSlot{}, apperror.Validation("start time must be before end time")
	}
	if end.Sub(start)%SlotDuration != 0 {
		return TimeSlot{}, apperror.Validation("duration must be a multiple of 30 minutes")
	}
	return TimeSlot{start: start, end: end}, nil
}

func aligned(t time.Time) bool {
	return (t.Minute() == 0 || t.Minute() == 30) && t.Second() == 0 && t.Nanosecond() == 0
}

func (s TimeSlot) Start() time.Time { return s.start }
func (s TimeSlot) End() time.Time   { return s.end }

func (s TimeSlot) DurationInMinutes() int {
	return int(s.end.Sub(s.start) / time.Minute)
}

func (s TimeSlot) SlotCount() int {
	return int(s.end.Sub(s.start) / SlotDuration)
}

// Overlaps treats touching endpoints as disjoint.
func (s TimeSlot) Overlaps(o TimeSlot) bool {
	return s.start.Before(o.end) && s.end.After(o.start)
}

func (s TimeSlot) Contains(t time.Time) bool {
	return !t.Before(s.start) && t.Before(s.end)
}

func (s TimeSlot) Equal(o TimeSlot) bool {
	return s.start.Equal(o.start) && s.end.Equal(o.end)
}

// Each calls fn with the start of every 30-minute sub-slot, stopping early
// when fn returns false.
func (s TimeSlot) Each(fn func(time.Time) bool) {
	for cur := s.start; cur.Before(s.end); cur = cur.Add(SlotDuration) {
		if !fn(cur) {
			return
		}
	}
}

func (s TimeSlot) String() string {
	return s.start.Format("2006-01-02 15:04") + "-" + s.end.Format("15:04")
}

func (s TimeSlot) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Start time.Time `json:"start_time"`
		End   time.Time `json:"end_time"`
	}{s.start, s.end})
}
