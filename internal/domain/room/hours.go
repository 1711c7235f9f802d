package room

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"

	"meetingroom/internal/pkg/apperror"
)

// EndOfDay closes a window at midnight of the following day.
const EndOfDay = "24:00"

var clockPattern = regexp.MustCompile(`^(([01][0-9]|2[0-3]):[0-5][0-9]|24:00)$`)

// DayHours is the open window of one weekday. The zero value is a closed day.
type DayHours struct {
	open  bool
	start string
	end   string
}

func NewDayHours(start, end string) (DayHours, error) {
	if !clockPattern.MatchString(start) || start == EndOfDay {
		return DayHours{}, apperror.Validation("invalid opening time %q, expected HH:MM", start)
	}
	if !clockPattern.MatchString(end) {
		return DayHours{}, apperror.Validation("invalid closing time %q, expected HH:MM", end)
	}
	if start >= end {
		return DayHours{}, apperror.Validation("opening time %s must be before closing time %s", start, end)
	}
	return DayHours{open: true, start: start, end: end}, nil
}

func ClosedDay() DayHours { return DayHours{} }

func AllDay() DayHours { return DayHours{open: true, start: "00:00", end: EndOfDay} }

func (d DayHours) IsOpen() bool  { return d.open }
func (d DayHours) Start() string { return d.start }
func (d DayHours) End() string   { return d.end }

// IsOpenAt compares the local time of day of t against the window, end exclusive.
func (d DayHours) IsOpenAt(t time.Time) bool {
	if !d.open {
		return false
	}
	hm := t.Format("15:04")
	return hm >= d.start && hm < d.end
}

// Window returns the concrete open interval on the calendar day of date,
// in date's location. "24:00" resolves to the next midnight.
func (d DayHours) Window(date time.Time) (time.Time, time.Time, bool) {
	if !d.open {
		return time.Time{}, time.Time{}, false
	}
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return atClock(midnight, d.start), atClock(midnight, d.end), true
}

func atClock(midnight time.Time, hm string) time.Time {
	if hm == EndOfDay {
		return midnight.AddDate(0, 0, 1)
	}
	h, _ := strconv.Atoi(hm[:2])
	m, _ := strconv.Atoi(hm[3:])
	return time.Date(midnight.Year(), midnight.Month(), midnight.Day(), h, m, 0, 0, midnight.Location())
}

func (d DayHours) String() string {
	if !d.open {
		return "closed"
	}
	return d.start + "-" + d.end
}

// OperatingHours maps weekdays to their windows. Missing weekdays are closed.
type OperatingHours struct {
	days map[time.Weekday]DayHours
}

// NewOperatingHours takes weekday indexes 0 (Sunday) through 6 (Saturday).
func NewOperatingHours(week map[int]DayHours) (OperatingHours, error) {
	days := make(map[time.Weekday]DayHours, len(week))
	for wd, h := range week {
		if wd < 0 || wd > 6 {
			return OperatingHours{}, apperror.Validation("invalid weekday %d, expected 0-6", wd)
		}
		days[time.Weekday(wd)] = h
	}
	return OperatingHours{days: days}, nil
}

// WeekdaysOnly opens Monday through Friday with the given window.
func WeekdaysOnly(start, end string) (OperatingHours, error) {
	h, err := NewDayHours(start, end)
	if err != nil {
		return OperatingHours{}, err
	}
	week := map[int]DayHours{}
	for wd := int(time.Monday); wd <= int(time.Friday); wd++ {
		week[wd] = h
	}
	return NewOperatingHours(week)
}

// AllWeek opens every day with the same window.
func AllWeek(start, end string) (OperatingHours, error) {
	h, err := NewDayHours(start, end)
	if err != nil {
		return OperatingHours{}, err
	}
	week := map[int]DayHours{}
	for wd := 0; wd <= 6; wd++ {
		week[wd] = h
	}
	return NewOperatingHours(week)
}

func (o OperatingHours) HoursFor(wd time.Weekday) DayHours {
	return o.days[wd]
}

// IsOpenAt evaluates t in its own location; callers normalise to the
// business time zone first.
func (o OperatingHours) IsOpenAt(t time.Time) bool {
	return o.HoursFor(t.Weekday()).IsOpenAt(t)
}

type dayHoursJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// MarshalJSON writes {"1":{"start":"09:00","end":"18:00"},...}; closed days are null.
func (o OperatingHours) MarshalJSON() ([]byte, error) {
	out := make(map[string]*dayHoursJSON, 7)
	for wd := 0; wd <= 6; wd++ {
		h := o.days[time.Weekday(wd)]
		if !h.open {
			out[strconv.Itoa(wd)] = nil
			continue
		}
		out[strconv.Itoa(wd)] = &dayHoursJSON{Start: h.start, End: h.end}
	}
	return json.Marshal(out)
}

func (o *OperatingHours) UnmarshalJSON(data []byte) error {
	var raw map[string]*dayHoursJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return apperror.Validation("invalid operating hours: %v", err)
	}
	week := make(map[int]DayHours, len(raw))
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		wd, err := strconv.Atoi(k)
		if err != nil {
			return apperror.Validation("invalid weekday key %q", k)
		}
		v := raw[k]
		if v == nil {
			week[wd] = ClosedDay()
			continue
		}
		h, err := NewDayHours(v.Start, v.End)
		if err != nil {
			return err
		}
		week[wd] = h
	}
	parsed, err := NewOperatingHours(week)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

func (o OperatingHours) String() string {
	s := ""
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if s != "" {
			s += ", "
		}
		s += fmt.Sprintf("%s %s", wd.String()[:3], o.days[wd])
	}
	return s
}
