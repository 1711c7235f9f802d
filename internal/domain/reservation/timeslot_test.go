package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetingroom/internal/pkg/apperror"
)

// monday is 2030-01-07, a Monday.
func monday(h, m int) time.Time {
	return time.Date(2030, 1, 7, h, m, 0, 0, time.UTC)
}

func slot(t *testing.T, start, end time.Time) TimeSlot {
	t.Helper()
	s, err := NewTimeSlot(start, end)
	require.NoError(t, err)
	return s
}

func TestNewTimeSlot(t *testing.T) {
	cases := []struct {
		name       string
		start, end time.Time
		ok         bool
	}{
		{"one slot", monday(9, 0), monday(9, 30), true},
		{"two hours", monday(9, 30), monday(11, 30), true},
		{"across midnight", monday(23, 30), monday(24, 0), true},
		{"misaligned start", monday(9, 15), monday(10, 0), false},
		{"misaligned end", monday(9, 0), monday(9, 45), false},
		{"seconds", monday(9, 0).Add(time.Second), monday(10, 0), false},
		{"nanos", monday(9, 0), monday(10, 0).Add(time.Nanosecond), false},
		{"empty", monday(9, 0), monday(9, 0), false},
		{"reversed", monday(10, 0), monday(9, 0), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewTimeSlot(c.start, c.end)
			if c.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, apperror.ErrValidation)
			}
		})
	}
}

func TestTimeSlotDerived(t *testing.T) {
	s := slot(t, monday(10, 0), monday(11, 30))
	assert.Equal(t, 90, s.DurationInMinutes())
	assert.Equal(t, 3, s.SlotCount())

	assert.True(t, s.Contains(monday(10, 0)))
	assert.True(t, s.Contains(monday(11, 29)))
	assert.False(t, s.Contains(monday(11, 30)))
	assert.False(t, s.Contains(monday(9, 59)))

	var starts []string
	s.Each(func(t time.Time) bool {
		starts = append(starts, t.Format("15:04"))
		return true
	})
	assert.Equal(t, []string{"10:00", "10:30", "11:00"}, starts)
}

func TestTimeSlotOverlapIsSymmetric(t *testing.T) {
	var slots []TimeSlot
	for h := 8; h < 12; h++ {
		for _, dur := range []int{30, 60, 90} {
			start := monday(h, 0)
			slots = append(slots, slot(t, start, start.Add(time.Duration(dur)*time.Minute)))
			start = monday(h, 30)
			slots = append(slots, slot(t, start, start.Add(time.Duration(dur)*time.Minute)))
		}
	}
	for _, a := range slots {
		for _, b := range slots {
			assert.Equal(t, a.Overlaps(b), b.Overlaps(a), "%s / %s", a, b)
			if a.End().Equal(b.Start()) {
				assert.False(t, a.Overlaps(b), "adjacent %s / %s", a, b)
			}
		}
		assert.True(t, a.Overlaps(a))
	}
}

func TestTimeSlotEqual(t *testing.T) {
	a := slot(t, monday(9, 0), monday(10, 0))
	b := slot(t, monday(9, 0).In(time.FixedZone("KST", 9*3600)), monday(10, 0))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(slot(t, monday(9, 0), monday(9, 30))))
}
