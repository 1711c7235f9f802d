package room

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetingroom/internal/pkg/apperror"
)

func at(hm string) time.Time {
	t, _ := time.Parse("2006-01-02 15:04", "2030-01-07 "+hm) // a Monday
	return t
}

func TestNewDayHoursValidation(t *testing.T) {
	cases := []struct {
		start, end string
		ok         bool
	}{
		{"09:00", "18:00", true},
		{"00:00", "24:00", true},
		{"9:00", "18:00", false},
		{"09:00", "25:00", false},
		{"24:00", "24:00", false},
		{"18:00", "09:00", false},
		{"09:00", "09:00", false},
		{"09:60", "10:00", false},
	}
	for _, c := range cases {
		_, err := NewDayHours(c.start, c.end)
		if c.ok {
			assert.NoError(t, err, "%s-%s", c.start, c.end)
		} else {
			assert.ErrorIs(t, err, apperror.ErrValidation, "%s-%s", c.start, c.end)
		}
	}
}

func TestDayHoursIsOpenAt(t *testing.T) {
	h, err := NewDayHours("09:00", "18:00")
	require.NoError(t, err)

	assert.False(t, h.IsOpenAt(at("08:59")))
	assert.True(t, h.IsOpenAt(at("09:00")))
	assert.True(t, h.IsOpenAt(at("17:59")))
	assert.False(t, h.IsOpenAt(at("18:00")))

	assert.False(t, ClosedDay().IsOpenAt(at("12:00")))
	assert.True(t, AllDay().IsOpenAt(at("23:59")))
	assert.True(t, AllDay().IsOpenAt(at("00:00")))
}

func TestDayHoursWindowRollsEndOfDay(t *testing.T) {
	start, end, ok := AllDay().Window(at("13:00"))
	require.True(t, ok)
	assert.Equal(t, at("00:00"), start)
	assert.Equal(t, at("00:00").AddDate(0, 0, 1), end)

	_, _, ok = ClosedDay().Window(at("13:00"))
	assert.False(t, ok)
}

func TestOperatingHours(t *testing.T) {
	_, err := NewOperatingHours(map[int]DayHours{7: AllDay()})
	assert.ErrorIs(t, err, apperror.ErrValidation)
	_, err = NewOperatingHours(map[int]DayHours{-1: AllDay()})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	weekdays, err := WeekdaysOnly("09:00", "18:00")
	require.NoError(t, err)
	monday := at("10:00")
	assert.True(t, weekdays.IsOpenAt(monday))
	assert.False(t, weekdays.IsOpenAt(monday.AddDate(0, 0, 5)), "saturday")
	assert.False(t, weekdays.IsOpenAt(monday.AddDate(0, 0, 6)), "sunday")
	assert.False(t, weekdays.HoursFor(time.Sunday).IsOpen())
}

func TestOperatingHoursJSON(t *testing.T) {
	weekdays, err := WeekdaysOnly("09:00", "18:00")
	require.NoError(t, err)

	raw, err := json.Marshal(weekdays)
	require.NoError(t, err)

	var back OperatingHours
	require.NoError(t, json.Unmarshal(raw, &back))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		assert.Equal(t, weekdays.HoursFor(wd), back.HoursFor(wd), wd.String())
	}

	err = json.Unmarshal([]byte(`{"8":{"start":"09:00","end":"10:00"}}`), &back)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}
