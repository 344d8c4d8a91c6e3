package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openquant/nsechain/utils"
)

func testCalendar(t *testing.T) *Calendar {
	t.Helper()
	cal, err := CalendarForYear(2024)
	require.NoError(t, err)
	return cal
}

func ist(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02 15:04:05", value, utils.ISTLocation())
	require.NoError(t, err)
	return parsed
}

func TestWeekendsAlwaysClosed(t *testing.T) {
	cal := testCalendar(t)

	// 2024-06-01 is a Saturday, 2024-06-02 a Sunday.
	for _, day := range []string{"2024-06-01", "2024-06-02"} {
		for _, clock := range []string{"00:00:00", "09:15:00", "12:00:00", "15:30:00", "23:59:59"} {
			assert.False(t, cal.IsSessionOpen(ist(t, day+" "+clock)), "%s %s", day, clock)
		}
	}
}

func TestHolidaysAlwaysClosed(t *testing.T) {
	cal := testCalendar(t)

	// Republic Day 2024 fell on a Friday.
	for _, clock := range []string{"09:15:00", "11:00:00", "15:30:00"} {
		assert.False(t, cal.IsSessionOpen(ist(t, "2024-01-26 "+clock)), clock)
	}
}

func TestSessionWindowBoundaries(t *testing.T) {
	cal := testCalendar(t)

	// 2024-06-03 is a regular Monday.
	cases := []struct {
		clock string
		open  bool
	}{
		{"09:14:59", false},
		{"09:15:00", true},
		{"12:30:00", true},
		{"15:30:00", true},
		{"15:30:01", false},
		{"08:00:00", false},
		{"18:00:00", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.open, cal.IsSessionOpen(ist(t, "2024-06-03 "+tc.clock)), tc.clock)
	}
}

func TestSessionOpenConvertsTimezone(t *testing.T) {
	cal := testCalendar(t)

	// 06:00 UTC on a Monday is 11:30 IST, inside the session.
	utc := time.Date(2024, 6, 3, 6, 0, 0, 0, time.UTC)
	assert.True(t, cal.IsSessionOpen(utc))

	// 11:00 UTC is 16:30 IST, after close.
	assert.False(t, cal.IsSessionOpen(time.Date(2024, 6, 3, 11, 0, 0, 0, time.UTC)))
}

func TestStatusProjection(t *testing.T) {
	cal := testCalendar(t)

	st := cal.Status(ist(t, "2024-01-26 11:00:00"))
	assert.True(t, st.IsHoliday)
	assert.False(t, st.IsWeekend)
	assert.False(t, st.IsOpen)
	assert.Equal(t, "09:15", st.MarketOpen)
	assert.Equal(t, "15:30", st.MarketClose)
	assert.Equal(t, "2024-01-26 11:00:00", st.CurrentTime)

	st = cal.Status(ist(t, "2024-06-01 11:00:00"))
	assert.True(t, st.IsWeekend)
	assert.False(t, st.IsHoliday)
}

func TestCalendarForUnconfiguredYear(t *testing.T) {
	_, err := CalendarForYear(1999)
	require.Error(t, err)
}
