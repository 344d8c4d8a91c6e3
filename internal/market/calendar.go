// Package market decides whether the NSE derivatives session is open at a
// given instant: weekday, published holiday list and the 09:15-15:30 IST
// trading window.
package market

import (
	"fmt"
	"time"

	"github.com/openquant/nsechain/utils"
)

const (
	// SessionOpen is the first accepted instant of the trading day.
	SessionOpen = 9*time.Hour + 15*time.Minute

	// SessionClose is the last accepted instant of the trading day.
	SessionClose = 15*time.Hour + 30*time.Minute
)

// Calendar answers session-gate questions for a single calendar year.
// It is immutable after construction and safe for concurrent use.
type Calendar struct {
	loc      *time.Location
	holidays map[string]struct{}
}

// Status is a read-only projection of the gate's inputs, used for logging
// and the read API.
type Status struct {
	CurrentTime string `json:"current_time"`
	MarketOpen  string `json:"market_open"`
	MarketClose string `json:"market_close"`
	IsWeekend   bool   `json:"is_weekend"`
	IsHoliday   bool   `json:"is_holiday"`
	IsOpen      bool   `json:"is_open"`
}

// NewCalendar builds a calendar over an explicit holiday list (ISO dates).
// Holiday membership is evaluated against the date in loc.
func NewCalendar(loc *time.Location, holidays []string) *Calendar {
	set := make(map[string]struct{}, len(holidays))
	for _, d := range holidays {
		set[d] = struct{}{}
	}
	return &Calendar{loc: loc, holidays: set}
}

// CalendarForYear builds a calendar from the published NSE holiday table.
// It fails when the year has no configured list rather than treating every
// day as tradable.
func CalendarForYear(year int) (*Calendar, error) {
	holidays, ok := HolidaysForYear(year)
	if !ok {
		return nil, fmt.Errorf("no NSE holiday list configured for year %d", year)
	}
	return NewCalendar(utils.ISTLocation(), holidays), nil
}

// IsSessionOpen reports whether the market accepts trades at the given
// instant. Pure function of its input; now is converted to the calendar's
// timezone before any check.
func (c *Calendar) IsSessionOpen(now time.Time) bool {
	t := now.In(c.loc)

	if isWeekend(t) {
		return false
	}
	if c.isHoliday(t) {
		return false
	}

	tod := timeOfDay(t)
	return tod >= SessionOpen && tod <= SessionClose
}

// Status returns the gate's view of the given instant without side effects.
func (c *Calendar) Status(now time.Time) Status {
	t := now.In(c.loc)
	return Status{
		CurrentTime: t.Format(utils.TimestampLayout),
		MarketOpen:  "09:15",
		MarketClose: "15:30",
		IsWeekend:   isWeekend(t),
		IsHoliday:   c.isHoliday(t),
		IsOpen:      c.IsSessionOpen(now),
	}
}

func (c *Calendar) isHoliday(t time.Time) bool {
	_, ok := c.holidays[t.Format(utils.DateLayout)]
	return ok
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// timeOfDay returns the duration elapsed since local midnight, including
// sub-second precision so 15:30:00.000000001 counts as after close.
func timeOfDay(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}
