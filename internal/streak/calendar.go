// Package streak implements daily streak accounting on top of an injectable
// calendar, so day rollovers never depend on the server's wall clock zone.
package streak

import (
	"time"
)

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant. Handy in tests and jobs that
// need a pinned "now".
type FixedClock time.Time

func (c FixedClock) Now() time.Time {
	return time.Time(c)
}

type Calendar struct {
	clock Clock
	loc   *time.Location
}

func NewCalendar(clock Clock, loc *time.Location) *Calendar {
	if clock == nil {
		clock = SystemClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{clock: clock, loc: loc}
}

func (c *Calendar) Location() *time.Location {
	return c.loc
}

// In returns a calendar sharing the clock but bound to another zone. Empty
// or unknown zone names keep the current one.
func (c *Calendar) In(timezone string) *Calendar {
	if timezone == "" {
		return c
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return c
	}
	return &Calendar{clock: c.clock, loc: loc}
}

func (c *Calendar) Now() time.Time {
	return c.clock.Now().In(c.loc)
}

// Today is midnight of the current day in the calendar's zone.
func (c *Calendar) Today() time.Time {
	return c.Date(c.clock.Now())
}

// Date truncates t to midnight of its day in the calendar's zone.
func (c *Calendar) Date(t time.Time) time.Time {
	t = t.In(c.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc)
}

// Anchor keeps the year, month and day of t and places them in the
// calendar's zone. Postgres DATE values come back as UTC midnight and must be
// anchored before comparing them with local days.
func (c *Calendar) Anchor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc)
}

// DaysBetween returns the number of calendar days from a to b. DST shifts do
// not affect the result.
func (c *Calendar) DaysBetween(a, b time.Time) int {
	da := c.Date(a)
	db := c.Date(b)
	ua := time.Date(da.Year(), da.Month(), da.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(db.Year(), db.Month(), db.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

func ValidTimezone(timezone string) bool {
	if timezone == "" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
