package streak

import (
	"time"
)

type State struct {
	Current  int
	Longest  int
	LastDate *time.Time
}

type Update struct {
	State
	// Changed is false when the day was already counted.
	Changed bool
	// Reset is true when a previous streak was broken by this update.
	Reset bool
}

// Apply records a qualifying action on the calendar day "today".
//
//	last == today       -> unchanged
//	last == today - 1   -> current + 1
//	otherwise           -> current = 1
//
// Longest is raised to current after every update.
func Apply(cal *Calendar, s State, today time.Time) Update {
	day := cal.Date(today)
	next := s
	next.LastDate = &day
	reset := false
	if s.LastDate == nil {
		next.Current = 1
	} else {
		switch diff := cal.DaysBetween(*s.LastDate, day); {
		case diff == 0:
			return Update{State: s, Changed: false}
		case diff == 1:
			next.Current = s.Current + 1
		default:
			reset = s.Current > 0
			next.Current = 1
		}
	}
	if next.Current < 1 {
		next.Current = 1
	}
	if next.Longest < next.Current {
		next.Longest = next.Current
	}
	return Update{State: next, Changed: true, Reset: reset}
}

type Status struct {
	Current       int        `json:"current_streak"`
	Longest       int        `json:"longest_streak"`
	LastEntryDate *time.Time `json:"last_entry_date,omitempty"`
	DoneToday     bool       `json:"done_today"`
	AtRisk        bool       `json:"at_risk"`
	Broken        bool       `json:"broken"`
}

// Describe reports how a stored streak looks on "today" without mutating it.
// A streak whose last day is older than yesterday is displayed as 0.
func Describe(cal *Calendar, s State, today time.Time) Status {
	st := Status{Current: s.Current, Longest: s.Longest, LastEntryDate: s.LastDate}
	if s.LastDate == nil {
		st.Current = 0
		return st
	}
	switch diff := cal.DaysBetween(*s.LastDate, today); {
	case diff <= 0:
		st.DoneToday = true
	case diff == 1:
		st.AtRisk = true
	default:
		st.Broken = s.Current > 0
		st.Current = 0
	}
	return st
}
