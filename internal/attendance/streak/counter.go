package streak

import "time"

// Counter is the denormalized streak state kept per member and gym,
// updated on every check-in instead of being derived from the full log.
type Counter struct {
	CurrentStreak int        `json:"current_streak"`
	LongestStreak int        `json:"longest_streak"`
	LastDate      *time.Time `json:"last_date,omitempty"`
}

// Apply returns the counter updated with a check-in on date.
// The date must not be earlier than LastDate, see IsBackfill.
func (c Counter) Apply(date time.Time) Counter {
	date = Day(date)

	switch {
	case c.LastDate == nil:
		c.CurrentStreak = 1
	case DaysBetween(*c.LastDate, date) == 0:
		return c
	case DaysBetween(*c.LastDate, date) == 1:
		c.CurrentStreak++
	default:
		c.CurrentStreak = 1
	}

	c.LastDate = &date
	if c.CurrentStreak > c.LongestStreak {
		c.LongestStreak = c.CurrentStreak
	}

	return c
}

// IsBackfill reports whether date lies before the last recorded check-in,
// in which case Apply would produce a wrong counter.
func (c Counter) IsBackfill(date time.Time) bool {
	return c.LastDate != nil && DaysBetween(*c.LastDate, date) < 0
}

// CounterFromHistory rebuilds the counter from the full attendance history.
func CounterFromHistory(engine *Engine, dates []time.Time) Counter {
	days := NormalizeDates(dates)
	if len(days) == 0 {
		return Counter{}
	}

	last := days[len(days)-1]
	// today only matters for the percentage, which a counter does not carry
	res := engine.Compute(days, nil, last)

	return Counter{
		CurrentStreak: res.CurrentStreak,
		LongestStreak: res.LongestStreak,
		LastDate:      &last,
	}
}
