package streak

import (
	"math"
	"sort"
	"time"
)

const day = 24 * time.Hour

// Result is derived from the attendance log on every query, it is never stored.
type Result struct {
	CurrentStreak        int     `json:"current_streak"`
	LongestStreak        int     `json:"longest_streak"`
	AttendancePercentage float64 `json:"attendance_percentage"`
	TotalDays            int     `json:"total_days"`
	AttendedDays         int     `json:"attended_days"`
}

// Engine computes streaks from a member's full attendance history.
// It holds no state, a single instance can be shared between goroutines.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Compute derives the streak result for the given attendance dates.
// Dates do not have to be sorted or unique, only the calendar day (UTC) is used.
// A nil membershipStart means the membership window starts today.
func (e *Engine) Compute(dates []time.Time, membershipStart *time.Time, today time.Time) Result {
	days := NormalizeDates(dates)
	today = Day(today)

	start := today
	if membershipStart != nil {
		start = Day(*membershipStart)
	}

	totalDays := DaysBetween(start, today) + 1
	if totalDays < 1 {
		totalDays = 1
	}

	return Result{
		CurrentStreak:        currentStreak(days),
		LongestStreak:        longestStreak(days),
		AttendancePercentage: percentage(len(days), totalDays),
		TotalDays:            totalDays,
		AttendedDays:         len(days),
	}
}

// currentStreak walks back from the latest attendance day, not from today:
// a member who skipped today keeps the streak they had.
func currentStreak(days []time.Time) int {
	if len(days) == 0 {
		return 0
	}

	present := make(map[time.Time]struct{}, len(days))
	for _, d := range days {
		present[d] = struct{}{}
	}

	streak := 0
	for d := days[len(days)-1]; ; d = d.AddDate(0, 0, -1) {
		if _, ok := present[d]; !ok {
			break
		}
		streak++
	}

	return streak
}

func longestStreak(days []time.Time) int {
	longest, run := 0, 0
	for i, d := range days {
		if i > 0 && DaysBetween(days[i-1], d) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

func percentage(attended, total int) float64 {
	p := math.Round(100*float64(attended)/float64(total)*100) / 100
	// backfilled days before the membership start can push it over
	if p > 100 {
		return 100
	}
	return p
}

// Day truncates t to its calendar day in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)) / day)
}

// NormalizeDates returns the distinct calendar days of dates, sorted ascending.
func NormalizeDates(dates []time.Time) []time.Time {
	if len(dates) == 0 {
		return nil
	}

	days := make([]time.Time, 0, len(dates))
	seen := make(map[time.Time]struct{}, len(dates))
	for _, d := range dates {
		d = Day(d)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})

	return days
}
