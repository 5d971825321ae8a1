package leaderboard

import (
	"context"
	"math"
	"time"
)

type TopAttender struct {
	Rank                 int     `json:"rank"`
	MemberID             int     `json:"member_id"`
	MemberName           string  `json:"member_name"`
	TotalAttendance      int     `json:"total_attendance"`
	AttendancePercentage float64 `json:"attendance_percentage"`
	CurrentStreak        int     `json:"current_streak"`
}

type RecentAttendance struct {
	MemberID   int       `json:"member_id"`
	MemberName string    `json:"member_name"`
	Date       time.Time `json:"date"`
}

type Analytics struct {
	GymID                       int                `json:"gym_id"`
	TotalMembers                int                `json:"total_members"`
	AttendancePercentageToday   float64            `json:"attendance_percentage_today"`
	AverageAttendancePercentage float64            `json:"average_attendance_percentage"`
	TopAttenders                []TopAttender      `json:"top_attenders"`
	RecentAttendance            []RecentAttendance `json:"recent_attendance"`
}

// Analyze builds the gym owner's overview on top of the ranked roster.
func (a *Aggregator) Analyze(
	ctx context.Context,
	gymID int,
	roster []Member,
	lookup AttendanceLookup,
	recent []RecentAttendance,
	today time.Time,
	topN int,
) Analytics {
	analytics := Analytics{
		GymID:            gymID,
		TotalMembers:     len(roster),
		TopAttenders:     []TopAttender{},
		RecentAttendance: recent,
	}
	if analytics.RecentAttendance == nil {
		analytics.RecentAttendance = []RecentAttendance{}
	}
	if len(roster) == 0 {
		return analytics
	}

	ranked, attendedToday := a.rank(ctx, gymID, roster, lookup, today)

	percentageSum := 0.0
	for _, entry := range ranked {
		percentageSum += entry.AttendancePercentage
	}

	analytics.AttendancePercentageToday = round2(100 * float64(attendedToday) / float64(len(roster)))
	analytics.AverageAttendancePercentage = round2(percentageSum / float64(len(ranked)))

	for i, entry := range ranked {
		if i >= topN {
			break
		}
		analytics.TopAttenders = append(analytics.TopAttenders, TopAttender{
			Rank:                 entry.Rank,
			MemberID:             entry.MemberID,
			MemberName:           entry.MemberName,
			TotalAttendance:      entry.AttendedDays,
			AttendancePercentage: entry.AttendancePercentage,
			CurrentStreak:        entry.CurrentStreak,
		})
	}

	return analytics
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
