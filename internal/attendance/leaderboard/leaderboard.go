package leaderboard

import (
	"context"
	"sort"
	"time"

	"github.com/2beens/gymcore/internal/attendance/streak"
	"github.com/2beens/gymcore/internal/telemetry/metrics"
	"github.com/2beens/gymcore/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=leaderboard_mocks_test.go -package=leaderboard_test

type AttendanceLookup interface {
	AttendanceDates(ctx context.Context, memberID, gymID int) ([]time.Time, error)
}

// Member is a single roster entry of a gym.
type Member struct {
	MemberID        int        `json:"member_id"`
	Name            string     `json:"member_name"`
	MembershipStart *time.Time `json:"membership_start,omitempty"`
}

type RankedEntry struct {
	Rank       int    `json:"rank"`
	MemberID   int    `json:"member_id"`
	MemberName string `json:"member_name"`
	streak.Result
}

type Aggregator struct {
	engine         *streak.Engine
	metricsManager *metrics.Manager
}

func NewAggregator(engine *streak.Engine, metricsManager *metrics.Manager) *Aggregator {
	return &Aggregator{
		engine:         engine,
		metricsManager: metricsManager,
	}
}

// Rank computes the streak result of every roster member and orders them by
// attended days, descending. Members with equal attendance keep their roster order.
// A member whose attendance cannot be loaded is ranked with an empty history.
func (a *Aggregator) Rank(
	ctx context.Context,
	gymID int,
	roster []Member,
	lookup AttendanceLookup,
	today time.Time,
) []RankedEntry {
	entries, _ := a.rank(ctx, gymID, roster, lookup, today)
	return entries
}

// rank also reports how many roster members attended on today.
func (a *Aggregator) rank(
	ctx context.Context,
	gymID int,
	roster []Member,
	lookup AttendanceLookup,
	today time.Time,
) ([]RankedEntry, int) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "aggregator.leaderboard.rank")
	defer span.End()
	span.SetAttributes(
		attribute.Int("gym.id", gymID),
		attribute.Int("roster.size", len(roster)),
	)

	todayDay := streak.Day(today)
	attendedToday := 0
	entries := make([]RankedEntry, 0, len(roster))
	for _, member := range roster {
		dates, err := lookup.AttendanceDates(ctx, member.MemberID, gymID)
		if err != nil {
			log.Errorf("leaderboard, gym %d: get attendance for member %d: %s", gymID, member.MemberID, err)
			if a.metricsManager != nil {
				a.metricsManager.CounterLeaderboardMemberError.Inc()
			}
			dates = nil
		}

		for _, d := range dates {
			if streak.Day(d).Equal(todayDay) {
				attendedToday++
				break
			}
		}

		entries = append(entries, RankedEntry{
			MemberID:   member.MemberID,
			MemberName: member.Name,
			Result:     a.engine.Compute(dates, member.MembershipStart, today),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].AttendedDays > entries[j].AttendedDays
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries, attendedToday
}
