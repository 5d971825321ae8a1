package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/gymcore/internal/attendance/leaderboard"
	"github.com/2beens/gymcore/internal/attendance/streak"
	"github.com/2beens/gymcore/internal/telemetry/metrics"
	"github.com/2beens/gymcore/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=attendance_test

const (
	DefaultLeaderboardSize = 10
	analyticsTopAttenders  = 5
	analyticsRecentLimit   = 10
)

type attendanceRepo interface {
	Add(ctx context.Context, record Record) (*Record, error)
	AttendanceDates(ctx context.Context, memberID, gymID int) ([]time.Time, error)
	Roster(ctx context.Context, gymID int) ([]leaderboard.Member, error)
	Member(ctx context.Context, gymID, memberID int) (*leaderboard.Member, error)
	RecentAttendance(ctx context.Context, gymID, limit int) ([]leaderboard.RecentAttendance, error)
}

type streakTracker interface {
	OnCheckIn(ctx context.Context, memberID, gymID int, date time.Time) (streak.Counter, error)
	Rebuild(ctx context.Context, memberID, gymID int) (streak.Counter, error)
}

type CheckInResult struct {
	Record  Record         `json:"record"`
	Counter streak.Counter `json:"streak"`
}

type MemberStreak struct {
	MemberID   int    `json:"member_id"`
	MemberName string `json:"member_name"`
	streak.Result
}

// Service reads the wall clock once per call and hands "today" to the engines.
type Service struct {
	repo           attendanceRepo
	engine         *streak.Engine
	tracker        streakTracker
	aggregator     *leaderboard.Aggregator
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(
	repo attendanceRepo,
	engine *streak.Engine,
	tracker streakTracker,
	aggregator *leaderboard.Aggregator,
	metricsManager *metrics.Manager,
	now func() time.Time,
) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:           repo,
		engine:         engine,
		tracker:        tracker,
		aggregator:     aggregator,
		metricsManager: metricsManager,
		now:            now,
	}
}

// CheckIn records attendance of a member for the given day, today if date is nil.
// The stored streak counter is updated afterwards; a failure there is logged
// and does not undo the check-in.
func (s *Service) CheckIn(ctx context.Context, gymID, memberID int, date *time.Time) (_ *CheckInResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.attendance.checkin")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := s.repo.Member(ctx, gymID, memberID); err != nil {
		return nil, err
	}

	now := s.now()
	day := streak.Day(now)
	if date != nil {
		day = streak.Day(*date)
	}
	if day.After(streak.Day(now)) {
		return nil, fmt.Errorf("%w: %s", ErrFutureCheckIn, day.Format(time.DateOnly))
	}

	record, err := s.repo.Add(ctx, Record{
		MemberID:  memberID,
		GymID:     gymID,
		Date:      day,
		CreatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterCheckIns.Inc()
	}

	counter, err := s.tracker.OnCheckIn(ctx, memberID, gymID, day)
	if err != nil {
		log.Errorf("check-in [gym %d, member %d]: update streak counter: %s", gymID, memberID, err)
	}

	return &CheckInResult{
		Record:  *record,
		Counter: counter,
	}, nil
}

func (s *Service) MemberStreak(ctx context.Context, gymID, memberID int) (_ *MemberStreak, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.attendance.member_streak")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	member, err := s.repo.Member(ctx, gymID, memberID)
	if err != nil {
		return nil, err
	}

	dates, err := s.repo.AttendanceDates(ctx, memberID, gymID)
	if err != nil {
		return nil, fmt.Errorf("get attendance dates: %w", err)
	}

	return &MemberStreak{
		MemberID:   member.MemberID,
		MemberName: member.Name,
		Result:     s.engine.Compute(dates, member.MembershipStart, s.now()),
	}, nil
}

func (s *Service) Leaderboard(ctx context.Context, gymID, size int) (_ []leaderboard.RankedEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.attendance.leaderboard")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	roster, err := s.repo.Roster(ctx, gymID)
	if err != nil {
		return nil, fmt.Errorf("get roster: %w", err)
	}

	entries := s.aggregator.Rank(ctx, gymID, roster, s.repo, s.now())
	if size > 0 && len(entries) > size {
		entries = entries[:size]
	}

	return entries, nil
}

func (s *Service) Analytics(ctx context.Context, gymID int) (_ *leaderboard.Analytics, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.attendance.analytics")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	roster, err := s.repo.Roster(ctx, gymID)
	if err != nil {
		return nil, fmt.Errorf("get roster: %w", err)
	}

	recent, err := s.repo.RecentAttendance(ctx, gymID, analyticsRecentLimit)
	if err != nil {
		// analytics are still useful without the recent check-ins
		log.Errorf("analytics [gym %d]: get recent attendance: %s", gymID, err)
		recent = nil
	}

	analytics := s.aggregator.Analyze(ctx, gymID, roster, s.repo, recent, s.now(), analyticsTopAttenders)
	return &analytics, nil
}

// RebuildCounters recomputes the stored streak counters of every member of a gym.
// It keeps going on per-member failures and returns them combined.
func (s *Service) RebuildCounters(ctx context.Context, gymID int) (rebuilt int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.attendance.rebuild_counters")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	roster, err := s.repo.Roster(ctx, gymID)
	if err != nil {
		return 0, fmt.Errorf("get roster: %w", err)
	}

	var errs error
	for _, member := range roster {
		if ctx.Err() != nil {
			return rebuilt, multierr.Append(errs, ctx.Err())
		}
		if _, err := s.tracker.Rebuild(ctx, member.MemberID, gymID); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("member %d: %w", member.MemberID, err))
			continue
		}
		rebuilt++
	}

	return rebuilt, errs
}
