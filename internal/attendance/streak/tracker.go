package streak

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/gymcore/internal/telemetry/metrics"
	"github.com/2beens/gymcore/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=tracker_mocks_test.go -package=streak_test

type counterStore interface {
	Update(ctx context.Context, memberID, gymID int, update func(stored *Counter) (Counter, error)) (Counter, error)
}

type historyLoader interface {
	AttendanceDates(ctx context.Context, memberID, gymID int) ([]time.Time, error)
}

// Tracker maintains the denormalized counters at write time.
// In-order check-ins are applied incrementally. Backfilled check-ins and
// missing or unreadable counters are recomputed from the member's full history.
type Tracker struct {
	engine         *Engine
	store          counterStore
	history        historyLoader
	metricsManager *metrics.Manager
}

func NewTracker(
	engine *Engine,
	store counterStore,
	history historyLoader,
	metricsManager *metrics.Manager,
) *Tracker {
	return &Tracker{
		engine:         engine,
		store:          store,
		history:        history,
		metricsManager: metricsManager,
	}
}

// OnCheckIn updates the stored counter after the check-in on date has been persisted.
func (t *Tracker) OnCheckIn(ctx context.Context, memberID, gymID int, date time.Time) (_ Counter, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "tracker.streak.checkin")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("member.id", memberID),
		attribute.Int("gym.id", gymID),
	)

	recomputed := false
	counter, err := t.store.Update(ctx, memberID, gymID, func(stored *Counter) (Counter, error) {
		// missing, corrupt or out of order state, only the full history is reliable
		if stored == nil || stored.LastDate == nil || stored.IsBackfill(date) {
			recomputed = true
			return t.fromHistory(ctx, memberID, gymID)
		}
		recomputed = false
		return stored.Apply(date), nil
	})
	if err != nil {
		return Counter{}, fmt.Errorf("update counter: %w", err)
	}

	if recomputed {
		log.Debugf("check-in [%s] for member %d, gym %d, counter recomputed", date.Format(time.DateOnly), memberID, gymID)
		span.SetAttributes(attribute.Bool("recomputed", true))
		t.countRecompute()
	}

	return counter, nil
}

// Rebuild recomputes and stores the counter from the attendance log.
func (t *Tracker) Rebuild(ctx context.Context, memberID, gymID int) (_ Counter, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "tracker.streak.rebuild")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	counter, err := t.store.Update(ctx, memberID, gymID, func(*Counter) (Counter, error) {
		return t.fromHistory(ctx, memberID, gymID)
	})
	if err != nil {
		return Counter{}, fmt.Errorf("update counter: %w", err)
	}

	t.countRecompute()

	return counter, nil
}

func (t *Tracker) fromHistory(ctx context.Context, memberID, gymID int) (Counter, error) {
	dates, err := t.history.AttendanceDates(ctx, memberID, gymID)
	if err != nil {
		return Counter{}, fmt.Errorf("load history: %w", err)
	}
	return CounterFromHistory(t.engine, dates), nil
}

func (t *Tracker) countRecompute() {
	if t.metricsManager != nil {
		t.metricsManager.CounterStreakRecomputes.Inc()
	}
}
