package streak_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/2beens/gymcore/internal/attendance/streak"
	"github.com/2beens/gymcore/internal/telemetry/metrics"

	"github.com/brianvoe/gofakeit/v6"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCounter_Apply(t *testing.T) {
	var c streak.Counter

	c = c.Apply(monday)
	assert.Equal(t, 1, c.CurrentStreak)
	assert.Equal(t, 1, c.LongestStreak)

	// same day twice is a no-op
	c = c.Apply(monday.Add(4 * time.Hour))
	assert.Equal(t, 1, c.CurrentStreak)

	c = c.Apply(monday.AddDate(0, 0, 1))
	c = c.Apply(monday.AddDate(0, 0, 2))
	assert.Equal(t, 3, c.CurrentStreak)
	assert.Equal(t, 3, c.LongestStreak)

	// gap resets the current streak, longest stays
	c = c.Apply(monday.AddDate(0, 0, 5))
	assert.Equal(t, 1, c.CurrentStreak)
	assert.Equal(t, 3, c.LongestStreak)
	require.NotNil(t, c.LastDate)
	assert.Equal(t, streak.Day(monday.AddDate(0, 0, 5)), *c.LastDate)

	assert.True(t, c.IsBackfill(monday.AddDate(0, 0, 4)))
	assert.False(t, c.IsBackfill(monday.AddDate(0, 0, 5)))
	assert.False(t, streak.Counter{}.IsBackfill(monday))
}

// The incremental counter and the batch engine must agree on every
// in-order history.
func TestCounter_AgreesWithEngine(t *testing.T) {
	engine := streak.NewEngine()
	gofakeit.Seed(7)

	for i := 0; i < 300; i++ {
		var (
			c       streak.Counter
			history []time.Time
			offset  = 0
		)
		for n := gofakeit.Number(1, 40); n > 0; n-- {
			// 0 = same day again, 1 = next day, more = gap
			offset += gofakeit.Number(0, 3)
			date := monday.AddDate(0, 0, offset)
			history = append(history, date)
			c = c.Apply(date)
		}

		res := engine.Compute(history, ptr(monday), monday.AddDate(0, 0, offset))
		require.Equal(t, res.CurrentStreak, c.CurrentStreak, "history: %v", history)
		require.Equal(t, res.LongestStreak, c.LongestStreak, "history: %v", history)
		require.Equal(t, c, streak.CounterFromHistory(engine, history))
	}
}

func TestCounterFromHistory_Empty(t *testing.T) {
	assert.Equal(t, streak.Counter{}, streak.CounterFromHistory(streak.NewEngine(), nil))
}

// storeHolding makes the store mock run the update against stored, as the
// redis store does inside its transaction.
func storeHolding(stored *streak.Counter) func(context.Context, int, int, func(*streak.Counter) (streak.Counter, error)) (streak.Counter, error) {
	return func(_ context.Context, _, _ int, update func(*streak.Counter) (streak.Counter, error)) (streak.Counter, error) {
		return update(stored)
	}
}

func TestTracker_OnCheckIn_InOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	storeMock := NewMockcounterStore(ctrl)
	historyMock := NewMockhistoryLoader(ctrl)
	metricsManager := metrics.NewTestManager()
	tracker := streak.NewTracker(streak.NewEngine(), storeMock, historyMock, metricsManager)

	lastDate := streak.Day(monday.AddDate(0, 0, 1))
	stored := streak.Counter{CurrentStreak: 2, LongestStreak: 4, LastDate: &lastDate}
	checkIn := monday.AddDate(0, 0, 2)
	expectedDate := streak.Day(checkIn)
	expected := streak.Counter{CurrentStreak: 3, LongestStreak: 4, LastDate: &expectedDate}

	storeMock.EXPECT().Update(gomock.Any(), 10, 3, gomock.Any()).DoAndReturn(storeHolding(&stored))

	counter, err := tracker.OnCheckIn(context.Background(), 10, 3, checkIn)
	require.NoError(t, err)
	assert.Equal(t, expected, counter)

	var m dto.Metric
	require.NoError(t, metricsManager.CounterStreakRecomputes.Write(&m))
	assert.Equal(t, 0.0, m.GetCounter().GetValue())
}

func TestTracker_OnCheckIn_FirstCheckIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	storeMock := NewMockcounterStore(ctrl)
	historyMock := NewMockhistoryLoader(ctrl)
	tracker := streak.NewTracker(streak.NewEngine(), storeMock, historyMock, nil)

	expectedDate := streak.Day(monday)
	expected := streak.Counter{CurrentStreak: 1, LongestStreak: 1, LastDate: &expectedDate}

	storeMock.EXPECT().Update(gomock.Any(), 1, 1, gomock.Any()).DoAndReturn(storeHolding(nil))
	historyMock.EXPECT().AttendanceDates(gomock.Any(), 1, 1).Return(days(0), nil)

	counter, err := tracker.OnCheckIn(context.Background(), 1, 1, monday)
	require.NoError(t, err)
	assert.Equal(t, expected, counter)
}

// Counters lost to a redis flush, or never written for members who
// attended before, must come back from the history, not restart at 1.
func TestTracker_OnCheckIn_MissingCounterWithHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	storeMock := NewMockcounterStore(ctrl)
	historyMock := NewMockhistoryLoader(ctrl)
	metricsManager := metrics.NewTestManager()
	engine := streak.NewEngine()
	tracker := streak.NewTracker(engine, storeMock, historyMock, metricsManager)

	history := days(0, 1, 2)
	wednesday := monday.AddDate(0, 0, 2)

	for _, stored := range []*streak.Counter{nil, {}} {
		storeMock.EXPECT().Update(gomock.Any(), 8, 2, gomock.Any()).DoAndReturn(storeHolding(stored))
		historyMock.EXPECT().AttendanceDates(gomock.Any(), 8, 2).Return(history, nil)

		counter, err := tracker.OnCheckIn(context.Background(), 8, 2, wednesday)
		require.NoError(t, err)

		res := engine.Compute(history, nil, wednesday)
		assert.Equal(t, 3, counter.CurrentStreak)
		assert.Equal(t, res.CurrentStreak, counter.CurrentStreak)
		assert.Equal(t, res.LongestStreak, counter.LongestStreak)
		require.NotNil(t, counter.LastDate)
		assert.Equal(t, streak.Day(wednesday), *counter.LastDate)
	}

	var m dto.Metric
	require.NoError(t, metricsManager.CounterStreakRecomputes.Write(&m))
	assert.Equal(t, 2.0, m.GetCounter().GetValue())
}

func TestTracker_OnCheckIn_BackfillRecomputes(t *testing.T) {
	ctrl := gomock.NewController(t)
	storeMock := NewMockcounterStore(ctrl)
	historyMock := NewMockhistoryLoader(ctrl)
	metricsManager := metrics.NewTestManager()
	tracker := streak.NewTracker(streak.NewEngine(), storeMock, historyMock, metricsManager)

	// stored counter saw Mon, Tue, Thu; Wed gets backfilled afterwards
	lastDate := streak.Day(monday.AddDate(0, 0, 3))
	stored := streak.Counter{CurrentStreak: 1, LongestStreak: 2, LastDate: &lastDate}
	history := days(0, 1, 2, 3)
	expected := streak.Counter{CurrentStreak: 4, LongestStreak: 4, LastDate: &lastDate}

	storeMock.EXPECT().Update(gomock.Any(), 5, 2, gomock.Any()).DoAndReturn(storeHolding(&stored))
	historyMock.EXPECT().AttendanceDates(gomock.Any(), 5, 2).Return(history, nil)

	counter, err := tracker.OnCheckIn(context.Background(), 5, 2, monday.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Equal(t, expected, counter)

	var m dto.Metric
	require.NoError(t, metricsManager.CounterStreakRecomputes.Write(&m))
	assert.Equal(t, 1.0, m.GetCounter().GetValue())
}

func TestTracker_OnCheckIn_StoreErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	storeMock := NewMockcounterStore(ctrl)
	historyMock := NewMockhistoryLoader(ctrl)
	tracker := streak.NewTracker(streak.NewEngine(), storeMock, historyMock, nil)

	storeErr := errors.New("redis down")
	storeMock.EXPECT().Update(gomock.Any(), 1, 1, gomock.Any()).Return(streak.Counter{}, storeErr)
	_, err := tracker.OnCheckIn(context.Background(), 1, 1, monday)
	require.ErrorIs(t, err, storeErr)

	storeMock.EXPECT().Update(gomock.Any(), 1, 1, gomock.Any()).DoAndReturn(storeHolding(nil))
	historyMock.EXPECT().AttendanceDates(gomock.Any(), 1, 1).Return(nil, errors.New("db down"))
	_, err = tracker.OnCheckIn(context.Background(), 1, 1, monday)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load history")
}

func TestTracker_Rebuild(t *testing.T) {
	ctrl := gomock.NewController(t)
	storeMock := NewMockcounterStore(ctrl)
	historyMock := NewMockhistoryLoader(ctrl)
	tracker := streak.NewTracker(streak.NewEngine(), storeMock, historyMock, nil)

	// whatever is stored gets replaced
	lastDate := streak.Day(monday.AddDate(0, 0, 9))
	stale := streak.Counter{CurrentStreak: 7, LongestStreak: 7, LastDate: &lastDate}
	storeMock.EXPECT().Update(gomock.Any(), 1, 1, gomock.Any()).DoAndReturn(storeHolding(&stale))
	historyMock.EXPECT().AttendanceDates(gomock.Any(), 1, 1).Return(days(0, 2, 3), nil)

	counter, err := tracker.Rebuild(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, counter.CurrentStreak)
	assert.Equal(t, 2, counter.LongestStreak)
	require.NotNil(t, counter.LastDate)
	assert.Equal(t, streak.Day(monday.AddDate(0, 0, 3)), *counter.LastDate)
}

func TestTracker_Rebuild_HistoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	storeMock := NewMockcounterStore(ctrl)
	historyMock := NewMockhistoryLoader(ctrl)
	tracker := streak.NewTracker(streak.NewEngine(), storeMock, historyMock, nil)

	storeMock.EXPECT().Update(gomock.Any(), 1, 1, gomock.Any()).DoAndReturn(storeHolding(nil))
	historyMock.EXPECT().AttendanceDates(gomock.Any(), 1, 1).Return(nil, errors.New("db down"))
	_, err := tracker.Rebuild(context.Background(), 1, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load history")
}
