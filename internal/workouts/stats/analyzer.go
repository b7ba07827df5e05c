package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/workouts"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=analyzer_mocks_test.go -package=stats_test

type recordsRepo interface {
	ListDays(ctx context.Context, params workouts.ListDaysParams) ([]workouts.DaySessionRecord, error)
}

type muscleMapProvider interface {
	MuscleMap(ctx context.Context, userID string) (workouts.ExerciseMuscleMap, error)
}

type Analyzer struct {
	repo           recordsRepo
	muscles        muscleMapProvider
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewAnalyzer(repo recordsRepo, muscles muscleMapProvider, metricsManager *metrics.Manager) *Analyzer {
	return &Analyzer{
		repo:           repo,
		muscles:        muscles,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

// WithClock replaces the clock used to evaluate timeframes.
func (a *Analyzer) WithClock(now func() time.Time) *Analyzer {
	a.now = now
	return a
}

// Report loads the user's snapshot and muscle map and aggregates it for the timeframe.
// An exercise that does not exist in the timeframe leaves the selection empty.
func (a *Analyzer) Report(ctx context.Context, userID, timeframe, exercise string) (_ *Report, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "stats.analyzer.report")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tf, err := ParseTimeframe(timeframe)
	if err != nil {
		return nil, err
	}

	records, err := a.repo.ListDays(ctx, workouts.ListDaysParams{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("list workout days: %w", err)
	}

	muscles, err := a.muscles.MuscleMap(ctx, userID)
	if err != nil {
		log.Warnf("stats: failed to get muscle map for user %s, continuing without it: %s", userID, err)
		muscles = workouts.ExerciseMuscleMap{}
		err = nil
	}

	start := time.Now()
	view := NewView(records, muscles, WithClock(a.now))
	view.SetTimeframe(tf)
	if exercise != "" {
		if selErr := view.SelectExercise(exercise); selErr != nil {
			log.Debugf("stats: exercise %q not selectable: %s", exercise, selErr)
		}
	}
	report := view.Report()

	if a.metricsManager != nil {
		a.metricsManager.HistogramStatsDuration.Observe(time.Since(start).Seconds())
	}

	return report, nil
}
