package workouts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=workouts_test

type daysRepo interface {
	GetDay(ctx context.Context, userID string, day time.Time) (*DaySessionRecord, error)
	ListDays(ctx context.Context, params ListDaysParams) ([]DaySessionRecord, error)
	ListDates(ctx context.Context, userID string, from, to time.Time) ([]string, error)
	UpsertDay(ctx context.Context, record DaySessionRecord) error
	UpdateDay(ctx context.Context, userID string, day time.Time, update func(record *DaySessionRecord) error) (*DaySessionRecord, error)
}

type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

type Service struct {
	repo           daysRepo
	metricsManager *metrics.Manager
}

func NewService(repo daysRepo, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		metricsManager: metricsManager,
	}
}

func (s *Service) GetDay(ctx context.Context, userID, date string) (*DaySessionRecord, error) {
	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	return s.repo.GetDay(ctx, userID, day)
}

// ListDays returns the user's records between from and to (both optional, YYYY-MM-DD).
func (s *Service) ListDays(ctx context.Context, userID, from, to string) ([]DaySessionRecord, error) {
	params := ListDaysParams{UserID: userID}
	if from != "" {
		fromDay, err := ParseDate(from)
		if err != nil {
			return nil, err
		}
		params.From = &fromDay
	}
	if to != "" {
		toDay, err := ParseDate(to)
		if err != nil {
			return nil, err
		}
		params.To = &toDay
	}
	return s.repo.ListDays(ctx, params)
}

// CalendarDates returns the dates with sessions in the given month (YYYY-MM).
func (s *Service) CalendarDates(ctx context.Context, userID, month string) ([]string, error) {
	monthStart, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, fmt.Errorf("%w: month %s", ErrInvalidDate, month)
	}
	monthEnd := monthStart.AddDate(0, 1, -1)
	return s.repo.ListDates(ctx, userID, monthStart, monthEnd)
}

// SaveSession validates the session and appends it to the day (index < 0) or
// replaces the session at index.
func (s *Service) SaveSession(ctx context.Context, userID, date string, session WorkoutSession, index int) (_ *DaySessionRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.saveSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("date", date),
		attribute.Int("index", index),
	)

	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	validated, err := ValidateSession(session)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.UpdateDay(ctx, userID, day, func(record *DaySessionRecord) error {
		if index < 0 {
			record.Sessions = append(record.Sessions, validated)
			return nil
		}
		if index >= len(record.Sessions) {
			return fmt.Errorf("%w: index %d", ErrSessionNotFound, index)
		}
		record.Sessions[index] = validated
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterSessionsSaved.Inc()
	}

	return record, nil
}

func (s *Service) DeleteSession(ctx context.Context, userID, date string, index int) (_ *DaySessionRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.deleteSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}

	return s.repo.UpdateDay(ctx, userID, day, func(record *DaySessionRecord) error {
		if index < 0 || index >= len(record.Sessions) {
			return fmt.Errorf("%w: index %d", ErrSessionNotFound, index)
		}
		record.Sessions = append(record.Sessions[:index], record.Sessions[index+1:]...)
		return nil
	})
}

// ImportDays stores raw day documents, e.g. an export from another tracker.
// Documents that can't be normalized, or have no sessions left after that, are skipped.
func (s *Service) ImportDays(ctx context.Context, userID string, rawDays []json.RawMessage) (_ *ImportResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.importDays")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	res := &ImportResult{}
	for _, raw := range rawDays {
		record, ok := NormalizeRecord(userID, raw)
		if !ok || len(record.Sessions) == 0 {
			res.Skipped++
			continue
		}
		if _, err := ParseDate(record.Date); err != nil {
			log.Debugf("import days: skip record with date %q", record.Date)
			res.Skipped++
			continue
		}
		if err := s.repo.UpsertDay(ctx, record); err != nil {
			return nil, fmt.Errorf("upsert day %s: %w", record.Date, err)
		}
		res.Imported++
	}

	span.SetAttributes(
		attribute.Int("imported", res.Imported),
		attribute.Int("skipped", res.Skipped),
	)

	return res, nil
}
