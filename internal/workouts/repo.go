package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type ListDaysParams struct {
	UserID string
	From   *time.Time
	To     *time.Time
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// GetDay returns the user's record for the given day. A day without sessions is
// returned as an empty record.
func (r *Repo) GetDay(ctx context.Context, userID string, day time.Time) (_ *DaySessionRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.getDay")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("day", day.Format(DateLayout)))

	rows, err := r.db.Query(
		ctx,
		`SELECT user_id, day, sessions, updated_at FROM workout_day WHERE user_id = $1 AND day = $2;`,
		userID, day,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	records, err := rows2records(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &DaySessionRecord{
			UserID:   userID,
			Date:     day.Format(DateLayout),
			Sessions: []WorkoutSession{},
		}, nil
	}

	return &records[0], nil
}

func (r *Repo) ListDays(ctx context.Context, params ListDaysParams) (_ []DaySessionRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listDays")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT user_id, day, sessions, updated_at
			FROM workout_day
			WHERE
				user_id = $1
				AND ($2::date IS NULL OR day >= $2)
				AND ($3::date IS NULL OR day <= $3)
			ORDER BY day;`,
		params.UserID, params.From, params.To,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	records, err := rows2records(rows)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("records", len(records)))

	return records, nil
}

// ListAllSince returns records of all users updated after since (all of them when since is nil).
func (r *Repo) ListAllSince(ctx context.Context, since *time.Time) (_ []DaySessionRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listAllSince")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT user_id, day, sessions, updated_at
			FROM workout_day
			WHERE ($1::timestamptz IS NULL OR updated_at > $1)
			ORDER BY updated_at;`,
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	return rows2records(rows)
}

func (r *Repo) ListDates(ctx context.Context, userID string, from, to time.Time) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listDates")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT day FROM workout_day
			WHERE user_id = $1 AND day >= $2 AND day <= $3 AND jsonb_array_length(sessions) > 0
			ORDER BY day;`,
		userID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	dates := make([]string, 0)
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		dates = append(dates, day.Format(DateLayout))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return dates, nil
}

// UpsertDay stores the record, replacing the sessions of an existing one.
func (r *Repo) UpsertDay(ctx context.Context, record DaySessionRecord) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.upsertDay")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("day", record.Date))

	day, err := ParseDate(record.Date)
	if err != nil {
		return err
	}

	sessionsJson, err := json.Marshal(record.Sessions)
	if err != nil {
		return fmt.Errorf("marshal sessions: %w", err)
	}

	if _, err := r.db.Exec(
		ctx,
		`INSERT INTO workout_day (user_id, day, sessions, updated_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id, day) DO UPDATE SET sessions = EXCLUDED.sessions, updated_at = EXCLUDED.updated_at;`,
		record.UserID, day, sessionsJson, time.Now(),
	); err != nil {
		return fmt.Errorf("exec: %w", err)
	}

	return nil
}

// UpdateDay locks the user's day row, applies update to it and stores the result
// in one transaction. A missing row is created first, a record left without sessions is deleted.
func (r *Repo) UpdateDay(
	ctx context.Context,
	userID string,
	day time.Time,
	update func(record *DaySessionRecord) error,
) (_ *DaySessionRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.updateDay")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("day", day.Format(DateLayout)))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				log.Errorf("update day, rollback: %s", rbErr)
			}
		}
	}()

	// the row must exist for FOR UPDATE to serialize the first saves of a new day
	if _, err := tx.Exec(
		ctx,
		`INSERT INTO workout_day (user_id, day) VALUES ($1, $2) ON CONFLICT (user_id, day) DO NOTHING;`,
		userID, day,
	); err != nil {
		return nil, fmt.Errorf("ensure day row: %w", err)
	}

	rows, err := tx.Query(
		ctx,
		`SELECT user_id, day, sessions, updated_at FROM workout_day WHERE user_id = $1 AND day = $2 FOR UPDATE;`,
		userID, day,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	records, err := rows2records(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	record := DaySessionRecord{
		UserID:   userID,
		Date:     day.Format(DateLayout),
		Sessions: []WorkoutSession{},
	}
	if len(records) > 0 {
		record = records[0]
	}

	if err := update(&record); err != nil {
		return nil, err
	}

	if len(record.Sessions) == 0 {
		if _, err := tx.Exec(ctx, `DELETE FROM workout_day WHERE user_id = $1 AND day = $2;`, userID, day); err != nil {
			return nil, fmt.Errorf("delete empty day: %w", err)
		}
	} else {
		sessionsJson, err := json.Marshal(record.Sessions)
		if err != nil {
			return nil, fmt.Errorf("marshal sessions: %w", err)
		}
		record.UpdatedAt = time.Now()
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO workout_day (user_id, day, sessions, updated_at)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (user_id, day) DO UPDATE SET sessions = EXCLUDED.sessions, updated_at = EXCLUDED.updated_at;`,
			userID, day, sessionsJson, record.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("upsert day: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return &record, nil
}

func (r *Repo) DeleteDay(ctx context.Context, userID string, day time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.deleteDay")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `DELETE FROM workout_day WHERE user_id = $1 AND day = $2;`, userID, day)
	if err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDayNotFound
	}

	return nil
}

// rows2records scans day rows. Rows whose sessions document is unusable are skipped.
func rows2records(rows pgx.Rows) ([]DaySessionRecord, error) {
	records := make([]DaySessionRecord, 0)
	for rows.Next() {
		var (
			userID       string
			day          time.Time
			sessionsJson []byte
			updatedAt    time.Time
		)
		if err := rows.Scan(&userID, &day, &sessionsJson, &updatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}

		sessions, ok := NormalizeSessions(sessionsJson)
		if !ok {
			log.Warnf("workouts repo: skipping day %s of user %s, malformed sessions", day.Format(DateLayout), userID)
			continue
		}

		records = append(records, DaySessionRecord{
			UserID:    userID,
			Date:      day.Format(DateLayout),
			Sessions:  sessions,
			UpdatedAt: updatedAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return records, nil
}
