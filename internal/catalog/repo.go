package catalog

import (
	"context"
	"fmt"

	"github.com/2beens/liftlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, exercise CustomExercise) (_ *CustomExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO user_exercise (user_id, name, muscles, created_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id, user_id, name, muscles, created_at;`,
		exercise.UserID, exercise.Name, exercise.Muscles, exercise.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert: %w", err)
	}
	defer rows.Close()

	added, err := rows2exercises(rows)
	if err != nil {
		return nil, err
	}
	if len(added) != 1 {
		return nil, fmt.Errorf("unexpected number of inserted rows: %d", len(added))
	}

	return &added[0], nil
}

// List returns the user's custom exercises, oldest first.
func (r *Repo) List(ctx context.Context, userID string) (_ []CustomExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, name, muscles, created_at
			FROM user_exercise
			WHERE user_id = $1
			ORDER BY created_at, id;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	return rows2exercises(rows)
}

func (r *Repo) Delete(ctx context.Context, userID string, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `DELETE FROM user_exercise WHERE id = $1 AND user_id = $2;`, id, userID)
	if err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}

	return nil
}

func rows2exercises(rows pgx.Rows) ([]CustomExercise, error) {
	exercises := make([]CustomExercise, 0)
	for rows.Next() {
		var ex CustomExercise
		if err := rows.Scan(&ex.ID, &ex.UserID, &ex.Name, &ex.Muscles, &ex.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		if ex.Muscles == nil {
			ex.Muscles = []string{}
		}
		exercises = append(exercises, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return exercises, nil
}
