package profile

import (
	"context"
	"encoding/json"
	"errors"
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

// GetProfile returns the stored profile, or an empty one if the user never saved it.
func (r *Repo) GetProfile(ctx context.Context, userID string) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	p := &Profile{UserID: userID}
	err = r.db.QueryRow(
		ctx,
		`SELECT display_name, bio, photo_url, photo_key, updated_at FROM user_profile WHERE user_id = $1;`,
		userID,
	).Scan(&p.DisplayName, &p.Bio, &p.PhotoURL, &p.PhotoKey, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &Profile{UserID: userID}, nil
		}
		return nil, fmt.Errorf("query row: %w", err)
	}

	return p, nil
}

func (r *Repo) SaveProfile(ctx context.Context, p Profile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO user_profile (user_id, display_name, bio, photo_url, photo_key, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (user_id) DO UPDATE SET
				display_name = EXCLUDED.display_name,
				bio = EXCLUDED.bio,
				photo_url = EXCLUDED.photo_url,
				photo_key = EXCLUDED.photo_key,
				updated_at = EXCLUDED.updated_at;`,
		p.UserID, p.DisplayName, p.Bio, p.PhotoURL, p.PhotoKey, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	return nil
}

// GetSettings returns the stored settings JSON, nil when there is none.
func (r *Repo) GetSettings(ctx context.Context, userID string) (_ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.getSettings")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var settings []byte
	err = r.db.QueryRow(ctx, `SELECT settings FROM user_settings WHERE user_id = $1;`, userID).Scan(&settings)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query row: %w", err)
	}
	return settings, nil
}

func (r *Repo) SaveSettings(ctx context.Context, userID string, settings Settings) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.saveSettings")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	settingsJson, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO user_settings (user_id, settings) VALUES ($1, $2)
			ON CONFLICT (user_id) DO UPDATE SET settings = EXCLUDED.settings;`,
		userID, settingsJson,
	)
	if err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	return nil
}
