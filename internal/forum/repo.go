package forum

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/liftlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) AddThread(ctx context.Context, thread Thread) (_ *Thread, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.forum.addThread")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO forum_thread (forum_id, user_id, display_name, avatar, title, content, content_html, reply_count, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8)
			RETURNING id, forum_id, user_id, display_name, avatar, title, content, content_html, reply_count, created_at;`,
		thread.ForumID, thread.UserID, thread.DisplayName, thread.Avatar,
		thread.Title, thread.Content, thread.ContentHTML, thread.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert: %w", err)
	}
	defer rows.Close()

	threads, err := rows2threads(rows)
	if err != nil {
		return nil, err
	}
	if len(threads) != 1 {
		return nil, fmt.Errorf("unexpected number of inserted threads: %d", len(threads))
	}

	return &threads[0], nil
}

// ListThreads returns the threads of a forum, newest first.
func (r *Repo) ListThreads(ctx context.Context, forumID string) (_ []Thread, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.forum.listThreads")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("forum", forumID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, forum_id, user_id, display_name, avatar, title, content, content_html, reply_count, created_at
			FROM forum_thread
			WHERE forum_id = $1
			ORDER BY created_at DESC, id DESC;`,
		forumID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	return rows2threads(rows)
}

func (r *Repo) GetThread(ctx context.Context, id int) (_ *Thread, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.forum.getThread")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, forum_id, user_id, display_name, avatar, title, content, content_html, reply_count, created_at
			FROM forum_thread
			WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	threads, err := rows2threads(rows)
	if err != nil {
		return nil, err
	}
	if len(threads) == 0 {
		return nil, ErrThreadNotFound
	}

	return &threads[0], nil
}

// ListReplies returns the replies of a thread, oldest first.
func (r *Repo) ListReplies(ctx context.Context, threadID int) (_ []Reply, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.forum.listReplies")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, thread_id, user_id, display_name, avatar, content, content_html, created_at
			FROM forum_reply
			WHERE thread_id = $1
			ORDER BY created_at, id;`,
		threadID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	return rows2replies(rows)
}

// AddReply stores the reply and bumps the thread reply count in the same transaction.
func (r *Repo) AddReply(ctx context.Context, reply Reply) (_ *Reply, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.forum.addReply")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Errorf("forum repo: rollback add reply: %s", rbErr)
		}
	}()

	tag, err := tx.Exec(ctx, `UPDATE forum_thread SET reply_count = reply_count + 1 WHERE id = $1;`, reply.ThreadID)
	if err != nil {
		return nil, fmt.Errorf("increment reply count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrThreadNotFound
	}

	rows, err := tx.Query(
		ctx,
		`INSERT INTO forum_reply (thread_id, user_id, display_name, avatar, content, content_html, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, thread_id, user_id, display_name, avatar, content, content_html, created_at;`,
		reply.ThreadID, reply.UserID, reply.DisplayName, reply.Avatar,
		reply.Content, reply.ContentHTML, reply.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert: %w", err)
	}
	replies, err := rows2replies(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}
	if len(replies) != 1 {
		return nil, fmt.Errorf("unexpected number of inserted replies: %d", len(replies))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return &replies[0], nil
}

func rows2threads(rows pgx.Rows) ([]Thread, error) {
	threads := make([]Thread, 0)
	for rows.Next() {
		var t Thread
		if err := rows.Scan(
			&t.ID, &t.ForumID, &t.UserID, &t.DisplayName, &t.Avatar,
			&t.Title, &t.Content, &t.ContentHTML, &t.ReplyCount, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		threads = append(threads, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return threads, nil
}

func rows2replies(rows pgx.Rows) ([]Reply, error) {
	replies := make([]Reply, 0)
	for rows.Next() {
		var rp Reply
		if err := rows.Scan(
			&rp.ID, &rp.ThreadID, &rp.UserID, &rp.DisplayName, &rp.Avatar,
			&rp.Content, &rp.ContentHTML, &rp.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		replies = append(replies, rp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return replies, nil
}
