package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"crosspost/internal/models"
)

type PostRepository interface {
	GetByID(ctx context.Context, id, userID string) (*models.Post, error)
	ListByUserID(ctx context.Context, userID string) ([]*models.Post, error)
	ListDue(ctx context.Context, now, reclaimBefore time.Time) ([]*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Save(ctx context.Context, post *models.Post) error
	Claim(ctx context.Context, id string, now, reclaimBefore time.Time) (bool, error)
	Remove(ctx context.Context, id string) error
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, user_id, caption, media, platforms, status, scheduled_date, claimed_at, error_message, reach, likes, comments, impressions, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	var post models.Post
	err := row.Scan(&post.ID, &post.UserID, &post.Caption, &post.Media, &post.Platforms,
		&post.Status, &post.ScheduledDate, &post.ClaimedAt, &post.ErrorMessage,
		&post.Analytics.Reach, &post.Analytics.Likes, &post.Analytics.Comments,
		&post.Analytics.Impressions, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (id, user_id, caption, media, platforms, status, scheduled_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query, post.ID, post.UserID, post.Caption, post.Media,
		pq.Array(post.Platforms), post.Status, post.ScheduledDate)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id, userID string) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1 AND user_id = $2`
	row := r.db.QueryRowContext(ctx, query, id, userID)

	post, err := scanPost(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return post, nil
}

func (r *postRepository) ListByUserID(ctx context.Context, userID string) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// ListDue returns scheduled posts whose time has arrived and that are not
// claimed, or whose claim is older than reclaimBefore (a crashed claimer).
func (r *postRepository) ListDue(ctx context.Context, now, reclaimBefore time.Time) ([]*models.Post, error) {
	query := `
		SELECT ` + postColumns + ` FROM posts
		WHERE status = $1 AND scheduled_date <= $2
		AND (claimed_at IS NULL OR claimed_at < $3)
		ORDER BY scheduled_date
	`

	rows, err := r.db.QueryContext(ctx, query, models.StatusScheduled, now, reclaimBefore)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// Claim marks a scheduled post as picked up by the scheduler. It reports
// false when another claimer got there first, so a post is never enqueued
// twice by overlapping scans.
func (r *postRepository) Claim(ctx context.Context, id string, now, reclaimBefore time.Time) (bool, error) {
	query := `
		UPDATE posts
		SET claimed_at = $2, updated_at = $2
		WHERE id = $1 AND status = $3
		AND (claimed_at IS NULL OR claimed_at < $4)
	`

	result, err := r.db.ExecContext(ctx, query, id, now, models.StatusScheduled, reclaimBefore)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}

	return affected == 1, nil
}

// Save persists the fields the publish pipeline owns: status, error message
// and analytics. Identity and content are written only at creation.
func (r *postRepository) Save(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET status = $2,
			error_message = $3,
			reach = $4,
			likes = $5,
			comments = $6,
			impressions = $7,
			updated_at = $8
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, post.ID, post.Status, post.ErrorMessage,
		post.Analytics.Reach, post.Analytics.Likes, post.Analytics.Comments,
		post.Analytics.Impressions, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) Remove(ctx context.Context, id string) error {
	query := `DELETE FROM posts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)

	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
