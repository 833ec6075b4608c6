package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"socialfeed-backend/internal/domains/feed"
	"socialfeed-backend/internal/domains/post"
	postRepo "socialfeed-backend/internal/domains/post/repository"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) feed.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) ListForFollower(ctx context.Context, followerID uuid.UUID, limit, offset int) ([]post.Post, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM posts p
		JOIN follows f ON f.followed_id = p.user_id
		WHERE f.follower_id = $1
	`
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, followerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count feed: %w", err)
	}
	if total == 0 {
		return []post.Post{}, 0, nil
	}

	query := `
		SELECT p.id, p.content, p.user_id, p.created_at, p.media
		FROM posts p
		JOIN follows f ON f.followed_id = p.user_id
		WHERE f.follower_id = $1
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, followerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list feed: %w", err)
	}

	posts, err := postRepo.CollectPosts(rows, limit)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}
