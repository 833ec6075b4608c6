package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"socialfeed-backend/internal/domains/post"
	"socialfeed-backend/pkg/database"
)

const postColumns = `id, content, user_id, created_at, media`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) post.Repository {
	return &postgresRepository{pool: pool}
}

// ScanPost đọc một row theo thứ tự postColumns, dùng chung với feed repository
func ScanPost(row pgx.Row) (*post.Post, error) {
	var p post.Post
	if err := row.Scan(&p.ID, &p.Content, &p.UserID, &p.Timestamp, &p.Media); err != nil {
		return nil, err
	}
	return &p, nil
}

// CollectPosts đọc hết rows thành slice, rows luôn được close
func CollectPosts(rows pgx.Rows, capacity int) ([]post.Post, error) {
	defer rows.Close()

	posts := make([]post.Post, 0, capacity)
	for rows.Next() {
		p, err := ScanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

func (r *postgresRepository) Create(ctx context.Context, p *post.Post) error {
	query := `
		INSERT INTO posts (content, user_id, created_at, media)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query, p.Content, p.UserID, p.Timestamp, p.Media).Scan(&p.ID)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return post.ErrOwnerNotFound
		}
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	return findPost(ctx, r.pool, id, false)
}

func findPost(ctx context.Context, q database.Querier, id uuid.UUID, forUpdate bool) (*post.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	p, err := ScanPost(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, post.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) List(ctx context.Context, limit, offset int) ([]post.Post, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	query := `
		SELECT ` + postColumns + `
		FROM posts
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}

	posts, err := CollectPosts(rows, limit)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postgresRepository) UpdateLocked(ctx context.Context, id uuid.UUID, fn post.MutateFunc) (*post.Post, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*post.Post, error) {
		p, err := findPost(ctx, tx, id, true)
		if err != nil {
			return nil, err
		}

		if err := fn(p); err != nil {
			return nil, err
		}

		// Chỉ content và media được phép đổi, user_id và created_at giữ nguyên
		_, err = tx.Exec(ctx, `UPDATE posts SET content = $2, media = $3 WHERE id = $1`, p.ID, p.Content, p.Media)
		if err != nil {
			return nil, fmt.Errorf("update post: %w", err)
		}
		return p, nil
	})
}

func (r *postgresRepository) DeleteLocked(ctx context.Context, id uuid.UUID, check post.MutateFunc) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		p, err := findPost(ctx, tx, id, true)
		if err != nil {
			return err
		}

		if err := check(p); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete post: %w", err)
		}
		return nil
	})
}
