package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"socialfeed-backend/internal/domains/follow"
	"socialfeed-backend/internal/shared/utils"
	"socialfeed-backend/pkg/database"
)

const followColumns = `id, followed_id, follower_id, created_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) follow.Repository {
	return &postgresRepository{pool: pool}
}

func scanFollow(row pgx.Row) (*follow.Follow, error) {
	var f follow.Follow
	if err := row.Scan(&f.ID, &f.UserID, &f.FollowerID, &f.CreatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *postgresRepository) Create(ctx context.Context, f *follow.Follow) error {
	query := `
		INSERT INTO follows (followed_id, follower_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, f.UserID, f.FollowerID).Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		switch {
		case database.IsUniqueViolation(err):
			return follow.ErrAlreadyFollowing
		case database.IsForeignKeyViolation(err):
			return follow.ErrTargetNotFound
		case database.IsCheckViolation(err):
			return follow.ErrCannotFollowSelf
		}
		return fmt.Errorf("create follow: %w", err)
	}
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*follow.Follow, error) {
	query := `SELECT ` + followColumns + ` FROM follows WHERE id = $1`

	f, err := scanFollow(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, follow.ErrFollowNotFound
		}
		return nil, fmt.Errorf("find follow: %w", err)
	}
	return f, nil
}

// buildWhere tạo WHERE clause từ filter, args đánh số từ $1
func buildWhere(filter follow.ListFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conds = append(conds, fmt.Sprintf("followed_id = $%d", len(args)))
	}
	if filter.FollowerID != nil {
		args = append(args, *filter.FollowerID)
		conds = append(conds, fmt.Sprintf("follower_id = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + utils.JoinWithAnd(conds), args
}

func (r *postgresRepository) List(ctx context.Context, filter follow.ListFilter, limit, offset int) ([]follow.Follow, int, error) {
	where, args := buildWhere(filter)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM follows`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count follows: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM follows%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, followColumns, where, len(args)+1, len(args)+2)

	rows, err := r.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list follows: %w", err)
	}
	defer rows.Close()

	follows := make([]follow.Follow, 0, limit)
	for rows.Next() {
		f, err := scanFollow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan follow: %w", err)
		}
		follows = append(follows, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate follows: %w", err)
	}

	return follows, total, nil
}

func (r *postgresRepository) DeletePair(ctx context.Context, followedID, followerID uuid.UUID) (*follow.Follow, error) {
	query := `
		DELETE FROM follows
		WHERE followed_id = $1 AND follower_id = $2
		RETURNING ` + followColumns

	f, err := scanFollow(r.pool.QueryRow(ctx, query, followedID, followerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, follow.ErrRelationshipNotFound
		}
		return nil, fmt.Errorf("delete follow: %w", err)
	}
	return f, nil
}
