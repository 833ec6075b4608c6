package post

import (
	"context"

	"github.com/google/uuid"
)

// MutateFunc chạy trên bản ghi đã bị lock. Trả về error thì không ghi gì cả.
type MutateFunc func(p *Post) error

type Repository interface {
	// Create insert post, set ID vào p. Timestamp do caller gán.
	// Returns: ErrOwnerNotFound nếu UserID không tồn tại
	Create(ctx context.Context, p *Post) error

	// Returns: ErrPostNotFound
	FindByID(ctx context.Context, id uuid.UUID) (*Post, error)

	// List sắp xếp theo timestamp DESC (mới nhất trước)
	List(ctx context.Context, limit, offset int) ([]Post, int, error)

	// UpdateLocked: SELECT ... FOR UPDATE, chạy fn, rồi UPDATE trong cùng transaction
	// Returns: ErrPostNotFound, hoặc error của fn
	UpdateLocked(ctx context.Context, id uuid.UUID, fn MutateFunc) (*Post, error)

	// DeleteLocked: lock row, chạy check, rồi DELETE trong cùng transaction
	DeleteLocked(ctx context.Context, id uuid.UUID, check MutateFunc) error
}
