package account

import (
	"context"

	"github.com/google/uuid"
)

// Repository định nghĩa contract cho data access layer của Account.
// Uniqueness của username do database enforce, không check-then-insert.
type Repository interface {
	// Create insert account mới, set ID và timestamps vào a
	// Returns: ErrUsernameTaken nếu username đã tồn tại
	Create(ctx context.Context, a *Account) error

	// Returns: ErrAccountNotFound nếu không tìm thấy
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// FindByUsername dùng cho token obtain
	FindByUsername(ctx context.Context, username string) (*Account, error)

	// List trả về một trang accounts (created_at ASC) và tổng số
	List(ctx context.Context, limit, offset int) ([]Account, int, error)

	// Update ghi đè profile fields và password hash
	// Returns: ErrAccountNotFound, ErrUsernameTaken
	Update(ctx context.Context, a *Account) error

	// Delete xóa account. Posts và follow edges bị cascade trong cùng statement.
	Delete(ctx context.Context, id uuid.UUID) error
}
