package account

import (
	"context"

	"github.com/google/uuid"

	"socialfeed-backend/internal/shared/pagination"
)

// Service định nghĩa business logic cho Account.
// Mọi caller đã xác thực đều được CRUD mọi account, không có kiểm tra ownership.
type Service interface {
	Create(ctx context.Context, req CreateAccountRequest) (*Account, error)
	Register(ctx context.Context, req RegisterRequest) (*Account, error)
	Get(ctx context.Context, id uuid.UUID) (*Account, error)
	List(ctx context.Context, p pagination.Params) (*pagination.Page[Account], error)

	// Update: partial=false là PUT (username bắt buộc), true là PATCH
	Update(ctx context.Context, id uuid.UUID, req UpdateAccountRequest, partial bool) (*Account, error)

	// Delete: actorID là caller, dùng cho activity event
	Delete(ctx context.Context, actorID, id uuid.UUID) error
}
