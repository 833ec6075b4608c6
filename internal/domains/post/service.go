package post

import (
	"context"

	"github.com/google/uuid"

	"socialfeed-backend/internal/shared/pagination"
)

// Service: đọc mở cho mọi caller đã xác thực, ghi chỉ cho owner.
// Update và Delete kiểm tra theo thứ tự: tồn tại (404), quyền (403), rồi input (400).
type Service interface {
	Create(ctx context.Context, callerID uuid.UUID, req CreatePostRequest) (*Post, error)
	Get(ctx context.Context, id uuid.UUID) (*Post, error)
	List(ctx context.Context, p pagination.Params) (*pagination.Page[Post], error)
	Update(ctx context.Context, callerID, id uuid.UUID, req UpdatePostRequest, partial bool) (*Post, error)
	Delete(ctx context.Context, callerID, id uuid.UUID) error
}
