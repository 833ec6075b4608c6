package feed

import (
	"context"

	"github.com/google/uuid"

	"socialfeed-backend/internal/domains/post"
	"socialfeed-backend/internal/shared/pagination"
)

type Service interface {
	// Get: caller chưa follow ai thì trả về trang rỗng, không phải lỗi
	Get(ctx context.Context, callerID uuid.UUID, p pagination.Params) (*pagination.Page[post.Post], error)
}
