package follow

import (
	"context"

	"github.com/google/uuid"

	"socialfeed-backend/internal/shared/pagination"
)

type Service interface {
	// Follow kiểm tra theo thứ tự: self-follow, rồi uniqueness (do DB enforce), rồi tạo edge
	Follow(ctx context.Context, callerID uuid.UUID, req CreateFollowRequest) (*Follow, error)

	// Unfollow xóa edge followed=targetID, follower=callerID
	Unfollow(ctx context.Context, callerID, targetID uuid.UUID) error

	Get(ctx context.Context, id uuid.UUID) (*Follow, error)
	List(ctx context.Context, filter ListFilter, p pagination.Params) (*pagination.Page[Follow], error)
}
