package follow

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create insert edge, set ID và CreatedAt vào f.
	// Returns: ErrAlreadyFollowing (unique constraint), ErrTargetNotFound (FK),
	// ErrCannotFollowSelf (check constraint)
	Create(ctx context.Context, f *Follow) error

	// Returns: ErrFollowNotFound
	FindByID(ctx context.Context, id uuid.UUID) (*Follow, error)

	// List sắp xếp theo created_at DESC
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]Follow, int, error)

	// DeletePair xóa đúng edge (followedID, followerID) và trả về edge đã xóa.
	// Returns: ErrRelationshipNotFound, không có side effect nào
	DeletePair(ctx context.Context, followedID, followerID uuid.UUID) (*Follow, error)
}
