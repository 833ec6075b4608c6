// Package feed is the read-only timeline of posts from the accounts a caller follows.
package feed

import (
	"context"

	"github.com/google/uuid"

	"socialfeed-backend/internal/domains/post"
)

type Repository interface {
	// ListForFollower trả về posts có owner được followerID follow,
	// sắp xếp timestamp DESC, kèm tổng số để phân trang
	ListForFollower(ctx context.Context, followerID uuid.UUID, limit, offset int) ([]post.Post, int, error)
}
