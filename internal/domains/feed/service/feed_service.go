package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"socialfeed-backend/internal/domains/feed"
	"socialfeed-backend/internal/domains/post"
	"socialfeed-backend/internal/shared/pagination"
	"socialfeed-backend/internal/shared/permission"
)

type feedService struct {
	repo feed.Repository
}

func NewFeedService(repo feed.Repository) feed.Service {
	return &feedService{repo: repo}
}

func (s *feedService) Get(ctx context.Context, callerID uuid.UUID, p pagination.Params) (*pagination.Page[post.Post], error) {
	if !permission.IsAuthenticated(callerID) {
		return nil, permission.ErrNotAuthenticated
	}

	items, total, err := s.repo.ListForFollower(ctx, callerID, p.Limit(), p.Offset())
	if err != nil {
		return nil, fmt.Errorf("list feed: %w", err)
	}
	return pagination.NewPage(items, total, p)
}
