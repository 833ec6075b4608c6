package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"socialfeed-backend/internal/domains/follow"
	"socialfeed-backend/internal/infrastructure/events"
	"socialfeed-backend/internal/shared/pagination"
	"socialfeed-backend/internal/shared/permission"
)

type followService struct {
	repo      follow.Repository
	publisher events.Publisher
}

func NewFollowService(repo follow.Repository, publisher events.Publisher) follow.Service {
	return &followService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *followService) Follow(ctx context.Context, callerID uuid.UUID, req follow.CreateFollowRequest) (*follow.Follow, error) {
	if !permission.IsAuthenticated(callerID) {
		return nil, permission.ErrNotAuthenticated
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	targetID := req.TargetID()
	if targetID == callerID {
		return nil, follow.ErrCannotFollowSelf
	}

	// Duplicate và target không tồn tại do constraint của DB báo về
	f := &follow.Follow{
		UserID:     targetID,
		FollowerID: callerID,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}

	events.Emit(ctx, s.publisher, events.New(events.FollowCreated, callerID, targetID, f.ToResponse()))
	return f, nil
}

func (s *followService) Unfollow(ctx context.Context, callerID, targetID uuid.UUID) error {
	if !permission.IsAuthenticated(callerID) {
		return permission.ErrNotAuthenticated
	}

	f, err := s.repo.DeletePair(ctx, targetID, callerID)
	if err != nil {
		return err
	}

	events.Emit(ctx, s.publisher, events.New(events.FollowDeleted, callerID, targetID, f.ToResponse()))
	return nil
}

func (s *followService) Get(ctx context.Context, id uuid.UUID) (*follow.Follow, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *followService) List(ctx context.Context, filter follow.ListFilter, p pagination.Params) (*pagination.Page[follow.Follow], error) {
	items, total, err := s.repo.List(ctx, filter, p.Limit(), p.Offset())
	if err != nil {
		return nil, fmt.Errorf("list follows: %w", err)
	}
	return pagination.NewPage(items, total, p)
}
