package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"socialfeed-backend/internal/domains/post"
	"socialfeed-backend/internal/infrastructure/events"
	"socialfeed-backend/internal/shared/pagination"
	"socialfeed-backend/internal/shared/permission"
)

type postService struct {
	repo      post.Repository
	publisher events.Publisher
	now       func() time.Time
}

func NewPostService(repo post.Repository, publisher events.Publisher) post.Service {
	return &postService{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

// Create gán owner là caller và timestamp là thời điểm tạo, bỏ qua mọi giá trị client gửi
func (s *postService) Create(ctx context.Context, callerID uuid.UUID, req post.CreatePostRequest) (*post.Post, error) {
	if !permission.IsAuthenticated(callerID) {
		return nil, permission.ErrNotAuthenticated
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := &post.Post{
		Content:   req.Content,
		UserID:    callerID,
		Timestamp: s.now().UTC(),
	}
	if req.Media != nil && *req.Media != "" {
		media := *req.Media
		p.Media = &media
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	events.Emit(ctx, s.publisher, events.New(events.PostCreated, callerID, p.ID, p.ToResponse()))
	return p, nil
}

func (s *postService) Get(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *postService) List(ctx context.Context, p pagination.Params) (*pagination.Page[post.Post], error) {
	items, total, err := s.repo.List(ctx, p.Limit(), p.Offset())
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return pagination.NewPage(items, total, p)
}

// Update: row bị lock trong lúc kiểm tra quyền, nên owner không thể đổi giữa check và write
func (s *postService) Update(ctx context.Context, callerID, id uuid.UUID, req post.UpdatePostRequest, partial bool) (*post.Post, error) {
	req.Normalize()

	method := http.MethodPut
	if partial {
		method = http.MethodPatch
	}

	return s.repo.UpdateLocked(ctx, id, func(p *post.Post) error {
		if err := permission.Check(method, callerID, p.UserID); err != nil {
			return err
		}
		if err := req.Validate(partial); err != nil {
			return err
		}
		req.Apply(p)
		return nil
	})
}

func (s *postService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	return s.repo.DeleteLocked(ctx, id, func(p *post.Post) error {
		return permission.Check(http.MethodDelete, callerID, p.UserID)
	})
}
