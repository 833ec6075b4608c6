package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"socialfeed-backend/internal/domains/account"
	"socialfeed-backend/internal/infrastructure/events"
	"socialfeed-backend/internal/shared/pagination"
)

// accountService implement account.Service interface
type accountService struct {
	repo         account.Repository
	publisher    events.Publisher
	passwordCost int
}

type Option func(*accountService)

// WithPasswordCost đổi bcrypt cost, tests dùng bcrypt.MinCost
func WithPasswordCost(cost int) Option {
	return func(s *accountService) {
		s.passwordCost = cost
	}
}

func NewAccountService(repo account.Repository, publisher events.Publisher, opts ...Option) account.Service {
	s := &accountService{
		repo:         repo,
		publisher:    publisher,
		passwordCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ========================================
// CREATE
// ========================================

func (s *accountService) Create(ctx context.Context, req account.CreateAccountRequest) (*account.Account, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a := &account.Account{
		Username:       req.Username,
		Email:          req.Email,
		Bio:            req.Bio,
		ProfilePicture: nonEmpty(req.ProfilePicture),
	}

	// Không có password thì account không obtain token được
	if req.Password != nil && *req.Password != "" {
		if err := a.SetPassword(*req.Password, s.passwordCost); err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *accountService) Register(ctx context.Context, req account.RegisterRequest) (*account.Account, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.Create(ctx, req.CreateAccountRequest)
}

// ========================================
// READ
// ========================================

func (s *accountService) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *accountService) List(ctx context.Context, p pagination.Params) (*pagination.Page[account.Account], error) {
	items, total, err := s.repo.List(ctx, p.Limit(), p.Offset())
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return pagination.NewPage(items, total, p)
}

// ========================================
// UPDATE / DELETE
// ========================================

func (s *accountService) Update(ctx context.Context, id uuid.UUID, req account.UpdateAccountRequest, partial bool) (*account.Account, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := req.Validate(partial); err != nil {
		return nil, err
	}

	if req.Username != nil {
		a.Username = *req.Username
	}
	if req.Email != nil {
		a.Email = *req.Email
	}
	if req.Bio != nil {
		a.Bio = *req.Bio
	}
	if req.ProfilePicture != nil {
		a.ProfilePicture = nonEmpty(req.ProfilePicture)
	}
	if req.Password != nil && *req.Password != "" {
		if err := a.SetPassword(*req.Password, s.passwordCost); err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete xóa account, posts và follow edges bị cascade ở tầng DB
func (s *accountService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	events.Emit(ctx, s.publisher, events.New(events.AccountDeleted, actorID, id, nil))
	return nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
