package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"socialfeed-backend/internal/domains/account"
	"socialfeed-backend/internal/domains/auth"
	"socialfeed-backend/pkg/jwt"
)

type authService struct {
	accounts   account.Repository
	jwtManager *jwt.Manager
}

func NewAuthService(accounts account.Repository, jwtManager *jwt.Manager) auth.Service {
	return &authService{
		accounts:   accounts,
		jwtManager: jwtManager,
	}
}

func (s *authService) Obtain(ctx context.Context, req auth.ObtainRequest) (*auth.TokenPair, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a, err := s.accounts.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	// Account không có password (tạo qua POST /accounts) cũng rơi vào nhánh này
	if !a.CheckPassword(req.Password) {
		log.Info().Str("username", req.Username).Msg("[AUTH] Invalid credentials")
		return nil, auth.ErrInvalidCredentials
	}

	access, err := s.jwtManager.GenerateAccessToken(a.ID.String(), a.Username)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	refresh, err := s.jwtManager.GenerateRefreshToken(a.ID.String())
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &auth.TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *authService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.AccessToken, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	claims, err := s.jwtManager.ValidateRefreshToken(req.Refresh)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}

	// Access token cần username, và account đã bị xóa thì không cấp token mới
	a, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	access, err := s.jwtManager.GenerateAccessToken(a.ID.String(), a.Username)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	return &auth.AccessToken{Access: access}, nil
}
