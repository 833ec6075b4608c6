package auth

import "context"

type Service interface {
	// Obtain trả về cặp access/refresh cho username + password đúng
	// Returns: ErrInvalidCredentials
	Obtain(ctx context.Context, req ObtainRequest) (*TokenPair, error)

	// Refresh đổi refresh token lấy access token mới
	// Returns: ErrInvalidToken
	Refresh(ctx context.Context, req RefreshRequest) (*AccessToken, error)
}
