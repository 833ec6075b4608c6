package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"socialfeed-backend/internal/domains/account"
	"socialfeed-backend/internal/shared/response"
	"socialfeed-backend/pkg/jwt"
)

const (
	accountIDKey = "accountID"
	accountKey   = "account"
)

// Messages trả về khi xác thực thất bại, tất cả đều là 401
const (
	MsgCredentialsNotProvided = "Authentication credentials were not provided."
	MsgMalformedHeader        = "Authorization header must contain two space-delimited values"
	MsgTokenNotValid          = "Given token not valid for any token type"
	MsgUserNotFound           = "User not found"
)

// AccountFinder resolve account từ user_id trong token
type AccountFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error)
}

// AuthMiddleware xác thực bearer access token và load account của caller.
// Token hợp lệ nhưng account đã bị xóa vẫn bị từ chối.
func AuthMiddleware(jwtManager *jwt.Manager, accounts AccountFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Lấy token từ Authorization header
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			abortUnauthorized(c, MsgCredentialsNotProvided)
			return
		}

		// 2. Extract token từ "Bearer <token>"
		parts := strings.Fields(authHeader)
		if parts[0] != "Bearer" {
			abortUnauthorized(c, MsgCredentialsNotProvided)
			return
		}
		if len(parts) != 2 {
			abortUnauthorized(c, MsgMalformedHeader)
			return
		}

		// 3. Verify chữ ký, hạn và type=access
		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			abortUnauthorized(c, MsgTokenNotValid)
			return
		}

		accountID, err := uuid.Parse(claims.UserID)
		if err != nil {
			abortUnauthorized(c, MsgTokenNotValid)
			return
		}

		// 4. Load account, có thể đi qua cache
		a, err := accounts.FindByID(c.Request.Context(), accountID)
		if err != nil {
			if errors.Is(err, account.ErrAccountNotFound) {
				abortUnauthorized(c, MsgUserNotFound)
				return
			}
			log.Error().
				Err(err).
				Str("request_id", GetRequestID(c)).
				Msg("[AUTH] Load account failed")
			response.InternalServerError(c, "Internal server error")
			c.Abort()
			return
		}

		c.Set(accountIDKey, a.ID)
		c.Set(accountKey, a)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", `Bearer realm="api"`)
	response.Unauthorized(c, message)
	c.Abort()
}

// GetAccountID trả về uuid.Nil nếu request chưa qua AuthMiddleware
func GetAccountID(c *gin.Context) uuid.UUID {
	v, ok := c.Get(accountIDKey)
	if !ok {
		return uuid.Nil
	}
	id, _ := v.(uuid.UUID)
	return id
}

func GetAccount(c *gin.Context) *account.Account {
	v, ok := c.Get(accountKey)
	if !ok {
		return nil
	}
	a, _ := v.(*account.Account)
	return a
}
