package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"socialfeed-backend/internal/shared/pagination"
	"socialfeed-backend/internal/shared/permission"
	"socialfeed-backend/internal/shared/response"
)

// RespondCommonError xử lý các lỗi dùng chung cho mọi domain:
// validation (400), page không hợp lệ (404), permission (401/403).
// Trả về false nếu err không thuộc nhóm này.
func RespondCommonError(c *gin.Context, err error) bool {
	var fieldErrs validation.Errors
	switch {
	case errors.As(err, &fieldErrs):
		response.ValidationFailed(c, fieldErrs)
	case errors.Is(err, pagination.ErrInvalidPage):
		response.NotFound(c, pagination.InvalidPageMessage)
	case errors.Is(err, permission.ErrNotAuthenticated):
		response.Unauthorized(c, "Authentication credentials were not provided.")
	case errors.Is(err, permission.ErrForbidden):
		response.Forbidden(c, permission.DeniedMessage)
	default:
		return false
	}
	return true
}

// RespondInternalError log lỗi và trả 500 không kèm chi tiết
func RespondInternalError(c *gin.Context, err error) {
	log.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("Unhandled error")
	response.InternalServerError(c, "Internal server error")
}
