package utils

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"socialfeed-backend/internal/shared/response"
)

const MsgInvalidUUID = "Invalid UUID format"

// BindJSON đọc body vào req. Body rỗng được coi là {} để validation báo field thiếu.
// Trả về false nếu đã ghi response lỗi.
func BindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}

// ParseUUIDParam parse path param, trả 400 nếu không phải UUID
func ParseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, MsgInvalidUUID)
		return uuid.Nil, false
	}
	return id, true
}

// ParseUUIDQuery parse query param optional. Rỗng trả về nil.
func ParseUUIDQuery(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.FieldError(c, name, "Must be a valid UUID.")
		return nil, false
	}
	return &id, true
}
