package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"socialfeed-backend/internal/domains/auth"
	"socialfeed-backend/internal/shared/response"
	"socialfeed-backend/internal/shared/utils"
)

type AuthHandler struct {
	service auth.Service
}

func NewAuthHandler(service auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// Obtain xử lý POST /token {"username", "password"} → {"access", "refresh"}
func (h *AuthHandler) Obtain(c *gin.Context) {
	var req auth.ObtainRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	pair, err := h.service.Obtain(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, pair)
}

// Refresh xử lý POST /token/refresh {"refresh"} → {"access"}
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req auth.RefreshRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	out, err := h.service.Refresh(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *AuthHandler) handleError(c *gin.Context, err error) {
	if utils.RespondCommonError(c, err) {
		return
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		response.Unauthorized(c, auth.MsgInvalidCredentials)

	case errors.Is(err, auth.ErrInvalidToken):
		response.Unauthorized(c, auth.MsgInvalidToken)

	default:
		utils.RespondInternalError(c, err)
	}
}
