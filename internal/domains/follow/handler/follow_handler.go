package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"socialfeed-backend/internal/domains/follow"
	"socialfeed-backend/internal/shared/middleware"
	"socialfeed-backend/internal/shared/pagination"
	"socialfeed-backend/internal/shared/response"
	"socialfeed-backend/internal/shared/utils"
)

type FollowHandler struct {
	service  follow.Service
	pageSize int
}

func NewFollowHandler(service follow.Service, pageSize int) *FollowHandler {
	return &FollowHandler{
		service:  service,
		pageSize: pageSize,
	}
}

// Create xử lý POST /follows {"user": "<id>"}: caller follow user
func (h *FollowHandler) Create(c *gin.Context) {
	var req follow.CreateFollowRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	f, err := h.service.Follow(c.Request.Context(), middleware.GetAccountID(c), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/follows/"+f.ID.String())
	response.Success(c, http.StatusCreated, f.ToResponse())
}

// Unfollow xử lý DELETE /follows/unfollow/:user_id
func (h *FollowHandler) Unfollow(c *gin.Context) {
	targetID, ok := utils.ParseUUIDParam(c, "user_id")
	if !ok {
		return
	}

	if err := h.service.Unfollow(c.Request.Context(), middleware.GetAccountID(c), targetID); err != nil {
		h.handleError(c, err)
		return
	}
	response.NoContent(c)
}

// List xử lý GET /follows?user=&follower=&page=
func (h *FollowHandler) List(c *gin.Context) {
	p, err := pagination.FromQuery(c, h.pageSize)
	if err != nil {
		h.handleError(c, err)
		return
	}

	var filter follow.ListFilter
	var ok bool
	if filter.UserID, ok = utils.ParseUUIDQuery(c, "user"); !ok {
		return
	}
	if filter.FollowerID, ok = utils.ParseUUIDQuery(c, "follower"); !ok {
		return
	}

	pg, err := h.service.List(c.Request.Context(), filter, p)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, follow.ToResponses(pg.Items), pg.Meta())
}

func (h *FollowHandler) Get(c *gin.Context) {
	id, ok := utils.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	f, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, f.ToResponse())
}

func (h *FollowHandler) handleError(c *gin.Context, err error) {
	if utils.RespondCommonError(c, err) {
		return
	}

	switch {
	case errors.Is(err, follow.ErrCannotFollowSelf):
		response.BadRequest(c, follow.MsgCannotFollowSelf)

	case errors.Is(err, follow.ErrAlreadyFollowing):
		response.FieldError(c, "non_field_errors", follow.MsgAlreadyFollowing)

	case errors.Is(err, follow.ErrTargetNotFound):
		response.FieldError(c, "user", follow.MsgTargetNotFound)

	case errors.Is(err, follow.ErrFollowNotFound):
		response.NotFound(c, follow.MsgFollowNotFound)

	case errors.Is(err, follow.ErrRelationshipNotFound):
		response.NotFound(c, follow.MsgRelationshipNotFound)

	default:
		utils.RespondInternalError(c, err)
	}
}
