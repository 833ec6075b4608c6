package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"socialfeed-backend/internal/domains/post"
	"socialfeed-backend/internal/shared/middleware"
	"socialfeed-backend/internal/shared/pagination"
	"socialfeed-backend/internal/shared/response"
	"socialfeed-backend/internal/shared/utils"
)

type PostHandler struct {
	service  post.Service
	pageSize int
}

func NewPostHandler(service post.Service, pageSize int) *PostHandler {
	return &PostHandler{
		service:  service,
		pageSize: pageSize,
	}
}

// Create xử lý POST /posts. Owner là caller.
func (h *PostHandler) Create(c *gin.Context) {
	var req post.CreatePostRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	p, err := h.service.Create(c.Request.Context(), middleware.GetAccountID(c), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/posts/"+p.ID.String())
	response.Success(c, http.StatusCreated, p.ToResponse())
}

func (h *PostHandler) List(c *gin.Context) {
	p, err := pagination.FromQuery(c, h.pageSize)
	if err != nil {
		h.handleError(c, err)
		return
	}

	pg, err := h.service.List(c.Request.Context(), p)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, post.ToResponses(pg.Items), pg.Meta())
}

func (h *PostHandler) Get(c *gin.Context) {
	id, ok := utils.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p.ToResponse())
}

func (h *PostHandler) Update(c *gin.Context) {
	h.update(c, false)
}

func (h *PostHandler) Patch(c *gin.Context) {
	h.update(c, true)
}

func (h *PostHandler) update(c *gin.Context, partial bool) {
	id, ok := utils.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req post.UpdatePostRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	p, err := h.service.Update(c.Request.Context(), middleware.GetAccountID(c), id, req, partial)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p.ToResponse())
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := utils.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.GetAccountID(c), id); err != nil {
		h.handleError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *PostHandler) handleError(c *gin.Context, err error) {
	if utils.RespondCommonError(c, err) {
		return
	}

	switch {
	case errors.Is(err, post.ErrPostNotFound):
		response.NotFound(c, post.MsgPostNotFound)

	// caller bị xóa giữa lúc xác thực và insert
	case errors.Is(err, post.ErrOwnerNotFound):
		response.Unauthorized(c, middleware.MsgUserNotFound)

	default:
		utils.RespondInternalError(c, err)
	}
}
