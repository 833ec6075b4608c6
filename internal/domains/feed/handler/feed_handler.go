package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"socialfeed-backend/internal/domains/feed"
	"socialfeed-backend/internal/domains/post"
	"socialfeed-backend/internal/shared/middleware"
	"socialfeed-backend/internal/shared/pagination"
	"socialfeed-backend/internal/shared/response"
	"socialfeed-backend/internal/shared/utils"
)

type FeedHandler struct {
	service  feed.Service
	pageSize int
}

func NewFeedHandler(service feed.Service, pageSize int) *FeedHandler {
	return &FeedHandler{
		service:  service,
		pageSize: pageSize,
	}
}

// Get xử lý GET /feed: posts của những account caller đang follow, mới nhất trước
func (h *FeedHandler) Get(c *gin.Context) {
	p, err := pagination.FromQuery(c, h.pageSize)
	if err != nil {
		h.handleError(c, err)
		return
	}

	pg, err := h.service.Get(c.Request.Context(), middleware.GetAccountID(c), p)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, post.ToResponses(pg.Items), pg.Meta())
}

func (h *FeedHandler) handleError(c *gin.Context, err error) {
	if utils.RespondCommonError(c, err) {
		return
	}
	utils.RespondInternalError(c, err)
}
