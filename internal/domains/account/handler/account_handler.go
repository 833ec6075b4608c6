package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"socialfeed-backend/internal/domains/account"
	"socialfeed-backend/internal/shared/middleware"
	"socialfeed-backend/internal/shared/pagination"
	"socialfeed-backend/internal/shared/response"
	"socialfeed-backend/internal/shared/utils"
)

// AccountHandler xử lý HTTP requests cho account domain
type AccountHandler struct {
	service  account.Service
	pageSize int
}

func NewAccountHandler(service account.Service, pageSize int) *AccountHandler {
	return &AccountHandler{
		service:  service,
		pageSize: pageSize,
	}
}

// Register xử lý POST /auth/register (public)
func (h *AccountHandler) Register(c *gin.Context) {
	var req account.RegisterRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	a, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/accounts/"+a.ID.String())
	response.Success(c, http.StatusCreated, a.ToResponse())
}

// Create xử lý POST /accounts
func (h *AccountHandler) Create(c *gin.Context) {
	var req account.CreateAccountRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	a, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/accounts/"+a.ID.String())
	response.Success(c, http.StatusCreated, a.ToResponse())
}

// List xử lý GET /accounts?page=
func (h *AccountHandler) List(c *gin.Context) {
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

	items := make([]account.AccountResponse, len(pg.Items))
	for i := range pg.Items {
		items[i] = pg.Items[i].ToResponse()
	}
	response.SuccessWithMeta(c, http.StatusOK, items, pg.Meta())
}

// Get xử lý GET /accounts/:id
func (h *AccountHandler) Get(c *gin.Context) {
	id, ok := utils.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	a, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a.ToResponse())
}

// Update xử lý PUT /accounts/:id
func (h *AccountHandler) Update(c *gin.Context) {
	h.update(c, false)
}

// Patch xử lý PATCH /accounts/:id
func (h *AccountHandler) Patch(c *gin.Context) {
	h.update(c, true)
}

func (h *AccountHandler) update(c *gin.Context, partial bool) {
	id, ok := utils.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req account.UpdateAccountRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	a, err := h.service.Update(c.Request.Context(), id, req, partial)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a.ToResponse())
}

// Delete xử lý DELETE /accounts/:id, cascade posts và follows
func (h *AccountHandler) Delete(c *gin.Context) {
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

func (h *AccountHandler) handleError(c *gin.Context, err error) {
	if utils.RespondCommonError(c, err) {
		return
	}

	switch {
	case errors.Is(err, account.ErrUsernameTaken):
		response.FieldError(c, "username", account.MsgUsernameTaken)

	case errors.Is(err, account.ErrAccountNotFound):
		response.NotFound(c, account.MsgAccountNotFound)

	default:
		utils.RespondInternalError(c, err)
	}
}
