// Package pagination implements fixed-size page-number pagination for list endpoints.
package pagination

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"socialfeed-backend/internal/shared/response"
)

// ErrInvalidPage: page không phải số nguyên dương, hoặc vượt quá trang cuối
var ErrInvalidPage = errors.New("invalid page")

// InvalidPageMessage là message trả về cho client khi gặp ErrInvalidPage
const InvalidPageMessage = "Invalid page."

type Params struct {
	Page     int
	PageSize int
}

// Parse đọc giá trị ?page=. Rỗng nghĩa là trang 1.
func Parse(raw string, pageSize int) (Params, error) {
	p := Params{Page: 1, PageSize: pageSize}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return p, nil
	}

	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return p, ErrInvalidPage
	}
	// Offset() phải không tràn int
	if pageSize > 0 && page > math.MaxInt/pageSize {
		return p, ErrInvalidPage
	}
	p.Page = page
	return p, nil
}

func FromQuery(c *gin.Context, pageSize int) (Params, error) {
	return Parse(c.Query("page"), pageSize)
}

func (p Params) Limit() int {
	return p.PageSize
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Check trả về ErrInvalidPage khi trang không tồn tại.
// Trang 1 luôn hợp lệ, kể cả khi không có item nào.
func (p Params) Check(total int) error {
	if p.Page > 1 && (p.Offset() < 0 || p.Offset() >= total) {
		return ErrInvalidPage
	}
	return nil
}

func (p Params) Meta(total int) *response.Meta {
	m := &response.Meta{
		Count:      total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: 1,
	}
	if total > 0 {
		m.TotalPages = (total + p.PageSize - 1) / p.PageSize
	}
	if p.Page*p.PageSize < total {
		next := p.Page + 1
		m.Next = &next
	}
	if p.Page > 1 {
		prev := p.Page - 1
		m.Previous = &prev
	}
	return m
}

// Page là một trang kết quả đã được kiểm tra phạm vi
type Page[T any] struct {
	Items  []T
	Total  int
	Params Params
}

// NewPage kiểm tra phạm vi trang rồi đóng gói kết quả
func NewPage[T any](items []T, total int, p Params) (*Page[T], error) {
	if err := p.Check(total); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Items: items, Total: total, Params: p}, nil
}

func (pg *Page[T]) Meta() *response.Meta {
	return pg.Params.Meta(pg.Total)
}
