package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"backend/pkg/response"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params holds the validated page/limit pair from a list request.
type Params struct {
	Page  int
	Limit int
}

// Parse reads page and limit query parameters, falling back to defaults
// and clamping limit into [1, MaxLimit].
func Parse(c *gin.Context) Params {
	p := Params{Page: DefaultPage, Limit: DefaultLimit}

	if v, err := strconv.Atoi(c.Query("page")); err == nil && v >= 1 {
		p.Page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v >= 1 {
		p.Limit = v
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset converts the page/limit pair to a row offset.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta builds the response metadata for a list with the given total row count.
func (p Params) Meta(total int64) *response.Meta {
	pages := int(total) / p.Limit
	if int(total)%p.Limit != 0 {
		pages++
	}
	return &response.Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: pages,
	}
}
