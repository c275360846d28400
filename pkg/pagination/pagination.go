package pagination

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	MinLimit     = 1

	OrderAsc  = "ASC"
	OrderDesc = "DESC"
)

// Params holds validated pagination parameters.
type Params struct {
	Page    int
	Limit   int
	Offset  int
	Order   string
	OrderBy string
}

// Parse extracts and validates page/limit/order/orderBy from query parameters.
// defaultOrderBy is the column used when the caller does not specify one;
// sortable lists the additional columns the endpoint accepts. The requested
// orderBy is clamped to that closed set, the same way order is clamped to
// ASC/DESC: repositories interpolate both into the ORDER BY clause, so
// anything outside the set falls back to the default instead of reaching SQL.
func Parse(r *http.Request, defaultOrderBy string, sortable ...string) Params {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	if page < 1 {
		page = DefaultPage
	}
	if limit < MinLimit {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	order := strings.ToUpper(q.Get("order"))
	if order != OrderAsc && order != OrderDesc {
		order = OrderDesc
	}

	orderBy := defaultOrderBy
	if requested := q.Get("orderBy"); requested != "" {
		for _, column := range sortable {
			if requested == column {
				orderBy = requested
				break
			}
		}
		if requested == defaultOrderBy {
			orderBy = defaultOrderBy
		}
	}

	return Params{
		Page:    page,
		Limit:   limit,
		Offset:  (page - 1) * limit,
		Order:   order,
		OrderBy: orderBy,
	}
}

// Response is the paginated envelope returned by list endpoints.
type Response[T any] struct {
	Data       []T    `json:"data"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	Order      string `json:"order"`
	OrderBy    string `json:"orderBy"`
	TotalCount int64  `json:"totalCount"`
	TotalPages int64  `json:"totalPages"`
}

// NewResponse builds the envelope from a result page and the total row count.
func NewResponse[T any](data []T, p Params, totalCount int64) Response[T] {
	totalPages := totalCount / int64(p.Limit)
	if totalCount%int64(p.Limit) != 0 {
		totalPages++
	}
	if data == nil {
		data = []T{}
	}
	return Response[T]{
		Data:       data,
		Page:       p.Page,
		Limit:      p.Limit,
		Order:      p.Order,
		OrderBy:    p.OrderBy,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
