package payload

// 排序顺序常量
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// 分页请求统一接口
type (
	// ListReqQuery 分页请求参数（从 query 中获取），需要其他过滤参数时直接内嵌组合
	ListReqQuery struct {
		Page  int `form:"page"`
		Limit int `form:"limit"`
	}
	// Pagination is attached to every list response.
	Pagination struct {
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Total int64 `json:"total"`
		Pages int   `json:"pages"`
	}
)

// Normalize fills in defaults and clamps the page size.
func (q *ListReqQuery) Normalize() {
	if q.Page < 1 {
		q.Page = defaultPage
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
}

func (q *ListReqQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// NewPagination derives the page count from the total row count.
func NewPagination(q ListReqQuery, total int64) Pagination {
	pages := int(total) / q.Limit
	if int(total)%q.Limit != 0 {
		pages++
	}
	return Pagination{
		Page:  q.Page,
		Limit: q.Limit,
		Total: total,
		Pages: pages,
	}
}
