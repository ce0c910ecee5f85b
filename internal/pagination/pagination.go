package pagination

import "gorm.io/gorm"

const (
	DefaultLimit = 100
	MaxLimit     = 200
)

// PageRequest holds offset pagination parameters parsed from query strings.
// Limit is a pointer so an explicit limit=0 is rejected instead of being
// mistaken for "not provided".
type PageRequest struct {
	Skip  int  `form:"skip" json:"skip" binding:"min=0"`
	Limit *int `form:"limit" json:"limit" binding:"omitempty,min=1,max=200"`
}

// Size returns the effective page size, clamped to [1, MaxLimit].
func (p PageRequest) Size() int {
	if p.Limit == nil {
		return DefaultLimit
	}
	switch l := *p.Limit; {
	case l < 1:
		return 1
	case l > MaxLimit:
		return MaxLimit
	default:
		return l
	}
}

// Offset returns the SQL OFFSET.
func (p PageRequest) Offset() int {
	if p.Skip < 0 {
		return 0
	}
	return p.Skip
}

// New builds a PageRequest from plain values.
func New(skip, limit int) PageRequest {
	return PageRequest{Skip: skip, Limit: &limit}
}

// PageResponse wraps a page of items with metadata.
type PageResponse[T any] struct {
	Data       []T   `json:"data"`
	Skip       int   `json:"skip"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"total_items"`
}

// NewPageResponse creates a PageResponse from the given data and total count.
func NewPageResponse[T any](data []T, page PageRequest, totalItems int64) PageResponse[T] {
	if data == nil {
		data = []T{}
	}
	return PageResponse[T]{
		Data:       data,
		Skip:       page.Offset(),
		Limit:      page.Size(),
		TotalItems: totalItems,
	}
}

// Paginate returns a GORM scope that applies OFFSET and LIMIT for the given page request.
func Paginate(req PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset()).Limit(req.Size())
	}
}
