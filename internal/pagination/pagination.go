package pagination

import (
	"gorm.io/gorm"
)

const (
	// DefaultLimit applies when a caller passes a zero limit.
	DefaultLimit = 20
	// MaxLimit caps any requested limit.
	MaxLimit = 100
)

// LimitRequest bounds a newest-first listing.
type LimitRequest struct {
	Limit int `form:"limit"`
}

// Valid reports whether the request can be served. Only negative limits are
// rejected; zero and oversized limits are normalized by Defaults.
func (r LimitRequest) Valid() bool {
	return r.Limit >= 0
}

// Defaults fills in DefaultLimit for a zero limit and clamps to MaxLimit.
func (r *LimitRequest) Defaults() {
	if r.Limit == 0 {
		r.Limit = DefaultLimit
	}
	if r.Limit > MaxLimit {
		r.Limit = MaxLimit
	}
}

// Limit returns a GORM scope that applies LIMIT for the given request.
func Limit(req LimitRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Limit(req.Limit)
	}
}
