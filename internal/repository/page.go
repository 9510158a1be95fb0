package repository

import "gorm.io/gorm"

const DefaultLimit = 100

// Page is skip/limit pagination over the store's natural order
type Page struct {
	Skip  int
	Limit int
}

// NewPage normalises raw query values: negative skip becomes 0, a
// non-positive limit becomes DefaultLimit.
func NewPage(skip, limit int) Page {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return Page{Skip: skip, Limit: limit}
}

func (p Page) apply(db *gorm.DB) *gorm.DB {
	if p.Skip > 0 {
		db = db.Offset(p.Skip)
	}
	if p.Limit > 0 {
		db = db.Limit(p.Limit)
	}
	return db
}
