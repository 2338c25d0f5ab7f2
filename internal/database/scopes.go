package database

import "gorm.io/gorm"

// Paginate applies skip/limit pagination to a GORM query. Zero values leave
// the query unbounded.
func Paginate(skip, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if skip > 0 {
			db = db.Offset(skip)
		}
		if limit > 0 {
			db = db.Limit(limit)
		}
		return db
	}
}
