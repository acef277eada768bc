package mysql

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdate appends SELECT ... FOR UPDATE. sqlite (used by the repo tests)
// does not speak FOR UPDATE; its single-writer model makes the clause moot.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
