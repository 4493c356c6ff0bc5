package services

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate appends SELECT ... FOR UPDATE to the query. Ticket issuance
// and consumption both rely on this row lock to serialize concurrent writers.
func lockForUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
