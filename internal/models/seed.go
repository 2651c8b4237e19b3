package models

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultRoles is the fixed role set created on a new database.
var DefaultRoles = []Role{
	{Name: RoleAdmin, Description: "Site administrator"},
	{Name: RoleAPIAdmin, Description: "Full control over API integrations"},
	{Name: RoleDeveloper, Description: "CRUD on own integrations"},
	{Name: RoleOperator, Description: "Read-only operator dashboard"},
}

// SeedRoles inserts any missing default roles. Existing rows are left as is.
func SeedRoles(db *gorm.DB) error {
	roles := make([]Role, len(DefaultRoles))
	copy(roles, DefaultRoles)
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&roles).Error
}
