package models

import "database/sql"

// Profile is the row shape of the profiles table.
type Profile struct {
	ProfileID   string         `db:"profile_id"`
	UserID      string         `db:"user_id"`
	Name        string         `db:"name"`
	ProfileType string         `db:"profile_type"`
	PhotoURL    sql.NullString `db:"photo_url"`
	IsActive    bool           `db:"is_active"`
	AuditFields
}
