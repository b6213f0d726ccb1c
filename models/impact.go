package models

import "time"

// ImpactLog records verified volunteer hours for a user. Rows are
// written by the seeder only; the API exposes them read-only as part
// of the user profile.
type ImpactLog struct {
	ID             int       `json:"id" db:"id"`
	UserID         int       `json:"user_id" db:"user_id"`
	VolunteerHours float64   `json:"volunteer_hours" db:"volunteer_hours"`
	Verified       bool      `json:"verified" db:"verified"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
