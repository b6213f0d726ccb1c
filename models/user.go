package models

import "time"

type User struct {
	ID           int       `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	Skills       string    `json:"skills,omitempty" db:"skills"`
	Causes       string    `json:"causes,omitempty" db:"causes"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	CreatedEvents  []VolunteerEvent `json:"created_events,omitempty" db:"-"`
	AttendedEvents []VolunteerEvent `json:"attended_events,omitempty" db:"-"`
	Teams          []Team           `json:"teams,omitempty" db:"-"`
	ImpactLogs     []ImpactLog      `json:"impact_logs,omitempty" db:"-"`

	AvatarKey *string `json:"-" db:"avatar_key"`
	AvatarURL *string `json:"avatar_url,omitempty" db:"-"`
}

// UserSummary is the identity projection embedded in events, comments
// and member lists. It never carries credential material.
type UserSummary struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
