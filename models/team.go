package models

import "time"

type Team struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	IsPrivate   bool      `json:"is_private" db:"is_private"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	Members []UserSummary    `json:"members,omitempty" db:"-"`
	Events  []VolunteerEvent `json:"events,omitempty" db:"-"`
	Invites []TeamInvite     `json:"invites,omitempty" db:"-"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`
}

// TeamInvite is a pending (email, team) pair granting join eligibility
// for a private team. The email need not belong to a registered user;
// matching against a joining account is case-insensitive and the row
// is consumed on redemption.
type TeamInvite struct {
	ID        int       `json:"id" db:"id"`
	TeamID    int       `json:"team_id" db:"team_id"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
