package models

import "time"

type VolunteerEvent struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	Date        time.Time `json:"date" db:"event_date"`
	Location    string    `json:"location" db:"location"`
	Category    string    `json:"category" db:"category"`
	CreatedByID int       `json:"created_by_id" db:"created_by_id"`
	TeamID      *int      `json:"team_id,omitempty" db:"team_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	CreatedBy *UserSummary  `json:"created_by,omitempty" db:"-"`
	Attendees []UserSummary `json:"attendees,omitempty" db:"-"`
}

// EventFilter narrows the public event listing. Zero values mean "no
// constraint"; category and location match exactly, dates bound an
// inclusive range over the event date.
type EventFilter struct {
	Category string
	Location string
	DateFrom *time.Time
	DateTo   *time.Time
}
