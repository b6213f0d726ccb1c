package models

import "time"

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyUrgent Urgency = "urgent"
)

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyUrgent:
		return true
	default:
		return false
	}
}

type CommunityRequest struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	Urgency     Urgency   `json:"urgency" db:"urgency"`
	CreatedByID int       `json:"created_by_id" db:"created_by_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	CreatedBy *UserSummary `json:"created_by,omitempty" db:"-"`
	Comments  []Comment    `json:"comments" db:"-"`
}

type Comment struct {
	ID        int       `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	RequestID int       `json:"request_id" db:"request_id"`
	AuthorID  int       `json:"author_id" db:"author_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Author *UserSummary `json:"author,omitempty" db:"-"`
}
