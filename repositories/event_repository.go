package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Tanjim-Noor/hands-on-volunteering-platform/models"
	"github.com/lib/pq"
)

var (
	ErrEventNotFound         = errors.New("event not found")
	ErrEventAttendeeConflict = errors.New("user already joined this event")
	ErrEventCreatorInvalid   = errors.New("event creator invalid")
	ErrEventAttendeeInvalid  = errors.New("event attendee invalid")
)

type EventRepository interface {
	Create(ctx context.Context, exec SQLExecutor, event *models.VolunteerEvent) error
	GetByID(ctx context.Context, id int) (*models.VolunteerEvent, error)
	List(ctx context.Context, filter models.EventFilter) ([]*models.VolunteerEvent, error)
	AddAttendee(ctx context.Context, eventID, userID int) error
	ListByCreator(ctx context.Context, userID int) ([]models.VolunteerEvent, error)
	ListByAttendee(ctx context.Context, userID int) ([]models.VolunteerEvent, error)
	ListByTeamID(ctx context.Context, teamID int) ([]models.VolunteerEvent, error)
}

type postgresEventRepository struct {
	db *sql.DB
}

func NewPostgresEventRepository(db *sql.DB) EventRepository {
	return &postgresEventRepository{db: db}
}

func (r *postgresEventRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresEventRepository) Create(ctx context.Context, exec SQLExecutor, event *models.VolunteerEvent) error {
	query := `
		INSERT INTO volunteer_events (title, description, event_date, location, category, created_by_id, team_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		event.Title,
		event.Description,
		event.Date,
		event.Location,
		event.Category,
		event.CreatedByID,
		event.TeamID,
	).Scan(&event.ID, &event.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			if pqErr.Constraint == "volunteer_events_created_by_id_fkey" {
				return ErrEventCreatorInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresEventRepository) GetByID(ctx context.Context, id int) (*models.VolunteerEvent, error) {
	query := `
		SELECT
			e.id, e.title, e.description, e.event_date, e.location, e.category,
			e.created_by_id, e.team_id, e.created_at,
			u.id, u.name, u.email
		FROM volunteer_events e
		JOIN users u ON e.created_by_id = u.id
		WHERE e.id = $1`

	var event models.VolunteerEvent
	var creator models.UserSummary

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Date,
		&event.Location,
		&event.Category,
		&event.CreatedByID,
		&event.TeamID,
		&event.CreatedAt,
		&creator.ID,
		&creator.Name,
		&creator.Email,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}
	event.CreatedBy = &creator

	attendees, err := r.listAttendees(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	event.Attendees = attendees

	return &event, nil
}

func (r *postgresEventRepository) List(ctx context.Context, filter models.EventFilter) ([]*models.VolunteerEvent, error) {
	var conditions []string
	var args []interface{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("e.category = $%d", len(args)))
	}
	if filter.Location != "" {
		args = append(args, filter.Location)
		conditions = append(conditions, fmt.Sprintf("e.location = $%d", len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		conditions = append(conditions, fmt.Sprintf("e.event_date >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		conditions = append(conditions, fmt.Sprintf("e.event_date <= $%d", len(args)))
	}

	query := `
		SELECT
			e.id, e.title, e.description, e.event_date, e.location, e.category,
			e.created_by_id, e.team_id, e.created_at,
			u.id, u.name, u.email
		FROM volunteer_events e
		JOIN users u ON e.created_by_id = u.id`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY e.event_date ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*models.VolunteerEvent, 0)
	for rows.Next() {
		var event models.VolunteerEvent
		var creator models.UserSummary
		if scanErr := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Description,
			&event.Date,
			&event.Location,
			&event.Category,
			&event.CreatedByID,
			&event.TeamID,
			&event.CreatedAt,
			&creator.ID,
			&creator.Name,
			&creator.Email,
		); scanErr != nil {
			return nil, scanErr
		}
		event.CreatedBy = &creator
		events = append(events, &event)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	for _, event := range events {
		attendees, attErr := r.listAttendees(ctx, event.ID)
		if attErr != nil {
			return nil, attErr
		}
		event.Attendees = attendees
	}

	return events, nil
}

func (r *postgresEventRepository) AddAttendee(ctx context.Context, eventID, userID int) error {
	query := `INSERT INTO event_attendees (event_id, user_id) VALUES ($1, $2)`

	_, err := r.db.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return ErrEventAttendeeConflict
			case "23503":
				if pqErr.Constraint == "event_attendees_event_id_fkey" {
					return ErrEventNotFound
				}
				if pqErr.Constraint == "event_attendees_user_id_fkey" {
					return ErrEventAttendeeInvalid
				}
			}
		}
		return err
	}
	return nil
}

func (r *postgresEventRepository) ListByCreator(ctx context.Context, userID int) ([]models.VolunteerEvent, error) {
	query := `
		SELECT id, title, description, event_date, location, category, created_by_id, team_id, created_at
		FROM volunteer_events
		WHERE created_by_id = $1
		ORDER BY event_date ASC`
	return r.listPlain(ctx, query, userID)
}

func (r *postgresEventRepository) ListByAttendee(ctx context.Context, userID int) ([]models.VolunteerEvent, error) {
	query := `
		SELECT e.id, e.title, e.description, e.event_date, e.location, e.category, e.created_by_id, e.team_id, e.created_at
		FROM volunteer_events e
		JOIN event_attendees a ON a.event_id = e.id
		WHERE a.user_id = $1
		ORDER BY e.event_date ASC`
	return r.listPlain(ctx, query, userID)
}

func (r *postgresEventRepository) ListByTeamID(ctx context.Context, teamID int) ([]models.VolunteerEvent, error) {
	query := `
		SELECT id, title, description, event_date, location, category, created_by_id, team_id, created_at
		FROM volunteer_events
		WHERE team_id = $1
		ORDER BY event_date ASC`
	return r.listPlain(ctx, query, teamID)
}

func (r *postgresEventRepository) listPlain(ctx context.Context, query string, arg interface{}) ([]models.VolunteerEvent, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]models.VolunteerEvent, 0)
	for rows.Next() {
		var event models.VolunteerEvent
		if scanErr := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Description,
			&event.Date,
			&event.Location,
			&event.Category,
			&event.CreatedByID,
			&event.TeamID,
			&event.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *postgresEventRepository) listAttendees(ctx context.Context, eventID int) ([]models.UserSummary, error) {
	query := `
		SELECT u.id, u.name, u.email
		FROM users u
		JOIN event_attendees a ON a.user_id = u.id
		WHERE a.event_id = $1
		ORDER BY u.id`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attendees := make([]models.UserSummary, 0)
	for rows.Next() {
		var attendee models.UserSummary
		if scanErr := rows.Scan(&attendee.ID, &attendee.Name, &attendee.Email); scanErr != nil {
			return nil, scanErr
		}
		attendees = append(attendees, attendee)
	}
	return attendees, rows.Err()
}
