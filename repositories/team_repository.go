package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Tanjim-Noor/hands-on-volunteering-platform/models"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound       = errors.New("team not found")
	ErrTeamMemberConflict = errors.New("user is already a team member")
	ErrTeamMemberInvalid  = errors.New("team member invalid")
)

type TeamRepository interface {
	// Create inserts the team, its creator membership and, for private
	// teams, the initial invite list inside one transaction.
	Create(ctx context.Context, team *models.Team, creatorID int, inviteEmails []string) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	// GetWithDetails loads the team with members, events and invites.
	GetWithDetails(ctx context.Context, id int) (*models.Team, error)
	IsMember(ctx context.Context, teamID, userID int) (bool, error)
	AddMember(ctx context.Context, teamID, userID int) error
	// AddMemberConsumingInvite adds membership and deletes every invite
	// row matching the email case-insensitively, atomically.
	AddMemberConsumingInvite(ctx context.Context, teamID, userID int, email string) error
	HasInviteForEmail(ctx context.Context, teamID int, email string) (bool, error)
	// ReplaceInvites deletes the team's invite rows and inserts the
	// supplied list verbatim, atomically.
	ReplaceInvites(ctx context.Context, teamID int, emails []string) error
	ListInvites(ctx context.Context, teamID int) ([]models.TeamInvite, error)
	ListByMember(ctx context.Context, userID int) ([]*models.Team, error)
	ListByNonMember(ctx context.Context, userID int) ([]*models.Team, error)
	UpdateLogoKey(ctx context.Context, id int, logoKey *string) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team, creatorID int, inviteEmails []string) error {
	return runInTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO teams (name, description, is_private)
			VALUES ($1, $2, $3)
			RETURNING id, created_at`

		err := tx.QueryRowContext(ctx, query,
			team.Name,
			team.Description,
			team.IsPrivate,
		).Scan(&team.ID, &team.CreatedAt)
		if err != nil {
			return err
		}

		if err := addMember(ctx, tx, team.ID, creatorID); err != nil {
			return err
		}

		if len(inviteEmails) > 0 {
			if err := insertInvites(ctx, tx, team.ID, inviteEmails); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `
		SELECT id, name, description, is_private, logo_key, created_at
		FROM teams
		WHERE id = $1`

	team, err := scanTeamRow(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to scan team: %w", err)
	}
	return team, nil
}

func (r *postgresTeamRepository) GetWithDetails(ctx context.Context, id int) (*models.Team, error) {
	team, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.loadRelations(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (r *postgresTeamRepository) IsMember(ctx context.Context, teamID, userID int) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM team_members WHERE team_id = $1 AND user_id = $2
	)`
	var isMember bool
	err := r.db.QueryRowContext(ctx, query, teamID, userID).Scan(&isMember)
	return isMember, err
}

func (r *postgresTeamRepository) AddMember(ctx context.Context, teamID, userID int) error {
	return addMember(ctx, r.db, teamID, userID)
}

func (r *postgresTeamRepository) AddMemberConsumingInvite(ctx context.Context, teamID, userID int, email string) error {
	return runInTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := addMember(ctx, tx, teamID, userID); err != nil {
			return err
		}
		return deleteInvitesForEmail(ctx, tx, teamID, email)
	})
}

func (r *postgresTeamRepository) HasInviteForEmail(ctx context.Context, teamID int, email string) (bool, error) {
	return inviteExistsForEmail(ctx, r.db, teamID, email)
}

func (r *postgresTeamRepository) ReplaceInvites(ctx context.Context, teamID int, emails []string) error {
	return runInTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := deleteInvitesForTeam(ctx, tx, teamID); err != nil {
			return err
		}
		return insertInvites(ctx, tx, teamID, emails)
	})
}

func (r *postgresTeamRepository) ListInvites(ctx context.Context, teamID int) ([]models.TeamInvite, error) {
	return listInvitesByTeam(ctx, r.db, teamID)
}

func (r *postgresTeamRepository) ListByMember(ctx context.Context, userID int) ([]*models.Team, error) {
	query := `
		SELECT t.id, t.name, t.description, t.is_private, t.logo_key, t.created_at
		FROM teams t
		JOIN team_members m ON m.team_id = t.id
		WHERE m.user_id = $1
		ORDER BY t.id`
	return r.listTeams(ctx, query, userID)
}

func (r *postgresTeamRepository) ListByNonMember(ctx context.Context, userID int) ([]*models.Team, error) {
	// Private teams are listed too: they are visible, joining them is
	// still invite-gated.
	query := `
		SELECT t.id, t.name, t.description, t.is_private, t.logo_key, t.created_at
		FROM teams t
		WHERE NOT EXISTS (
			SELECT 1 FROM team_members m WHERE m.team_id = t.id AND m.user_id = $1
		)
		ORDER BY t.id`
	return r.listTeams(ctx, query, userID)
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, id int, logoKey *string) error {
	query := `UPDATE teams SET logo_key = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, logoKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) listTeams(ctx context.Context, query string, userID int) ([]*models.Team, error) {
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		team, scanErr := scanTeamRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, team)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	for _, team := range teams {
		if err := r.loadRelations(ctx, team); err != nil {
			return nil, err
		}
	}
	return teams, nil
}

func (r *postgresTeamRepository) loadRelations(ctx context.Context, team *models.Team) error {
	members, err := r.listMembers(ctx, team.ID)
	if err != nil {
		return err
	}
	team.Members = members

	events, err := r.listTeamEvents(ctx, team.ID)
	if err != nil {
		return err
	}
	team.Events = events

	invites, err := listInvitesByTeam(ctx, r.db, team.ID)
	if err != nil {
		return err
	}
	team.Invites = invites

	return nil
}

func (r *postgresTeamRepository) listMembers(ctx context.Context, teamID int) ([]models.UserSummary, error) {
	query := `
		SELECT u.id, u.name, u.email
		FROM users u
		JOIN team_members m ON m.user_id = u.id
		WHERE m.team_id = $1
		ORDER BY u.id`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]models.UserSummary, 0)
	for rows.Next() {
		var member models.UserSummary
		if scanErr := rows.Scan(&member.ID, &member.Name, &member.Email); scanErr != nil {
			return nil, scanErr
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

func (r *postgresTeamRepository) listTeamEvents(ctx context.Context, teamID int) ([]models.VolunteerEvent, error) {
	query := `
		SELECT id, title, description, event_date, location, category, created_by_id, team_id, created_at
		FROM volunteer_events
		WHERE team_id = $1
		ORDER BY event_date ASC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
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

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTeamRow(row rowScanner) (*models.Team, error) {
	var team models.Team
	err := row.Scan(
		&team.ID,
		&team.Name,
		&team.Description,
		&team.IsPrivate,
		&team.LogoKey,
		&team.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func addMember(ctx context.Context, exec SQLExecutor, teamID, userID int) error {
	query := `INSERT INTO team_members (team_id, user_id) VALUES ($1, $2)`

	_, err := exec.ExecContext(ctx, query, teamID, userID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return ErrTeamMemberConflict
			case "23503":
				if pqErr.Constraint == "team_members_team_id_fkey" {
					return ErrTeamNotFound
				}
				if pqErr.Constraint == "team_members_user_id_fkey" {
					return ErrTeamMemberInvalid
				}
			}
		}
		return err
	}
	return nil
}
