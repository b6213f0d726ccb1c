package repositories

import (
	"context"

	"github.com/Tanjim-Noor/hands-on-volunteering-platform/models"
)

// Invite queries are shared between the standalone team repository
// methods and its transactional composites, so they take an
// SQLExecutor rather than binding to *sql.DB.

func insertInvites(ctx context.Context, exec SQLExecutor, teamID int, emails []string) error {
	query := `INSERT INTO team_invites (team_id, email) VALUES ($1, $2)`
	// Supplied lists are stored verbatim: no deduplication, no case
	// normalization.
	for _, email := range emails {
		if _, err := exec.ExecContext(ctx, query, teamID, email); err != nil {
			return err
		}
	}
	return nil
}

func deleteInvitesForTeam(ctx context.Context, exec SQLExecutor, teamID int) error {
	query := `DELETE FROM team_invites WHERE team_id = $1`
	_, err := exec.ExecContext(ctx, query, teamID)
	return err
}

// deleteInvitesForEmail removes every invite row for the team whose
// email matches case-insensitively. Redemption is one-time: all rows
// for the email go, duplicates included.
func deleteInvitesForEmail(ctx context.Context, exec SQLExecutor, teamID int, email string) error {
	query := `DELETE FROM team_invites WHERE team_id = $1 AND LOWER(email) = LOWER($2)`
	_, err := exec.ExecContext(ctx, query, teamID, email)
	return err
}

func inviteExistsForEmail(ctx context.Context, exec SQLExecutor, teamID int, email string) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM team_invites WHERE team_id = $1 AND LOWER(email) = LOWER($2)
	)`
	var exists bool
	err := exec.QueryRowContext(ctx, query, teamID, email).Scan(&exists)
	return exists, err
}

func listInvitesByTeam(ctx context.Context, exec SQLExecutor, teamID int) ([]models.TeamInvite, error) {
	query := `
		SELECT id, team_id, email, created_at
		FROM team_invites
		WHERE team_id = $1
		ORDER BY id`

	rows, err := exec.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invites := make([]models.TeamInvite, 0)
	for rows.Next() {
		var invite models.TeamInvite
		if scanErr := rows.Scan(&invite.ID, &invite.TeamID, &invite.Email, &invite.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		invites = append(invites, invite)
	}
	return invites, rows.Err()
}
