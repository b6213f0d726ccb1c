package repositories

import (
	"context"
	"database/sql"

	"github.com/Tanjim-Noor/hands-on-volunteering-platform/models"
)

type ImpactLogRepository interface {
	Create(ctx context.Context, log *models.ImpactLog) error
	ListByUserID(ctx context.Context, userID int) ([]models.ImpactLog, error)
}

type postgresImpactLogRepository struct {
	db *sql.DB
}

func NewPostgresImpactLogRepository(db *sql.DB) ImpactLogRepository {
	return &postgresImpactLogRepository{db: db}
}

func (r *postgresImpactLogRepository) Create(ctx context.Context, log *models.ImpactLog) error {
	query := `
		INSERT INTO impact_logs (user_id, volunteer_hours, verified)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		log.UserID,
		log.VolunteerHours,
		log.Verified,
	).Scan(&log.ID, &log.CreatedAt)
}

func (r *postgresImpactLogRepository) ListByUserID(ctx context.Context, userID int) ([]models.ImpactLog, error) {
	query := `
		SELECT id, user_id, volunteer_hours, verified, created_at
		FROM impact_logs
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]models.ImpactLog, 0)
	for rows.Next() {
		var log models.ImpactLog
		if scanErr := rows.Scan(
			&log.ID,
			&log.UserID,
			&log.VolunteerHours,
			&log.Verified,
			&log.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}
