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
	ErrRequestNotFound      = errors.New("community request not found")
	ErrCommentAuthorInvalid = errors.New("comment author invalid")
)

type RequestRepository interface {
	Create(ctx context.Context, request *models.CommunityRequest) error
	GetByID(ctx context.Context, id int) (*models.CommunityRequest, error)
	List(ctx context.Context) ([]*models.CommunityRequest, error)
	CreateComment(ctx context.Context, comment *models.Comment) error
}

type postgresRequestRepository struct {
	db *sql.DB
}

func NewPostgresRequestRepository(db *sql.DB) RequestRepository {
	return &postgresRequestRepository{db: db}
}

func (r *postgresRequestRepository) Create(ctx context.Context, request *models.CommunityRequest) error {
	query := `
		INSERT INTO community_requests (title, description, urgency, created_by_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		request.Title,
		request.Description,
		request.Urgency,
		request.CreatedByID,
	).Scan(&request.ID, &request.CreatedAt)
}

func (r *postgresRequestRepository) GetByID(ctx context.Context, id int) (*models.CommunityRequest, error) {
	query := `
		SELECT
			cr.id, cr.title, cr.description, cr.urgency, cr.created_by_id, cr.created_at,
			u.id, u.name, u.email
		FROM community_requests cr
		JOIN users u ON cr.created_by_id = u.id
		WHERE cr.id = $1`

	var request models.CommunityRequest
	var creator models.UserSummary

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&request.ID,
		&request.Title,
		&request.Description,
		&request.Urgency,
		&request.CreatedByID,
		&request.CreatedAt,
		&creator.ID,
		&creator.Name,
		&creator.Email,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to scan community request: %w", err)
	}
	request.CreatedBy = &creator

	comments, err := r.listComments(ctx, request.ID)
	if err != nil {
		return nil, err
	}
	request.Comments = comments

	return &request, nil
}

func (r *postgresRequestRepository) List(ctx context.Context) ([]*models.CommunityRequest, error) {
	query := `
		SELECT
			cr.id, cr.title, cr.description, cr.urgency, cr.created_by_id, cr.created_at,
			u.id, u.name, u.email
		FROM community_requests cr
		JOIN users u ON cr.created_by_id = u.id
		ORDER BY cr.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]*models.CommunityRequest, 0)
	for rows.Next() {
		var request models.CommunityRequest
		var creator models.UserSummary
		if scanErr := rows.Scan(
			&request.ID,
			&request.Title,
			&request.Description,
			&request.Urgency,
			&request.CreatedByID,
			&request.CreatedAt,
			&creator.ID,
			&creator.Name,
			&creator.Email,
		); scanErr != nil {
			return nil, scanErr
		}
		request.CreatedBy = &creator
		requests = append(requests, &request)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	for _, request := range requests {
		comments, cErr := r.listComments(ctx, request.ID)
		if cErr != nil {
			return nil, cErr
		}
		request.Comments = comments
	}

	return requests, nil
}

func (r *postgresRequestRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (text, request_id, author_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		comment.Text,
		comment.RequestID,
		comment.AuthorID,
	).Scan(&comment.ID, &comment.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			if pqErr.Constraint == "comments_request_id_fkey" {
				return ErrRequestNotFound
			}
			if pqErr.Constraint == "comments_author_id_fkey" {
				return ErrCommentAuthorInvalid
			}
		}
		return err
	}
	return nil
}

// listComments returns a request's comments with author identities,
// oldest first.
func (r *postgresRequestRepository) listComments(ctx context.Context, requestID int) ([]models.Comment, error) {
	query := `
		SELECT
			c.id, c.text, c.request_id, c.author_id, c.created_at,
			u.id, u.name, u.email
		FROM comments c
		JOIN users u ON c.author_id = u.id
		WHERE c.request_id = $1
		ORDER BY c.created_at ASC, c.id ASC`

	rows, err := r.db.QueryContext(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		var comment models.Comment
		var author models.UserSummary
		if scanErr := rows.Scan(
			&comment.ID,
			&comment.Text,
			&comment.RequestID,
			&comment.AuthorID,
			&comment.CreatedAt,
			&author.ID,
			&author.Name,
			&author.Email,
		); scanErr != nil {
			return nil, scanErr
		}
		comment.Author = &author
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}
