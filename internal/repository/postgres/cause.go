package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"impactecho-backend/internal/domain"
	"impactecho-backend/internal/logger"
	"impactecho-backend/internal/repository"
)

const causeRequestColumns = `id, org_identifier, org_name, title, description, goal_amount, image_reference, status, submitted_at, approved_at`

type causeRequestRepository struct {
	db *sql.DB
}

func NewCauseRequestRepository(db *sql.DB) repository.CauseRequestRepository {
	return &causeRequestRepository{db: db}
}

func scanCauseRequest(row rowScanner) (*domain.CauseRequest, error) {
	var (
		req        domain.CauseRequest
		approvedAt sql.NullTime
	)
	if err := row.Scan(&req.ID, &req.OrgIdentifier, &req.OrgName, &req.Title, &req.Description,
		&req.GoalAmount, &req.ImageReference, &req.Status, &req.SubmittedAt, &approvedAt); err != nil {
		return nil, err
	}
	if approvedAt.Valid {
		req.ApprovedAt = &approvedAt.Time
	}
	return &req, nil
}

func (r *causeRequestRepository) Create(ctx context.Context, req *domain.CauseRequest) error {
	req.Status = domain.CauseRequestStatusPending
	req.ApprovedAt = nil
	query := `INSERT INTO cause_requests (org_identifier, org_name, title, description, goal_amount, image_reference, status, submitted_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	logger.DatabaseCall("insert", "cause_requests")
	err := r.db.QueryRowContext(ctx, query, req.OrgIdentifier, req.OrgName, req.Title, req.Description,
		req.GoalAmount, req.ImageReference, req.Status, req.SubmittedAt).Scan(&req.ID)
	if err != nil {
		return dbError("insert cause request", err)
	}
	return nil
}

func (r *causeRequestRepository) GetByID(ctx context.Context, id int32) (*domain.CauseRequest, error) {
	query := `SELECT ` + causeRequestColumns + ` FROM cause_requests WHERE id = $1`
	req, err := scanCauseRequest(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, dbError(fmt.Sprintf("cause request %d", id), err)
	}
	return req, nil
}

func (r *causeRequestRepository) List(ctx context.Context) ([]domain.CauseRequest, error) {
	return r.list(ctx, `SELECT `+causeRequestColumns+` FROM cause_requests ORDER BY id`)
}

func (r *causeRequestRepository) ListByOrg(ctx context.Context, orgIdentifier string) ([]domain.CauseRequest, error) {
	return r.list(ctx, `SELECT `+causeRequestColumns+` FROM cause_requests WHERE org_identifier = $1 ORDER BY id`, orgIdentifier)
}

func (r *causeRequestRepository) list(ctx context.Context, query string, args ...any) ([]domain.CauseRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError("list cause requests", err)
	}
	defer rows.Close()

	reqs := []domain.CauseRequest{}
	for rows.Next() {
		req, err := scanCauseRequest(rows)
		if err != nil {
			return nil, dbError("scan cause request", err)
		}
		reqs = append(reqs, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("list cause requests", err)
	}
	return reqs, nil
}

// ApproveAndPublish flips the request and inserts the catalog row in one
// transaction. The conditional update takes the row lock.
func (r *causeRequestRepository) ApproveAndPublish(ctx context.Context, id int32, approvedAt time.Time) (*domain.CauseRequest, *domain.Cause, error) {
	var (
		req   *domain.CauseRequest
		cause *domain.Cause
	)
	err := inTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `UPDATE cause_requests SET status = 'approved', approved_at = $1
		          WHERE id = $2 AND status = 'pending' RETURNING ` + causeRequestColumns
		logger.DatabaseCall("update", "cause_requests", "id", id)
		var err error
		req, err = scanCauseRequest(tx.QueryRowContext(ctx, query, approvedAt, id))
		if err != nil {
			return dbError(fmt.Sprintf("no pending cause request %d", id), err)
		}

		cause = domain.CauseFromRequest(req)
		logger.DatabaseCall("insert", "causes")
		err = tx.QueryRowContext(ctx,
			`INSERT INTO causes (title, description, goal_amount, raised_amount, image_reference, org_name)
			 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			cause.Title, cause.Description, cause.GoalAmount, cause.RaisedAmount, cause.ImageReference, nullString(cause.OrgName),
		).Scan(&cause.ID)
		if err != nil {
			return dbError("publish cause", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return req, cause, nil
}

type causeRepository struct {
	db *sql.DB
}

func NewCauseRepository(db *sql.DB) repository.CauseRepository {
	return &causeRepository{db: db}
}

func (r *causeRepository) Create(ctx context.Context, cause *domain.Cause) error {
	query := `INSERT INTO causes (title, description, goal_amount, raised_amount, image_reference, org_name)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	logger.DatabaseCall("insert", "causes")
	err := r.db.QueryRowContext(ctx, query, cause.Title, cause.Description, cause.GoalAmount,
		cause.RaisedAmount, cause.ImageReference, nullString(cause.OrgName)).Scan(&cause.ID)
	if err != nil {
		return dbError("insert cause", err)
	}
	return nil
}

func (r *causeRepository) List(ctx context.Context) ([]domain.Cause, error) {
	query := `SELECT id, title, description, goal_amount, raised_amount, image_reference, org_name FROM causes ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, dbError("list causes", err)
	}
	defer rows.Close()

	causes := []domain.Cause{}
	for rows.Next() {
		var (
			c       domain.Cause
			orgName sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.GoalAmount, &c.RaisedAmount, &c.ImageReference, &orgName); err != nil {
			return nil, dbError("scan cause", err)
		}
		if orgName.Valid {
			c.OrgName = &orgName.String
		}
		causes = append(causes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("list causes", err)
	}
	return causes, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
