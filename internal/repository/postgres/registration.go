package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"impactecho-backend/internal/domain"
	"impactecho-backend/internal/logger"
	"impactecho-backend/internal/repository"
)

const registrationColumns = `id, org_name, contact_email, contact_person, submitted_documents, status, unique_id, submitted_at, approved_at`

type registrationRepository struct {
	db *sql.DB
}

func NewRegistrationRepository(db *sql.DB) repository.RegistrationRepository {
	return &registrationRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRegistration(row rowScanner) (*domain.Registration, error) {
	var (
		reg        domain.Registration
		docs       pq.StringArray
		uniqueID   sql.NullString
		approvedAt sql.NullTime
	)
	if err := row.Scan(&reg.ID, &reg.OrgName, &reg.ContactEmail, &reg.ContactPerson, &docs,
		&reg.Status, &uniqueID, &reg.SubmittedAt, &approvedAt); err != nil {
		return nil, err
	}
	reg.SubmittedDocuments = []string(docs)
	if reg.SubmittedDocuments == nil {
		reg.SubmittedDocuments = []string{}
	}
	if uniqueID.Valid {
		reg.UniqueID = &uniqueID.String
	}
	if approvedAt.Valid {
		reg.ApprovedAt = &approvedAt.Time
	}
	return &reg, nil
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	if reg.SubmittedDocuments == nil {
		reg.SubmittedDocuments = []string{}
	}
	reg.Status = domain.RegistrationStatusPending
	reg.UniqueID = nil
	reg.ApprovedAt = nil

	query := `INSERT INTO registrations (org_name, contact_email, contact_person, submitted_documents, status, submitted_at)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	logger.DatabaseCall("insert", "registrations")
	err := r.db.QueryRowContext(ctx, query, reg.OrgName, reg.ContactEmail, reg.ContactPerson,
		pq.Array(reg.SubmittedDocuments), reg.Status, reg.SubmittedAt).Scan(&reg.ID)
	if err != nil {
		return dbError("insert registration", err)
	}
	return nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id int32) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`
	reg, err := scanRegistration(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, dbError(fmt.Sprintf("registration %d", id), err)
	}
	return reg, nil
}

func (r *registrationRepository) GetApprovedByUniqueID(ctx context.Context, uniqueID string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE unique_id = $1 AND status = 'approved'`
	reg, err := scanRegistration(r.db.QueryRowContext(ctx, query, uniqueID))
	if err != nil {
		return nil, dbError("approved registration "+uniqueID, err)
	}
	return reg, nil
}

func (r *registrationRepository) List(ctx context.Context) ([]domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, dbError("list registrations", err)
	}
	defer rows.Close()

	regs := []domain.Registration{}
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, dbError("scan registration", err)
		}
		regs = append(regs, *reg)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("list registrations", err)
	}
	return regs, nil
}

// Approve serialises approvals with a table lock so the issued-identifier
// check and the update see every concurrent approval.
func (r *registrationRepository) Approve(ctx context.Context, id int32, generate repository.IdentifierGenerator, approvedAt time.Time) (*domain.Registration, error) {
	var approved *domain.Registration
	err := inTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `LOCK TABLE registrations IN SHARE ROW EXCLUSIVE MODE`); err != nil {
			return dbError("lock registrations", err)
		}

		var pendingID int32
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM registrations WHERE id = $1 AND status = 'pending' FOR UPDATE`, id).Scan(&pendingID)
		if err != nil {
			return dbError(fmt.Sprintf("no pending registration %d", id), err)
		}

		uniqueID, err := r.freshIdentifier(ctx, tx, generate)
		if err != nil {
			return err
		}

		query := `UPDATE registrations SET status = 'approved', unique_id = $1, approved_at = $2
		          WHERE id = $3 RETURNING ` + registrationColumns
		logger.DatabaseCall("update", "registrations", "id", id)
		approved, err = scanRegistration(tx.QueryRowContext(ctx, query, uniqueID, approvedAt, id))
		if err != nil {
			return dbError("approve registration", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return approved, nil
}

func (r *registrationRepository) freshIdentifier(ctx context.Context, tx *sql.Tx, generate repository.IdentifierGenerator) (string, error) {
	for attempt := 0; attempt < repository.MaxIdentifierAttempts; attempt++ {
		candidate, err := generate()
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
		var taken bool
		err = tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM registrations WHERE unique_id = $1)`, candidate).Scan(&taken)
		if err != nil {
			return "", dbError("check identifier", err)
		}
		if !taken {
			return candidate, nil
		}
		logger.Debug("Identifier collision, regenerating", "attempt", attempt+1)
	}
	return "", fmt.Errorf("%w: no free identifier after %d attempts", domain.ErrPersistence, repository.MaxIdentifierAttempts)
}
