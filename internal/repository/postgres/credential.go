package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"impactecho-backend/internal/domain"
	"impactecho-backend/internal/logger"
	"impactecho-backend/internal/repository"
)

type credentialRepository struct {
	db *sql.DB
}

func NewCredentialRepository(db *sql.DB) repository.CredentialRepository {
	return &credentialRepository{db: db}
}

// Create relies on the primary key: a second insert for the same identifier
// affects no rows.
func (r *credentialRepository) Create(ctx context.Context, cred *domain.Credential) error {
	query := `INSERT INTO credentials (unique_id, username, secret_hash, org_name, created_at)
	          VALUES ($1, $2, $3, $4, $5) ON CONFLICT (unique_id) DO NOTHING`
	logger.DatabaseCall("insert", "credentials")
	res, err := r.db.ExecContext(ctx, query, cred.UniqueID, cred.Username, cred.SecretHash, cred.OrgName, cred.CreatedAt)
	if err != nil {
		return dbError("insert credentials", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return dbError("insert credentials", err)
	}
	logger.DatabaseResult("insert", n, nil, "table", "credentials")
	if n == 0 {
		return fmt.Errorf("%w: credentials already exist for %s", domain.ErrConflict, cred.UniqueID)
	}
	return nil
}

func (r *credentialRepository) GetByUniqueID(ctx context.Context, uniqueID string) (*domain.Credential, error) {
	cred := &domain.Credential{}
	query := `SELECT unique_id, username, secret_hash, org_name, created_at FROM credentials WHERE unique_id = $1`
	err := r.db.QueryRowContext(ctx, query, uniqueID).Scan(&cred.UniqueID, &cred.Username, &cred.SecretHash, &cred.OrgName, &cred.CreatedAt)
	if err != nil {
		return nil, dbError("credentials for "+uniqueID, err)
	}
	return cred, nil
}

func (r *credentialRepository) GetByUsername(ctx context.Context, username string) ([]domain.Credential, error) {
	query := `SELECT unique_id, username, secret_hash, org_name, created_at FROM credentials WHERE username = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, dbError("credentials by username", err)
	}
	defer rows.Close()

	var creds []domain.Credential
	for rows.Next() {
		var c domain.Credential
		if err := rows.Scan(&c.UniqueID, &c.Username, &c.SecretHash, &c.OrgName, &c.CreatedAt); err != nil {
			return nil, dbError("scan credentials", err)
		}
		creds = append(creds, c)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("credentials by username", err)
	}
	return creds, nil
}
