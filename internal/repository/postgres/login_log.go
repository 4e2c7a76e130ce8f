package postgres

import (
	"context"
	"database/sql"

	"impactecho-backend/internal/domain"
	"impactecho-backend/internal/repository"
)

type loginLogRepository struct {
	db *sql.DB
}

func NewLoginLogRepository(db *sql.DB) repository.LoginLogRepository {
	return &loginLogRepository{db: db}
}

func (r *loginLogRepository) Append(ctx context.Context, entry *domain.LoginLog) error {
	query := `INSERT INTO login_logs (logged_at, user_type, identifier) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, entry.Timestamp, entry.UserType, entry.Identifier); err != nil {
		return dbError("append login log", err)
	}
	return nil
}

func (r *loginLogRepository) List(ctx context.Context) ([]domain.LoginLog, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT logged_at, user_type, identifier FROM login_logs ORDER BY id`)
	if err != nil {
		return nil, dbError("list login logs", err)
	}
	defer rows.Close()

	entries := []domain.LoginLog{}
	for rows.Next() {
		var e domain.LoginLog
		if err := rows.Scan(&e.Timestamp, &e.UserType, &e.Identifier); err != nil {
			return nil, dbError("scan login log", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("list login logs", err)
	}
	return entries, nil
}
