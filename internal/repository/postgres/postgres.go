// Package postgres implements the ledgers on PostgreSQL via lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"impactecho-backend/internal/domain"
	"impactecho-backend/internal/repository"
)

var _ repository.Store = (*Store)(nil)

type Store struct {
	db            *sql.DB
	registrations repository.RegistrationRepository
	credentials   repository.CredentialRepository
	causeRequests repository.CauseRequestRepository
	causes        repository.CauseRepository
	loginLogs     repository.LoginLogRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:            db,
		registrations: NewRegistrationRepository(db),
		credentials:   NewCredentialRepository(db),
		causeRequests: NewCauseRequestRepository(db),
		causes:        NewCauseRepository(db),
		loginLogs:     NewLoginLogRepository(db),
	}
}

func (s *Store) Registrations() repository.RegistrationRepository { return s.registrations }
func (s *Store) Credentials() repository.CredentialRepository     { return s.credentials }
func (s *Store) CauseRequests() repository.CauseRequestRepository { return s.causeRequests }
func (s *Store) Causes() repository.CauseRepository               { return s.causes }
func (s *Store) LoginLogs() repository.LoginLogRepository         { return s.loginLogs }

func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

const uniqueViolation = "23505"

// dbError wraps a driver failure as a persistence error. No rows becomes
// not found and a unique violation becomes a conflict.
func dbError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, op)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", domain.ErrConflict, op)
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrPersistence, op, err)
}

// inTx runs fn in a transaction, committing only when fn succeeds.
func inTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return dbError("begin", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return dbError("commit", err)
	}
	return nil
}
