package filestore

import (
	"context"
	"fmt"
	"os"

	"impactecho-backend/internal/domain"
	"impactecho-backend/internal/repository"
)

const (
	registrationsFile = "ngo_registrations.json"
	credentialsFile   = "ngo_credentials.json"
	causeRequestsFile = "ngo_cause_requests.json"
	causesFile        = "causes.json"
	loginLogsFile     = "login_logs.json"
)

var _ repository.Store = (*Store)(nil)

// Store is the file-backed implementation of every ledger. Cross-ledger
// operations lock cause requests before causes.
type Store struct {
	dir           string
	registrations *ledger[domain.Registration]
	credentials   *ledger[domain.Credential]
	causeRequests *ledger[domain.CauseRequest]
	causes        *ledger[domain.Cause]
	loginLogs     *ledger[domain.LoginLog]
}

// Open prepares dir and returns a Store rooted there.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{
		dir:           dir,
		registrations: newLedger[domain.Registration](dir, registrationsFile),
		credentials:   newLedger[domain.Credential](dir, credentialsFile),
		causeRequests: newLedger[domain.CauseRequest](dir, causeRequestsFile),
		causes:        newLedger[domain.Cause](dir, causesFile),
		loginLogs:     newLedger[domain.LoginLog](dir, loginLogsFile),
	}, nil
}

func (s *Store) Registrations() repository.RegistrationRepository {
	return &registrationRepository{l: s.registrations}
}

func (s *Store) Credentials() repository.CredentialRepository {
	return &credentialRepository{l: s.credentials}
}

func (s *Store) CauseRequests() repository.CauseRequestRepository {
	return &causeRequestRepository{l: s.causeRequests, causes: s.causes}
}

func (s *Store) Causes() repository.CauseRepository {
	return &causeRepository{l: s.causes}
}

func (s *Store) LoginLogs() repository.LoginLogRepository {
	return &loginLogRepository{l: s.loginLogs}
}

// Ping checks the data directory is still reachable.
func (s *Store) Ping(ctx context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrPersistence, s.dir)
	}
	return nil
}

func (s *Store) Close() error { return nil }
