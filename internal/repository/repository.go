package repository

import (
	"context"
	"time"

	"impactecho-backend/internal/domain"
)

// IdentifierGenerator yields candidate organization identifiers. Repositories
// call it repeatedly, under the registration ledger lock, until a candidate is
// not among the identifiers already issued.
type IdentifierGenerator func() (string, error)

// MaxIdentifierAttempts bounds collision retries before approval gives up.
const MaxIdentifierAttempts = 16

type RegistrationRepository interface {
	// Create assigns ID = max(existing)+1 and stores the registration as pending.
	Create(ctx context.Context, reg *domain.Registration) error
	GetByID(ctx context.Context, id int32) (*domain.Registration, error)
	GetApprovedByUniqueID(ctx context.Context, uniqueID string) (*domain.Registration, error)
	List(ctx context.Context) ([]domain.Registration, error)
	// Approve moves a pending registration to approved and binds a fresh
	// identifier in one atomic step. Returns domain.ErrNotFound when no pending
	// registration has that id.
	Approve(ctx context.Context, id int32, generate IdentifierGenerator, approvedAt time.Time) (*domain.Registration, error)
}

type CredentialRepository interface {
	// Create appends cred unless a credential already exists for its UniqueID,
	// in which case it returns domain.ErrConflict. Check and append are atomic.
	Create(ctx context.Context, cred *domain.Credential) error
	GetByUniqueID(ctx context.Context, uniqueID string) (*domain.Credential, error)
	GetByUsername(ctx context.Context, username string) ([]domain.Credential, error)
}

type CauseRequestRepository interface {
	Create(ctx context.Context, req *domain.CauseRequest) error
	GetByID(ctx context.Context, id int32) (*domain.CauseRequest, error)
	List(ctx context.Context) ([]domain.CauseRequest, error)
	ListByOrg(ctx context.Context, orgIdentifier string) ([]domain.CauseRequest, error)
	// ApproveAndPublish marks a pending request approved and appends the
	// matching catalog entry as one unit: either both land or neither does.
	ApproveAndPublish(ctx context.Context, id int32, approvedAt time.Time) (*domain.CauseRequest, *domain.Cause, error)
}

type CauseRepository interface {
	Create(ctx context.Context, cause *domain.Cause) error
	List(ctx context.Context) ([]domain.Cause, error)
}

type LoginLogRepository interface {
	Append(ctx context.Context, entry *domain.LoginLog) error
	List(ctx context.Context) ([]domain.LoginLog, error)
}

// Store bundles every ledger a backend provides.
type Store interface {
	Registrations() RegistrationRepository
	Credentials() CredentialRepository
	CauseRequests() CauseRequestRepository
	Causes() CauseRepository
	LoginLogs() LoginLogRepository
	Ping(ctx context.Context) error
	Close() error
}
