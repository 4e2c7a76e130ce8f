package service_test

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"impactecho-backend/internal/domain"
	"impactecho-backend/internal/repository"
)

const mockAny = mock.Anything

// MockRegistrationRepo
type MockRegistrationRepo struct {
	mock.Mock
}

func (m *MockRegistrationRepo) Create(ctx context.Context, reg *domain.Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}
func (m *MockRegistrationRepo) GetByID(ctx context.Context, id int32) (*domain.Registration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Registration), args.Error(1)
}
func (m *MockRegistrationRepo) GetApprovedByUniqueID(ctx context.Context, uniqueID string) (*domain.Registration, error) {
	args := m.Called(ctx, uniqueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Registration), args.Error(1)
}
func (m *MockRegistrationRepo) List(ctx context.Context) ([]domain.Registration, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Registration), args.Error(1)
}
func (m *MockRegistrationRepo) Approve(ctx context.Context, id int32, generate repository.IdentifierGenerator, approvedAt time.Time) (*domain.Registration, error) {
	args := m.Called(ctx, id, mock.Anything, mock.Anything)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Registration), args.Error(1)
}

// MockCredentialRepo
type MockCredentialRepo struct {
	mock.Mock
}

func (m *MockCredentialRepo) Create(ctx context.Context, cred *domain.Credential) error {
	args := m.Called(ctx, cred)
	return args.Error(0)
}
func (m *MockCredentialRepo) GetByUniqueID(ctx context.Context, uniqueID string) (*domain.Credential, error) {
	args := m.Called(ctx, uniqueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}
func (m *MockCredentialRepo) GetByUsername(ctx context.Context, username string) ([]domain.Credential, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Credential), args.Error(1)
}

// MockCauseRequestRepo
type MockCauseRequestRepo struct {
	mock.Mock
}

func (m *MockCauseRequestRepo) Create(ctx context.Context, req *domain.CauseRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockCauseRequestRepo) GetByID(ctx context.Context, id int32) (*domain.CauseRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CauseRequest), args.Error(1)
}
func (m *MockCauseRequestRepo) List(ctx context.Context) ([]domain.CauseRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CauseRequest), args.Error(1)
}
func (m *MockCauseRequestRepo) ListByOrg(ctx context.Context, orgIdentifier string) ([]domain.CauseRequest, error) {
	args := m.Called(ctx, orgIdentifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CauseRequest), args.Error(1)
}
func (m *MockCauseRequestRepo) ApproveAndPublish(ctx context.Context, id int32, approvedAt time.Time) (*domain.CauseRequest, *domain.Cause, error) {
	args := m.Called(ctx, id, mock.Anything)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.CauseRequest), args.Get(1).(*domain.Cause), args.Error(2)
}

// MockCauseRepo
type MockCauseRepo struct {
	mock.Mock
}

func (m *MockCauseRepo) Create(ctx context.Context, cause *domain.Cause) error {
	args := m.Called(ctx, cause)
	return args.Error(0)
}
func (m *MockCauseRepo) List(ctx context.Context) ([]domain.Cause, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Cause), args.Error(1)
}

// MockLoginLogRepo
type MockLoginLogRepo struct {
	mock.Mock
}

func (m *MockLoginLogRepo) Append(ctx context.Context, entry *domain.LoginLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockLoginLogRepo) List(ctx context.Context) ([]domain.LoginLog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoginLog), args.Error(1)
}

// MockStore hands out the mock repositories.
type MockStore struct {
	Regs     *MockRegistrationRepo
	Creds    *MockCredentialRepo
	Requests *MockCauseRequestRepo
	Catalog  *MockCauseRepo
	Logs     *MockLoginLogRepo
}

func newMockStore() *MockStore {
	return &MockStore{
		Regs:     new(MockRegistrationRepo),
		Creds:    new(MockCredentialRepo),
		Requests: new(MockCauseRequestRepo),
		Catalog:  new(MockCauseRepo),
		Logs:     new(MockLoginLogRepo),
	}
}

func (s *MockStore) Registrations() repository.RegistrationRepository { return s.Regs }
func (s *MockStore) Credentials() repository.CredentialRepository     { return s.Creds }
func (s *MockStore) CauseRequests() repository.CauseRequestRepository { return s.Requests }
func (s *MockStore) Causes() repository.CauseRepository               { return s.Catalog }
func (s *MockStore) LoginLogs() repository.LoginLogRepository         { return s.Logs }
func (s *MockStore) Ping(ctx context.Context) error                   { return nil }
func (s *MockStore) Close() error                                     { return nil }

// MockDocumentStore
type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) Save(ctx context.Context, name string, content io.Reader) (string, bool, error) {
	args := m.Called(ctx, name, content)
	return args.String(0), args.Bool(1), args.Error(2)
}
func (m *MockDocumentStore) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockDocumentStore) Delete(ctx context.Context, ref string) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendIdentifier(ctx context.Context, email, contactName, orgName, uniqueID string) error {
	args := m.Called(ctx, email, contactName, orgName, uniqueID)
	return args.Error(0)
}

// countingRecorder tallies recorded events.
type countingRecorder struct {
	events map[string]int
}

func newRecorder() *countingRecorder { return &countingRecorder{events: map[string]int{}} }

func (r *countingRecorder) Record(event string) { r.events[event]++ }
