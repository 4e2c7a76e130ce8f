package service

import (
	"context"
	"io"

	"impactecho-backend/internal/domain"
	"impactecho-backend/internal/session"
)

// Upload is one attachment as received from the client.
type Upload struct {
	Name    string
	Content io.Reader
}

type RegistrationInput struct {
	OrgName       string
	ContactPerson string
	ContactEmail  string
	Documents     []Upload
}

type CauseInput struct {
	Title          string
	Description    string
	GoalAmount     int64
	ImageReference string
}

// OnboardingService records registrations from prospective organizations.
type OnboardingService interface {
	SubmitRegistration(ctx context.Context, input RegistrationInput) error
}

// AdminService holds every operation gated on the administrator role.
type AdminService interface {
	ApproveRegistration(ctx context.Context, registrationID int32) (string, error)
	ApproveCauseRequest(ctx context.Context, requestID int32) (int32, error)
	CreateCauseDirect(ctx context.Context, input CauseInput) (*domain.Cause, error)
	ListRegistrations(ctx context.Context) ([]domain.Registration, error)
	ListCauseRequests(ctx context.Context) ([]domain.CauseRequest, error)
	ListLoginLogs(ctx context.Context) ([]domain.LoginLog, error)
	OpenDocument(ctx context.Context, ref string) (io.ReadCloser, error)
}

// CredentialService binds one set of credentials to an issued identifier.
type CredentialService interface {
	CheckIdentifier(ctx context.Context, uniqueID string) (*domain.IdentifierStatus, error)
	CreateCredentials(ctx context.Context, uniqueID, username, secret string) error
}

// AuthService verifies credentials and yields the session to establish.
type AuthService interface {
	Authenticate(ctx context.Context, username, secret string) (session.Context, error)
	AuthenticateAdmin(ctx context.Context, username, secret string) (session.Context, error)
}

// CauseService covers organization submissions and the public catalog.
type CauseService interface {
	SubmitCauseRequest(ctx context.Context, input CauseInput) (*domain.CauseRequest, error)
	ListMyCauseRequests(ctx context.Context) ([]domain.CauseRequest, error)
	ListCauses(ctx context.Context) ([]domain.Cause, error)
}

type EmailService interface {
	SendIdentifier(ctx context.Context, email, contactName, orgName, uniqueID string) error
}

// Recorder counts workflow events.
type Recorder interface {
	Record(event string)
}

type nopRecorder struct{}

func (nopRecorder) Record(string) {}

func recorderOrNop(r Recorder) Recorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}
