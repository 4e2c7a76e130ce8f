package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"impactecho-backend/internal/domain"
	"impactecho-backend/internal/logger"
	"impactecho-backend/internal/metrics"
	"impactecho-backend/internal/repository"
	"impactecho-backend/internal/security"
	"impactecho-backend/internal/session"
)

// errBadLogin is the single answer to every failed login.
var errBadLogin = fmt.Errorf("%w: invalid username or password", domain.ErrInvalidCredentials)

type AdminAccount struct {
	Username     string
	PasswordHash string
}

type authService struct {
	credRepo repository.CredentialRepository
	logRepo  repository.LoginLogRepository
	admin    AdminAccount
	recorder Recorder
	now      func() time.Time
}

func NewAuthService(credRepo repository.CredentialRepository, logRepo repository.LoginLogRepository, admin AdminAccount, recorder Recorder) AuthService {
	return &authService{
		credRepo: credRepo,
		logRepo:  logRepo,
		admin:    admin,
		recorder: recorderOrNop(recorder),
		now:      time.Now,
	}
}

// Authenticate checks the secret against every credential carrying the
// username. An unknown username still costs one hash comparison.
func (s *authService) Authenticate(ctx context.Context, username, secret string) (session.Context, error) {
	const method = "AuthService.Authenticate"
	logger.EnterMethod(method)

	username = strings.TrimSpace(username)
	if username == "" || secret == "" {
		security.BurnVerification(secret)
		return s.rejected(method)
	}

	creds, err := s.credRepo.GetByUsername(ctx, username)
	if err != nil {
		return session.Anonymous, fail(method, err)
	}
	if len(creds) == 0 {
		security.BurnVerification(secret)
		return s.rejected(method)
	}

	for _, cred := range creds {
		if security.VerifySecret(cred.SecretHash, secret) {
			sc := session.Organization(cred.UniqueID, cred.OrgName, cred.Username)
			s.logLogin(ctx, domain.LoginUserTypeNGO, cred.UniqueID)
			s.recorder.Record(metrics.EventLoginSucceeded)
			logger.InfoContext(ctx, "Organization logged in", "unique_id", cred.UniqueID)
			logger.ExitMethod(method)
			return sc, nil
		}
	}
	return s.rejected(method)
}

func (s *authService) AuthenticateAdmin(ctx context.Context, username, secret string) (session.Context, error) {
	const method = "AuthService.AuthenticateAdmin"
	logger.EnterMethod(method)

	nameOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(s.admin.Username)) == 1
	secretOK := security.VerifySecret(s.admin.PasswordHash, secret)
	if !nameOK || !secretOK || s.admin.Username == "" {
		return s.rejected(method)
	}

	s.logLogin(ctx, domain.LoginUserTypeAdmin, s.admin.Username)
	s.recorder.Record(metrics.EventLoginSucceeded)
	logger.InfoContext(ctx, "Administrator logged in")
	logger.ExitMethod(method)
	return session.Admin(s.admin.Username), nil
}

func (s *authService) rejected(method string) (session.Context, error) {
	s.recorder.Record(metrics.EventLoginFailed)
	return session.Anonymous, fail(method, errBadLogin)
}

// logLogin appends to the login log. A failed append does not fail the login.
func (s *authService) logLogin(ctx context.Context, userType domain.LoginUserType, identifier string) {
	entry := &domain.LoginLog{
		Timestamp:  s.now().UTC(),
		UserType:   userType,
		Identifier: identifier,
	}
	if err := s.logRepo.Append(ctx, entry); err != nil {
		logger.WarnContext(ctx, "Failed to record login", "user_type", userType, "error", err)
	}
}
