package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"impactecho-backend/internal/domain"
	"impactecho-backend/internal/logger"
	"impactecho-backend/internal/metrics"
	"impactecho-backend/internal/repository"
	"impactecho-backend/internal/security"
)

type credentialService struct {
	regRepo  repository.RegistrationRepository
	credRepo repository.CredentialRepository
	recorder Recorder
	now      func() time.Time
}

func NewCredentialService(regRepo repository.RegistrationRepository, credRepo repository.CredentialRepository, recorder Recorder) CredentialService {
	return &credentialService{
		regRepo:  regRepo,
		credRepo: credRepo,
		recorder: recorderOrNop(recorder),
		now:      time.Now,
	}
}

// CheckIdentifier looks at credentials first so an identifier that already
// has them is never reported as available.
func (s *credentialService) CheckIdentifier(ctx context.Context, uniqueID string) (*domain.IdentifierStatus, error) {
	const method = "CredentialService.CheckIdentifier"
	logger.EnterMethod(method, "unique_id", uniqueID)

	uniqueID = strings.TrimSpace(uniqueID)
	if uniqueID == "" {
		return nil, fail(method, validation("unique_id is required"))
	}

	_, err := s.credRepo.GetByUniqueID(ctx, uniqueID)
	switch {
	case err == nil:
		logger.ExitMethod(method, "has_credentials", true)
		return &domain.IdentifierStatus{HasCredentials: true}, nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fail(method, err)
	}

	reg, err := s.regRepo.GetApprovedByUniqueID(ctx, uniqueID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fail(method, fmt.Errorf("%w: invalid unique ID", domain.ErrNotFound))
		}
		return nil, fail(method, err)
	}

	logger.ExitMethod(method, "valid_id", true)
	return &domain.IdentifierStatus{ValidID: true, OrgName: reg.OrgName}, nil
}

// CreateCredentials is not idempotent: the second call for an identifier is a
// conflict even with identical input.
func (s *credentialService) CreateCredentials(ctx context.Context, uniqueID, username, secret string) error {
	const method = "CredentialService.CreateCredentials"
	logger.EnterMethod(method, "unique_id", uniqueID)

	uniqueID = strings.TrimSpace(uniqueID)
	username = strings.TrimSpace(username)
	if err := required(
		field{"unique_id", uniqueID},
		field{"username", username},
		field{"secret", secret},
	); err != nil {
		return fail(method, err)
	}

	// Existing credentials win over every other check.
	if _, err := s.credRepo.GetByUniqueID(ctx, uniqueID); err == nil {
		return fail(method, fmt.Errorf("%w: credentials already exist for this ID", domain.ErrConflict))
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fail(method, err)
	}

	reg, err := s.regRepo.GetApprovedByUniqueID(ctx, uniqueID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fail(method, validation("unique ID is not an approved registration"))
		}
		return fail(method, err)
	}

	hash, err := security.HashSecret(secret)
	if err != nil {
		return fail(method, fmt.Errorf("%w: hash secret: %v", domain.ErrPersistence, err))
	}

	cred := &domain.Credential{
		UniqueID:   uniqueID,
		Username:   username,
		SecretHash: hash,
		OrgName:    reg.OrgName,
		CreatedAt:  s.now().UTC(),
	}
	// The repository repeats the existence check atomically with the insert.
	if err := s.credRepo.Create(ctx, cred); err != nil {
		return fail(method, err)
	}

	s.recorder.Record(metrics.EventCredentialsCreated)
	logger.InfoContext(ctx, "Credentials created", "unique_id", uniqueID)
	logger.ExitMethod(method)
	return nil
}
