package service

import (
	"context"
	"strings"
	"time"

	"impactecho-backend/internal/domain"
	"impactecho-backend/internal/logger"
	"impactecho-backend/internal/metrics"
	"impactecho-backend/internal/repository"
	"impactecho-backend/internal/storage"
)

type onboardingService struct {
	regRepo  repository.RegistrationRepository
	docs     storage.DocumentStore
	recorder Recorder
	now      func() time.Time
}

func NewOnboardingService(regRepo repository.RegistrationRepository, docs storage.DocumentStore, recorder Recorder) OnboardingService {
	return &onboardingService{
		regRepo:  regRepo,
		docs:     docs,
		recorder: recorderOrNop(recorder),
		now:      time.Now,
	}
}

// SubmitRegistration validates the identifying fields before anything is
// written. Attachments the store declines are left out of the record.
func (s *onboardingService) SubmitRegistration(ctx context.Context, input RegistrationInput) error {
	const method = "OnboardingService.SubmitRegistration"
	logger.EnterMethod(method, "org_name", input.OrgName, "documents", len(input.Documents))

	orgName := plainText(input.OrgName)
	contactPerson := plainText(input.ContactPerson)
	contactEmail := strings.TrimSpace(input.ContactEmail)
	if err := required(
		field{"org_name", orgName},
		field{"contact_person", contactPerson},
		field{"contact_email", contactEmail},
	); err != nil {
		return fail(method, err)
	}

	refs := []string{}
	for _, doc := range input.Documents {
		if doc.Name == "" || doc.Content == nil {
			continue
		}
		ref, ok, err := s.docs.Save(ctx, doc.Name, doc.Content)
		if err != nil {
			s.discard(ctx, refs)
			return fail(method, err)
		}
		if ok {
			refs = append(refs, ref)
		}
	}

	reg := &domain.Registration{
		OrgName:            orgName,
		ContactEmail:       contactEmail,
		ContactPerson:      contactPerson,
		SubmittedDocuments: refs,
		SubmittedAt:        s.now().UTC(),
	}
	if err := s.regRepo.Create(ctx, reg); err != nil {
		s.discard(ctx, refs)
		return fail(method, err)
	}

	s.recorder.Record(metrics.EventRegistrationSubmitted)
	logger.InfoContext(ctx, "Registration submitted", "registration_id", reg.ID, "documents", len(refs))
	logger.ExitMethod(method, "registration_id", reg.ID)
	return nil
}

// discard removes documents stored for a registration that was not recorded.
func (s *onboardingService) discard(ctx context.Context, refs []string) {
	for _, ref := range refs {
		if err := s.docs.Delete(ctx, ref); err != nil {
			logger.WarnContext(ctx, "Failed to remove orphaned document", "ref", ref, "error", err)
		}
	}
}
