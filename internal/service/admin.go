package service

import (
	"context"
	"io"
	"strings"
	"time"

	"impactecho-backend/internal/domain"
	"impactecho-backend/internal/logger"
	"impactecho-backend/internal/metrics"
	"impactecho-backend/internal/repository"
	"impactecho-backend/internal/session"
	"impactecho-backend/internal/storage"
)

type adminService struct {
	regRepo   repository.RegistrationRepository
	reqRepo   repository.CauseRequestRepository
	causeRepo repository.CauseRepository
	logRepo   repository.LoginLogRepository
	docs      storage.DocumentStore
	emailSvc  EmailService
	generate  repository.IdentifierGenerator
	recorder  Recorder
	now       func() time.Time
}

func NewAdminService(
	store repository.Store,
	docs storage.DocumentStore,
	emailSvc EmailService,
	generate repository.IdentifierGenerator,
	recorder Recorder,
) AdminService {
	return &adminService{
		regRepo:   store.Registrations(),
		reqRepo:   store.CauseRequests(),
		causeRepo: store.Causes(),
		logRepo:   store.LoginLogs(),
		docs:      docs,
		emailSvc:  emailSvc,
		generate:  generate,
		recorder:  recorderOrNop(recorder),
		now:       time.Now,
	}
}

func (s *adminService) ApproveRegistration(ctx context.Context, registrationID int32) (string, error) {
	const method = "AdminService.ApproveRegistration"
	logger.EnterMethod(method, "registration_id", registrationID)

	if err := requireAdmin(session.FromContext(ctx)); err != nil {
		return "", fail(method, err)
	}

	reg, err := s.regRepo.Approve(ctx, registrationID, s.generate, s.now().UTC())
	if err != nil {
		return "", fail(method, err, "registration_id", registrationID)
	}
	uniqueID := *reg.UniqueID
	s.recorder.Record(metrics.EventRegistrationApproved)
	logger.InfoContext(ctx, "Registration approved", "registration_id", reg.ID, "unique_id", uniqueID)

	// Delivery is best effort; the identifier is also returned to the admin.
	if err := s.emailSvc.SendIdentifier(ctx, reg.ContactEmail, reg.ContactPerson, reg.OrgName, uniqueID); err != nil {
		s.recorder.Record(metrics.EventEmailFailed)
		logger.WarnContext(ctx, "Failed to deliver identifier", "registration_id", reg.ID, "error", err)
	}

	logger.ExitMethod(method, "registration_id", reg.ID)
	return uniqueID, nil
}

func (s *adminService) ApproveCauseRequest(ctx context.Context, requestID int32) (int32, error) {
	const method = "AdminService.ApproveCauseRequest"
	logger.EnterMethod(method, "request_id", requestID)

	if err := requireAdmin(session.FromContext(ctx)); err != nil {
		return 0, fail(method, err)
	}

	req, cause, err := s.reqRepo.ApproveAndPublish(ctx, requestID, s.now().UTC())
	if err != nil {
		return 0, fail(method, err, "request_id", requestID)
	}

	s.recorder.Record(metrics.EventCausePublished)
	logger.InfoContext(ctx, "Cause request approved", "request_id", req.ID, "cause_id", cause.ID, "org", req.OrgIdentifier)
	logger.ExitMethod(method, "cause_id", cause.ID)
	return cause.ID, nil
}

func (s *adminService) CreateCauseDirect(ctx context.Context, input CauseInput) (*domain.Cause, error) {
	const method = "AdminService.CreateCauseDirect"
	logger.EnterMethod(method)

	if err := requireAdmin(session.FromContext(ctx)); err != nil {
		return nil, fail(method, err)
	}
	input, err := cleanCauseInput(input)
	if err != nil {
		return nil, fail(method, err)
	}

	cause := &domain.Cause{
		Title:          input.Title,
		Description:    input.Description,
		GoalAmount:     input.GoalAmount,
		RaisedAmount:   0,
		ImageReference: input.ImageReference,
	}
	if err := s.causeRepo.Create(ctx, cause); err != nil {
		return nil, fail(method, err)
	}

	s.recorder.Record(metrics.EventCausePublished)
	logger.ExitMethod(method, "cause_id", cause.ID)
	return cause, nil
}

func (s *adminService) ListRegistrations(ctx context.Context) ([]domain.Registration, error) {
	if err := requireAdmin(session.FromContext(ctx)); err != nil {
		return nil, fail("AdminService.ListRegistrations", err)
	}
	return s.regRepo.List(ctx)
}

func (s *adminService) ListCauseRequests(ctx context.Context) ([]domain.CauseRequest, error) {
	if err := requireAdmin(session.FromContext(ctx)); err != nil {
		return nil, fail("AdminService.ListCauseRequests", err)
	}
	return s.reqRepo.List(ctx)
}

func (s *adminService) ListLoginLogs(ctx context.Context) ([]domain.LoginLog, error) {
	if err := requireAdmin(session.FromContext(ctx)); err != nil {
		return nil, fail("AdminService.ListLoginLogs", err)
	}
	return s.logRepo.List(ctx)
}

func (s *adminService) OpenDocument(ctx context.Context, ref string) (io.ReadCloser, error) {
	if err := requireAdmin(session.FromContext(ctx)); err != nil {
		return nil, fail("AdminService.OpenDocument", err)
	}
	return s.docs.Open(ctx, ref)
}

// cleanCauseInput strips markup and checks every field is present and the
// goal is positive.
func cleanCauseInput(in CauseInput) (CauseInput, error) {
	in.Title = plainText(in.Title)
	in.Description = plainText(in.Description)
	in.ImageReference = strings.TrimSpace(in.ImageReference)
	if err := required(
		field{"title", in.Title},
		field{"description", in.Description},
		field{"image_reference", in.ImageReference},
	); err != nil {
		return in, err
	}
	if in.GoalAmount <= 0 {
		return in, validation("goal_amount must be positive")
	}
	return in, nil
}
