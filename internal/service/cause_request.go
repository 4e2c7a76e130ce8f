package service

import (
	"context"
	"time"

	"impactecho-backend/internal/domain"
	"impactecho-backend/internal/logger"
	"impactecho-backend/internal/metrics"
	"impactecho-backend/internal/repository"
	"impactecho-backend/internal/session"
)

type causeService struct {
	reqRepo   repository.CauseRequestRepository
	causeRepo repository.CauseRepository
	recorder  Recorder
	now       func() time.Time
}

func NewCauseService(reqRepo repository.CauseRequestRepository, causeRepo repository.CauseRepository, recorder Recorder) CauseService {
	return &causeService{
		reqRepo:   reqRepo,
		causeRepo: causeRepo,
		recorder:  recorderOrNop(recorder),
		now:       time.Now,
	}
}

// SubmitCauseRequest takes the owning organization from the session only.
func (s *causeService) SubmitCauseRequest(ctx context.Context, input CauseInput) (*domain.CauseRequest, error) {
	const method = "CauseService.SubmitCauseRequest"
	logger.EnterMethod(method)

	sc := session.FromContext(ctx)
	if err := requireOrganization(sc); err != nil {
		return nil, fail(method, err)
	}
	input, err := cleanCauseInput(input)
	if err != nil {
		return nil, fail(method, err)
	}

	req := &domain.CauseRequest{
		OrgIdentifier:  sc.UniqueID,
		OrgName:        sc.OrgName,
		Title:          input.Title,
		Description:    input.Description,
		GoalAmount:     input.GoalAmount,
		ImageReference: input.ImageReference,
		SubmittedAt:    s.now().UTC(),
	}
	if err := s.reqRepo.Create(ctx, req); err != nil {
		return nil, fail(method, err)
	}

	s.recorder.Record(metrics.EventCauseRequestSubmitted)
	logger.InfoContext(ctx, "Cause request submitted", "request_id", req.ID, "org", sc.UniqueID)
	logger.ExitMethod(method, "request_id", req.ID)
	return req, nil
}

func (s *causeService) ListMyCauseRequests(ctx context.Context) ([]domain.CauseRequest, error) {
	sc := session.FromContext(ctx)
	if err := requireOrganization(sc); err != nil {
		return nil, fail("CauseService.ListMyCauseRequests", err)
	}
	return s.reqRepo.ListByOrg(ctx, sc.UniqueID)
}

func (s *causeService) ListCauses(ctx context.Context) ([]domain.Cause, error) {
	return s.causeRepo.List(ctx)
}
