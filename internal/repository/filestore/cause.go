package filestore

import (
	"context"
	"fmt"
	"time"

	"impactecho-backend/internal/domain"
)

type causeRequestRepository struct {
	l      *ledger[domain.CauseRequest]
	causes *ledger[domain.Cause]
}

func (r *causeRequestRepository) Create(ctx context.Context, req *domain.CauseRequest) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()

	reqs, err := r.l.load()
	if err != nil {
		return err
	}
	var maxID int32
	for _, existing := range reqs {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	req.ID = maxID + 1
	req.Status = domain.CauseRequestStatusPending
	req.ApprovedAt = nil
	return r.l.save(append(reqs, *req))
}

func (r *causeRequestRepository) GetByID(ctx context.Context, id int32) (*domain.CauseRequest, error) {
	reqs, err := r.l.read()
	if err != nil {
		return nil, err
	}
	for i := range reqs {
		if reqs[i].ID == id {
			return &reqs[i], nil
		}
	}
	return nil, fmt.Errorf("%w: cause request %d", domain.ErrNotFound, id)
}

func (r *causeRequestRepository) List(ctx context.Context) ([]domain.CauseRequest, error) {
	return r.l.read()
}

func (r *causeRequestRepository) ListByOrg(ctx context.Context, orgIdentifier string) ([]domain.CauseRequest, error) {
	reqs, err := r.l.read()
	if err != nil {
		return nil, err
	}
	mine := []domain.CauseRequest{}
	for _, req := range reqs {
		if req.OrgIdentifier == orgIdentifier {
			mine = append(mine, req)
		}
	}
	return mine, nil
}

// ApproveAndPublish holds the request ledger then the catalog. The catalog is
// written first; if the request ledger then fails to save, the catalog is put
// back to its previous content.
func (r *causeRequestRepository) ApproveAndPublish(ctx context.Context, id int32, approvedAt time.Time) (*domain.CauseRequest, *domain.Cause, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	r.causes.mu.Lock()
	defer r.causes.mu.Unlock()

	reqs, err := r.l.load()
	if err != nil {
		return nil, nil, err
	}
	idx := -1
	for i := range reqs {
		if reqs[i].ID == id && reqs[i].Status == domain.CauseRequestStatusPending {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil, fmt.Errorf("%w: no pending cause request %d", domain.ErrNotFound, id)
	}

	causes, err := r.causes.load()
	if err != nil {
		return nil, nil, err
	}
	previous := make([]domain.Cause, len(causes))
	copy(previous, causes)

	req := &reqs[idx]
	req.Status = domain.CauseRequestStatusApproved
	req.ApprovedAt = &approvedAt

	cause := domain.CauseFromRequest(req)
	cause.ID = nextCauseID(causes)

	if err := r.causes.save(append(causes, *cause)); err != nil {
		return nil, nil, err
	}
	if err := r.l.save(reqs); err != nil {
		if rbErr := r.causes.save(previous); rbErr != nil {
			return nil, nil, fmt.Errorf("%w: catalog rollback failed: %v (after %v)", domain.ErrPersistence, rbErr, err)
		}
		return nil, nil, err
	}
	return req, cause, nil
}

type causeRepository struct {
	l *ledger[domain.Cause]
}

func (r *causeRepository) Create(ctx context.Context, cause *domain.Cause) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()

	causes, err := r.l.load()
	if err != nil {
		return err
	}
	cause.ID = nextCauseID(causes)
	return r.l.save(append(causes, *cause))
}

func (r *causeRepository) List(ctx context.Context) ([]domain.Cause, error) {
	return r.l.read()
}

func nextCauseID(causes []domain.Cause) int32 {
	var maxID int32
	for _, c := range causes {
		if c.ID > maxID {
			maxID = c.ID
		}
	}
	return maxID + 1
}
