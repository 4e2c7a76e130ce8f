package filestore

import (
	"context"
	"fmt"
	"time"

	"impactecho-backend/internal/domain"
	"impactecho-backend/internal/repository"
)

type registrationRepository struct {
	l *ledger[domain.Registration]
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()

	regs, err := r.l.load()
	if err != nil {
		return err
	}
	var maxID int32
	for _, existing := range regs {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	reg.ID = maxID + 1
	reg.Status = domain.RegistrationStatusPending
	reg.UniqueID = nil
	reg.ApprovedAt = nil
	if reg.SubmittedDocuments == nil {
		reg.SubmittedDocuments = []string{}
	}
	return r.l.save(append(regs, *reg))
}

func (r *registrationRepository) GetByID(ctx context.Context, id int32) (*domain.Registration, error) {
	regs, err := r.l.read()
	if err != nil {
		return nil, err
	}
	for i := range regs {
		if regs[i].ID == id {
			return &regs[i], nil
		}
	}
	return nil, fmt.Errorf("%w: registration %d", domain.ErrNotFound, id)
}

func (r *registrationRepository) GetApprovedByUniqueID(ctx context.Context, uniqueID string) (*domain.Registration, error) {
	regs, err := r.l.read()
	if err != nil {
		return nil, err
	}
	for i := range regs {
		if regs[i].IsApproved() && regs[i].UniqueID != nil && *regs[i].UniqueID == uniqueID {
			return &regs[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no approved registration for %s", domain.ErrNotFound, uniqueID)
}

func (r *registrationRepository) List(ctx context.Context) ([]domain.Registration, error) {
	return r.l.read()
}

func (r *registrationRepository) Approve(ctx context.Context, id int32, generate repository.IdentifierGenerator, approvedAt time.Time) (*domain.Registration, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()

	regs, err := r.l.load()
	if err != nil {
		return nil, err
	}

	idx := -1
	issued := make(map[string]struct{}, len(regs))
	for i := range regs {
		if regs[i].UniqueID != nil {
			issued[*regs[i].UniqueID] = struct{}{}
		}
		if regs[i].ID == id && regs[i].Status == domain.RegistrationStatusPending {
			idx = i
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: no pending registration %d", domain.ErrNotFound, id)
	}

	uniqueID, err := freshIdentifier(generate, issued)
	if err != nil {
		return nil, err
	}

	reg := &regs[idx]
	reg.Status = domain.RegistrationStatusApproved
	reg.UniqueID = &uniqueID
	reg.ApprovedAt = &approvedAt
	if err := r.l.save(regs); err != nil {
		return nil, err
	}
	return reg, nil
}

// freshIdentifier draws candidates until one is not in issued.
func freshIdentifier(generate repository.IdentifierGenerator, issued map[string]struct{}) (string, error) {
	for attempt := 0; attempt < repository.MaxIdentifierAttempts; attempt++ {
		candidate, err := generate()
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
		if _, taken := issued[candidate]; !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: no free identifier after %d attempts", domain.ErrPersistence, repository.MaxIdentifierAttempts)
}
