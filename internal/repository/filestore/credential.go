package filestore

import (
	"context"
	"fmt"

	"impactecho-backend/internal/domain"
)

type credentialRepository struct {
	l *ledger[domain.Credential]
}

func (r *credentialRepository) Create(ctx context.Context, cred *domain.Credential) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()

	creds, err := r.l.load()
	if err != nil {
		return err
	}
	for _, existing := range creds {
		if existing.UniqueID == cred.UniqueID {
			return fmt.Errorf("%w: credentials already exist for %s", domain.ErrConflict, cred.UniqueID)
		}
	}
	return r.l.save(append(creds, *cred))
}

func (r *credentialRepository) GetByUniqueID(ctx context.Context, uniqueID string) (*domain.Credential, error) {
	creds, err := r.l.read()
	if err != nil {
		return nil, err
	}
	for i := range creds {
		if creds[i].UniqueID == uniqueID {
			return &creds[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no credentials for %s", domain.ErrNotFound, uniqueID)
}

func (r *credentialRepository) GetByUsername(ctx context.Context, username string) ([]domain.Credential, error) {
	creds, err := r.l.read()
	if err != nil {
		return nil, err
	}
	var matches []domain.Credential
	for _, c := range creds {
		if c.Username == username {
			matches = append(matches, c)
		}
	}
	return matches, nil
}
