package filestore

import (
	"context"

	"impactecho-backend/internal/domain"
)

type loginLogRepository struct {
	l *ledger[domain.LoginLog]
}

func (r *loginLogRepository) Append(ctx context.Context, entry *domain.LoginLog) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()

	entries, err := r.l.load()
	if err != nil {
		return err
	}
	return r.l.save(append(entries, *entry))
}

func (r *loginLogRepository) List(ctx context.Context) ([]domain.LoginLog, error) {
	return r.l.read()
}
