package memory

import (
	"context"

	"github.com/ihdim5/healthrecord-api/internal/model"
)

// AuditRepo keeps the mutation trail alongside the collections it describes.
type AuditRepo struct {
	s *Store
}

func NewAuditRepository(s *Store) *AuditRepo {
	return &AuditRepo{s: s}
}

func (r *AuditRepo) Create(ctx context.Context, entry *model.AuditEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.audit = append(r.s.audit, clone(entry))
	return nil
}

func (r *AuditRepo) List(ctx context.Context) ([]*model.AuditEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*model.AuditEntry, 0, len(r.s.audit))
	for _, e := range r.s.audit {
		out = append(out, clone(e))
	}
	return out, nil
}
