package memory

import (
	"context"

	"github.com/ihdim5/healthrecord-api/internal/model"
)

// AccountRepo resolves accounts across the union of patients, doctors and the
// two singletons. Every result is a tagged union with Kind set here, at
// construction; nothing downstream inspects the account shape.
type AccountRepo struct {
	s *Store
}

func NewAccountRepository(s *Store) *AccountRepo {
	return &AccountRepo{s: s}
}

// FindByEmail scans all four kinds for an email match. Email is unique
// across the union, so at most one account resolves. Returns (nil, nil) when
// nothing matches.
func (r *AccountRepo) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.patients {
		if p.Email == email {
			return &model.Account{Kind: model.KindPatient, Patient: clone(p)}, nil
		}
	}
	for _, d := range r.s.doctors {
		if d.Email == email {
			return &model.Account{Kind: model.KindDoctor, Doctor: clone(d)}, nil
		}
	}
	if r.s.admin.Email == email {
		return &model.Account{Kind: model.KindAdmin, Admin: clone(r.s.admin)}, nil
	}
	if r.s.gov.Email == email {
		return &model.Account{Kind: model.KindGovernment, Government: clone(r.s.gov)}, nil
	}
	return nil, nil
}

// FindByID resolves any account kind by identifier, (nil, nil) when absent.
func (r *AccountRepo) FindByID(ctx context.Context, id string) (*model.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if p := r.s.findPatient(id); p != nil {
		return &model.Account{Kind: model.KindPatient, Patient: clone(p)}, nil
	}
	if d := r.s.findDoctor(id); d != nil {
		return &model.Account{Kind: model.KindDoctor, Doctor: clone(d)}, nil
	}
	if r.s.admin.ID == id {
		return &model.Account{Kind: model.KindAdmin, Admin: clone(r.s.admin)}, nil
	}
	if r.s.gov.ID == id {
		return &model.Account{Kind: model.KindGovernment, Government: clone(r.s.gov)}, nil
	}
	return nil, nil
}
