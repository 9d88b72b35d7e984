package memory

import (
	"context"

	"github.com/ihdim5/healthrecord-api/internal/model"
	"github.com/ihdim5/healthrecord-api/pkg/errors"
)

// DoctorRepo implements repository.DoctorRepository on top of the shared
// in-memory store.
type DoctorRepo struct {
	s *Store
}

func NewDoctorRepository(s *Store) *DoctorRepo {
	return &DoctorRepo{s: s}
}

// Create assigns a fresh identifier, forces the verification status to
// Pending and appends the doctor.
func (r *DoctorRepo) Create(ctx context.Context, doctor *model.Doctor) (*model.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d := clone(doctor)
	d.ID = r.s.nextDoctorID()
	d.VerificationStatus = model.VerificationPending

	r.s.doctors = append(r.s.doctors, d)
	return clone(d), nil
}

// Get returns a deep copy of the doctor, or (nil, nil) when the id is absent.
func (r *DoctorRepo) Get(ctx context.Context, id string) (*model.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if d := r.s.findDoctor(id); d != nil {
		return clone(d), nil
	}
	return nil, nil
}

func (r *DoctorRepo) List(ctx context.Context) ([]*model.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*model.Doctor, 0, len(r.s.doctors))
	for _, d := range r.s.doctors {
		out = append(out, clone(d))
	}
	return out, nil
}

// Update overlays the non-nil fields of req onto the stored record and
// returns the merged copy. The verification status is not touched here; it
// only moves through UpdateStatus.
func (r *DoctorRepo) Update(ctx context.Context, id string, req *model.UpdateDoctorRequest) (*model.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d := r.s.findDoctor(id)
	if d == nil {
		return nil, errors.NotFound("doctor", nil)
	}

	if req.FullName != nil {
		d.FullName = *req.FullName
	}
	if req.Email != nil {
		d.Email = *req.Email
	}
	if req.Password != nil {
		d.Password = *req.Password
	}
	if req.Phone != nil {
		d.Phone = *req.Phone
	}
	if req.Specialization != nil {
		d.Specialization = *req.Specialization
	}
	if req.ExperienceYears != nil {
		d.ExperienceYears = *req.ExperienceYears
	}
	if req.MedicalRegNumber != nil {
		d.MedicalRegNumber = *req.MedicalRegNumber
	}
	if req.RegistrationDocURL != nil {
		d.RegistrationDocURL = *req.RegistrationDocURL
	}

	return clone(d), nil
}

// Delete removes the doctor if present; deleting an absent id is a no-op.
func (r *DoctorRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, d := range r.s.doctors {
		if d.ID == id {
			r.s.doctors = append(r.s.doctors[:i], r.s.doctors[i+1:]...)
			return nil
		}
	}
	return nil
}

// UpdateStatus sets the doctor's verification status in place and returns the
// updated copy.
func (r *DoctorRepo) UpdateStatus(ctx context.Context, id string, status model.VerificationStatus) (*model.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d := r.s.findDoctor(id)
	if d == nil {
		return nil, errors.NotFound("doctor", nil)
	}

	d.VerificationStatus = status
	return clone(d), nil
}
