package memory

import (
	"context"

	"github.com/ihdim5/healthrecord-api/internal/model"
	"github.com/ihdim5/healthrecord-api/pkg/errors"
)

// PatientRepo implements repository.PatientRepository on top of the shared
// in-memory store.
type PatientRepo struct {
	s *Store
}

func NewPatientRepository(s *Store) *PatientRepo {
	return &PatientRepo{s: s}
}

// Create assigns a fresh identifier and an equal lookup token, initializes
// the three clinical collections to empty and appends the patient. The store
// performs no semantic validation; callers validate before this boundary.
func (r *PatientRepo) Create(ctx context.Context, patient *model.Patient) (*model.Patient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p := clone(patient)
	p.ID = r.s.nextPatientID()
	p.LookupToken = p.ID
	p.MedicalNotes = []model.MedicalNote{}
	p.Prescriptions = []model.Prescription{}
	p.LabOrders = []model.LabOrder{}

	r.s.patients = append(r.s.patients, p)
	return clone(p), nil
}

// Get returns a deep copy of the patient, or (nil, nil) when the id is
// absent. An unknown id is a normal outcome here, not a failure.
func (r *PatientRepo) Get(ctx context.Context, id string) (*model.Patient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if p := r.s.findPatient(id); p != nil {
		return clone(p), nil
	}
	return nil, nil
}

func (r *PatientRepo) List(ctx context.Context) ([]*model.Patient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*model.Patient, 0, len(r.s.patients))
	for _, p := range r.s.patients {
		out = append(out, clone(p))
	}
	return out, nil
}

// Update overlays the non-nil fields of req onto the stored record and
// returns the merged copy. ID and lookup token are immutable.
func (r *PatientRepo) Update(ctx context.Context, id string, req *model.UpdatePatientRequest) (*model.Patient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p := r.s.findPatient(id)
	if p == nil {
		return nil, errors.NotFound("patient", nil)
	}

	if req.FirstName != nil {
		p.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		p.LastName = *req.LastName
	}
	if req.Email != nil {
		p.Email = *req.Email
	}
	if req.Password != nil {
		p.Password = *req.Password
	}
	if req.DateOfBirth != nil {
		p.DateOfBirth = *req.DateOfBirth
	}
	if req.Gender != nil {
		p.Gender = *req.Gender
	}
	if req.Phone != nil {
		p.Phone = *req.Phone
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.BloodGroup != nil {
		p.BloodGroup = *req.BloodGroup
	}
	if req.MedicalHistory != nil {
		p.MedicalHistory = *req.MedicalHistory
	}
	if req.EmergencyContacts != nil {
		p.EmergencyContacts = append([]model.EmergencyContact{}, (*req.EmergencyContacts)...)
	}

	return clone(p), nil
}

// Delete removes the patient if present; deleting an absent id is a no-op.
func (r *PatientRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, p := range r.s.patients {
		if p.ID == id {
			r.s.patients = append(r.s.patients[:i], r.s.patients[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *PatientRepo) AddMedicalNote(ctx context.Context, patientID string, note *model.MedicalNote) (*model.Patient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p := r.s.findPatient(patientID)
	if p == nil {
		return nil, errors.NotFound("patient", nil)
	}

	n := *note
	n.ID = r.s.nextEntryID("N")
	n.PatientID = patientID
	p.MedicalNotes = append(p.MedicalNotes, n)
	return clone(p), nil
}

func (r *PatientRepo) AddPrescription(ctx context.Context, patientID string, rx *model.Prescription) (*model.Patient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p := r.s.findPatient(patientID)
	if p == nil {
		return nil, errors.NotFound("patient", nil)
	}

	x := *rx
	x.ID = r.s.nextEntryID("PR")
	x.PatientID = patientID
	p.Prescriptions = append(p.Prescriptions, x)
	return clone(p), nil
}

func (r *PatientRepo) AddLabOrder(ctx context.Context, patientID string, order *model.LabOrder) (*model.Patient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p := r.s.findPatient(patientID)
	if p == nil {
		return nil, errors.NotFound("patient", nil)
	}

	o := *order
	o.ID = r.s.nextEntryID("L")
	o.PatientID = patientID
	p.LabOrders = append(p.LabOrders, o)
	return clone(p), nil
}
