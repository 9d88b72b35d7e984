package repository

import (
	"context"

	"github.com/ihdim5/healthrecord-api/internal/model"
)

// All repository interfaces in one file
type (
	// PatientRepository owns the patient collection. Reads return deep,
	// independent copies; a caller mutating a returned value never touches
	// store state. Get returns (nil, nil) for an absent id.
	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) (*model.Patient, error)
		Get(ctx context.Context, id string) (*model.Patient, error)
		List(ctx context.Context) ([]*model.Patient, error)
		Update(ctx context.Context, id string, req *model.UpdatePatientRequest) (*model.Patient, error)
		Delete(ctx context.Context, id string) error
		AddMedicalNote(ctx context.Context, patientID string, note *model.MedicalNote) (*model.Patient, error)
		AddPrescription(ctx context.Context, patientID string, rx *model.Prescription) (*model.Patient, error)
		AddLabOrder(ctx context.Context, patientID string, order *model.LabOrder) (*model.Patient, error)
	}

	// DoctorRepository owns the doctor collection.
	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) (*model.Doctor, error)
		Get(ctx context.Context, id string) (*model.Doctor, error)
		List(ctx context.Context) ([]*model.Doctor, error)
		Update(ctx context.Context, id string, req *model.UpdateDoctorRequest) (*model.Doctor, error)
		Delete(ctx context.Context, id string) error
		UpdateStatus(ctx context.Context, id string, status model.VerificationStatus) (*model.Doctor, error)
	}

	// AccountRepository resolves accounts across the union of all four
	// kinds. FindByEmail returns (nil, nil) when no account matches.
	AccountRepository interface {
		FindByEmail(ctx context.Context, email string) (*model.Account, error)
		FindByID(ctx context.Context, id string) (*model.Account, error)
	}

	// AuditRepository stores the mutation audit trail.
	AuditRepository interface {
		Create(ctx context.Context, entry *model.AuditEntry) error
		List(ctx context.Context) ([]*model.AuditEntry, error)
	}
)
