package patient

import (
	"context"
	"fmt"

	"github.com/ihdim5/healthrecord-api/internal/model"
	"github.com/ihdim5/healthrecord-api/internal/repository"
	"github.com/ihdim5/healthrecord-api/internal/service/audit"
	"github.com/ihdim5/healthrecord-api/pkg/errors"
	"github.com/ihdim5/healthrecord-api/pkg/validator"
)

type PatientService interface {
	Register(ctx context.Context, req *model.RegisterPatientRequest) (*model.Patient, error)
	Get(ctx context.Context, id string) (*model.Patient, error)
	GetByLookupToken(ctx context.Context, token string) (*model.Patient, error)
	List(ctx context.Context) ([]*model.Patient, error)
	Update(ctx context.Context, id string, req *model.UpdatePatientRequest) (*model.Patient, error)
	Delete(ctx context.Context, id string) error
	AddMedicalNote(ctx context.Context, patientID string, req *model.AddMedicalNoteRequest) (*model.Patient, error)
	AddPrescription(ctx context.Context, patientID string, req *model.AddPrescriptionRequest) (*model.Patient, error)
	AddLabOrder(ctx context.Context, patientID string, req *model.AddLabOrderRequest) (*model.Patient, error)
}

type Service struct {
	repo     repository.PatientRepository
	accounts repository.AccountRepository
	auditor  *audit.Service
}

func NewService(repo repository.PatientRepository, accounts repository.AccountRepository, auditor *audit.Service) *Service {
	return &Service{
		repo:     repo,
		accounts: accounts,
		auditor:  auditor,
	}
}

func (s *Service) Register(ctx context.Context, req *model.RegisterPatientRequest) (*model.Patient, error) {
	if err := s.validateRegistration(ctx, req); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &model.Patient{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Password:          req.Password,
		DateOfBirth:       req.DateOfBirth,
		Gender:            req.Gender,
		Phone:             req.Phone,
		Address:           req.Address,
		BloodGroup:        req.BloodGroup,
		MedicalHistory:    req.MedicalHistory,
		EmergencyContacts: req.EmergencyContacts,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	s.auditor.Log(ctx, "register", "patient", created.ID, nil)
	return created, nil
}

// Get returns the patient snapshot or a not-found error. The error is
// informational, never fatal; callers decide how to surface it.
func (s *Service) Get(ctx context.Context, id string) (*model.Patient, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	if p == nil {
		return nil, errors.NotFound("patient", nil)
	}
	return p, nil
}

// GetByLookupToken resolves a scanned token. The token is the patient id, so
// this is a plain id lookup; the scanner hands over an opaque string and the
// store treats it as a candidate identifier.
func (s *Service) GetByLookupToken(ctx context.Context, token string) (*model.Patient, error) {
	return s.Get(ctx, token)
}

func (s *Service) List(ctx context.Context) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (s *Service) Update(ctx context.Context, id string, req *model.UpdatePatientRequest) (*model.Patient, error) {
	if req.Email != nil {
		if err := validator.ValidateEmail(*req.Email); err != nil {
			return nil, errors.BadRequest(err.Error(), err)
		}
	}
	if req.Gender != nil && !req.Gender.Valid() {
		return nil, errors.BadRequest("invalid gender", nil)
	}
	if req.BloodGroup != nil && !req.BloodGroup.Valid() {
		return nil, errors.BadRequest("invalid blood group", nil)
	}
	if req.EmergencyContacts != nil && len(*req.EmergencyContacts) == 0 {
		return nil, errors.BadRequest("at least one emergency contact is required", nil)
	}

	updated, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.auditor.Log(ctx, "update", "patient", id, nil)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	s.auditor.Log(ctx, "delete", "patient", id, nil)
	return nil
}

func (s *Service) AddMedicalNote(ctx context.Context, patientID string, req *model.AddMedicalNoteRequest) (*model.Patient, error) {
	updated, err := s.repo.AddMedicalNote(ctx, patientID, &model.MedicalNote{
		Date:       req.Date,
		DoctorName: req.DoctorName,
		Note:       req.Note,
	})
	if err != nil {
		return nil, err
	}

	s.auditor.Log(ctx, "add_medical_note", "patient", patientID, nil)
	return updated, nil
}

func (s *Service) AddPrescription(ctx context.Context, patientID string, req *model.AddPrescriptionRequest) (*model.Patient, error) {
	updated, err := s.repo.AddPrescription(ctx, patientID, &model.Prescription{
		Date:       req.Date,
		DoctorName: req.DoctorName,
		Medication: req.Medication,
		Dosage:     req.Dosage,
		Frequency:  req.Frequency,
	})
	if err != nil {
		return nil, err
	}

	s.auditor.Log(ctx, "add_prescription", "patient", patientID, nil)
	return updated, nil
}

func (s *Service) AddLabOrder(ctx context.Context, patientID string, req *model.AddLabOrderRequest) (*model.Patient, error) {
	if !req.Status.Valid() {
		return nil, errors.BadRequest("invalid lab order status", nil)
	}

	updated, err := s.repo.AddLabOrder(ctx, patientID, &model.LabOrder{
		Date:       req.Date,
		DoctorName: req.DoctorName,
		TestName:   req.TestName,
		Status:     req.Status,
	})
	if err != nil {
		return nil, err
	}

	s.auditor.Log(ctx, "add_lab_order", "patient", patientID, nil)
	return updated, nil
}

// validateRegistration applies the registration-form rules before anything
// reaches the store: field formats, enum membership, at least one emergency
// contact, and email uniqueness across all four account kinds.
func (s *Service) validateRegistration(ctx context.Context, req *model.RegisterPatientRequest) error {
	if err := validator.ValidateEmail(req.Email); err != nil {
		return errors.BadRequest(err.Error(), err)
	}
	if err := validator.ValidatePassword(req.Password); err != nil {
		return errors.BadRequest(err.Error(), err)
	}
	if !req.Gender.Valid() {
		return errors.BadRequest("invalid gender", nil)
	}
	if !req.BloodGroup.Valid() {
		return errors.BadRequest("invalid blood group", nil)
	}
	if len(req.EmergencyContacts) == 0 {
		return errors.BadRequest("at least one emergency contact is required", nil)
	}

	existing, err := s.accounts.FindByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return errors.BadRequest("an account with this email already exists", nil)
	}
	return nil
}
