package doctor

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ihdim5/healthrecord-api/internal/model"
	"github.com/ihdim5/healthrecord-api/internal/repository"
	"github.com/ihdim5/healthrecord-api/internal/service/audit"
	"github.com/ihdim5/healthrecord-api/pkg/errors"
	"github.com/ihdim5/healthrecord-api/pkg/validator"
)

// Notifier is told about verification decisions; the email service implements
// it. Notification failures never fail the decision itself.
type Notifier interface {
	SendVerificationDecision(ctx context.Context, to, name string, status model.VerificationStatus) error
}

type DoctorService interface {
	Register(ctx context.Context, req *model.RegisterDoctorRequest) (*model.Doctor, error)
	Get(ctx context.Context, id string) (*model.Doctor, error)
	List(ctx context.Context) ([]*model.Doctor, error)
	ListVerified(ctx context.Context) ([]*model.Doctor, error)
	Update(ctx context.Context, id string, req *model.UpdateDoctorRequest) (*model.Doctor, error)
	Delete(ctx context.Context, id string) error
	UpdateVerificationStatus(ctx context.Context, id string, status model.VerificationStatus) (*model.Doctor, error)
	EnsureVerified(ctx context.Context, id string) error
}

type Service struct {
	repo     repository.DoctorRepository
	accounts repository.AccountRepository
	auditor  *audit.Service
	notifier Notifier
}

func NewService(repo repository.DoctorRepository, accounts repository.AccountRepository, auditor *audit.Service, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		accounts: accounts,
		auditor:  auditor,
		notifier: notifier,
	}
}

func (s *Service) Register(ctx context.Context, req *model.RegisterDoctorRequest) (*model.Doctor, error) {
	if err := validator.ValidateEmail(req.Email); err != nil {
		return nil, errors.BadRequest(err.Error(), err)
	}
	if err := validator.ValidatePassword(req.Password); err != nil {
		return nil, errors.BadRequest(err.Error(), err)
	}

	existing, err := s.accounts.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, errors.BadRequest("an account with this email already exists", nil)
	}

	created, err := s.repo.Create(ctx, &model.Doctor{
		FullName:           req.FullName,
		Email:              req.Email,
		Password:           req.Password,
		Phone:              req.Phone,
		Specialization:     req.Specialization,
		ExperienceYears:    req.ExperienceYears,
		MedicalRegNumber:   req.MedicalRegNumber,
		RegistrationDocURL: req.RegistrationDocURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}

	s.auditor.Log(ctx, "register", "doctor", created.ID, nil)
	return created, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.Doctor, error) {
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	if d == nil {
		return nil, errors.NotFound("doctor", nil)
	}
	return d, nil
}

func (s *Service) List(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

// ListVerified returns only doctors admitted to the record-access workflow.
// Unverified doctors stay invisible to patients.
func (s *Service) ListVerified(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	verified := make([]*model.Doctor, 0, len(doctors))
	for _, d := range doctors {
		if d.VerificationStatus == model.VerificationVerified {
			verified = append(verified, d)
		}
	}
	return verified, nil
}

func (s *Service) Update(ctx context.Context, id string, req *model.UpdateDoctorRequest) (*model.Doctor, error) {
	if req.Email != nil {
		if err := validator.ValidateEmail(*req.Email); err != nil {
			return nil, errors.BadRequest(err.Error(), err)
		}
	}

	updated, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.auditor.Log(ctx, "update", "doctor", id, nil)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}

	s.auditor.Log(ctx, "delete", "doctor", id, nil)
	return nil
}

// UpdateVerificationStatus moves a doctor through the verification state
// machine. Pending is the initial state only: no call may set it back, so the
// target must be one of the two terminal states. An explicit call may switch
// one terminal state to the other (administrative override).
func (s *Service) UpdateVerificationStatus(ctx context.Context, id string, status model.VerificationStatus) (*model.Doctor, error) {
	if !status.Valid() {
		return nil, errors.BadRequest("invalid verification status", nil)
	}
	if !status.Terminal() {
		return nil, errors.BadRequest("a doctor cannot be returned to pending", nil)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.auditor.Log(ctx, "update_verification_status", "doctor", id, &audit.LogOptions{
		Metadata: map[string]interface{}{"status": status},
	})

	if s.notifier != nil {
		if err := s.notifier.SendVerificationDecision(ctx, updated.Email, updated.FullName, status); err != nil {
			log.Warn().Err(err).Str("doctor_id", id).Msg("failed to send verification notification")
		}
	}

	return updated, nil
}

// EnsureVerified is the admission check for the record-access workflow: a
// doctor whose status is not Verified is barred from patient search and
// clinical appends.
func (s *Service) EnsureVerified(ctx context.Context, id string) error {
	d, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if d.VerificationStatus != model.VerificationVerified {
		return errors.Forbidden("doctor is not verified")
	}
	return nil
}
