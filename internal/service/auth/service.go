package auth

import (
	"context"
	"fmt"

	"github.com/ihdim5/healthrecord-api/internal/model"
	"github.com/ihdim5/healthrecord-api/internal/repository"
	"github.com/ihdim5/healthrecord-api/internal/service/audit"
	"github.com/ihdim5/healthrecord-api/pkg/auth"
	"github.com/ihdim5/healthrecord-api/pkg/errors"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*model.Account, string, error)
	Logout(ctx context.Context) error
	GetProfile(ctx context.Context, id string) (*model.Account, error)
	ValidateToken(token string) (*auth.Claims, error)
}

type Service struct {
	accounts repository.AccountRepository
	jwtSvc   auth.JWTService
	auditor  *audit.Service
}

func NewService(accounts repository.AccountRepository, jwtSvc auth.JWTService, auditor *audit.Service) *Service {
	return &Service{
		accounts: accounts,
		jwtSvc:   jwtSvc,
		auditor:  auditor,
	}
}

// Login resolves (email, password) to exactly one account across all four
// kinds. Unknown email and wrong password fail identically so a caller can
// never probe which emails are registered. The returned token carries the
// account kind for the presentation layer; all session state lives there.
func (s *Service) Login(ctx context.Context, email, password string) (*model.Account, string, error) {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up account: %w", err)
	}
	if account == nil || !account.PasswordMatches(password) {
		return nil, "", errors.InvalidCredentials()
	}

	token, err := s.jwtSvc.GenerateAccessToken(account)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.auditor.Log(ctx, "login", "account", account.ID(), &audit.LogOptions{
		Metadata: map[string]interface{}{"kind": account.Kind},
	})

	return account, token, nil
}

// Logout is a pure no-op: there is no server-side session to invalidate. The
// presentation layer drops its held account reference and token.
func (s *Service) Logout(ctx context.Context) error {
	return nil
}

// GetProfile resolves any account kind by id.
func (s *Service) GetProfile(ctx context.Context, id string) (*model.Account, error) {
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if account == nil {
		return nil, errors.NotFound("account", nil)
	}
	return account, nil
}

func (s *Service) ValidateToken(token string) (*auth.Claims, error) {
	return s.jwtSvc.ValidateToken(token)
}
