package email

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/ihdim5/healthrecord-api/internal/model"
)

// Service notifies doctors about verification decisions.
type Service interface {
	SendVerificationDecision(ctx context.Context, to, name string, status model.VerificationStatus) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewService(cfg Config) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendVerificationDecision(ctx context.Context, to, name string, status model.VerificationStatus) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Your profile has been %s", status))

	var body string
	switch status {
	case model.VerificationVerified:
		body = fmt.Sprintf("Dear %s,\n\nYour profile has been verified. You now have full access to patient records.\n", name)
	case model.VerificationRejected:
		body = fmt.Sprintf("Dear %s,\n\nYour registration could not be verified. Please contact the administrator for details.\n", name)
	default:
		body = fmt.Sprintf("Dear %s,\n\nYour verification status is now %s.\n", name, status)
	}
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

// NoopService is used when SMTP is not configured.
type NoopService struct{}

func (NoopService) SendVerificationDecision(ctx context.Context, to, name string, status model.VerificationStatus) error {
	return nil
}
