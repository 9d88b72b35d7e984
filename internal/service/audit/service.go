package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ihdim5/healthrecord-api/internal/model"
	"github.com/ihdim5/healthrecord-api/internal/repository"
)

type contextKey struct{}

// WithActor stamps the acting account id onto the context; the middleware
// layer sets it from the validated token.
func WithActor(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, contextKey{}, actorID)
}

// ActorFromContext returns the acting account id, or "anonymous" when no
// actor was set (registration and login happen unauthenticated).
func ActorFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(contextKey{}).(string); ok && id != "" {
		return id
	}
	return "anonymous"
}

// LogOptions carries optional detail for an audit entry.
type LogOptions struct {
	Metadata map[string]interface{}
}

// Service records every mutating operation against the store.
type Service struct {
	repo repository.AuditRepository
}

func NewService(repo repository.AuditRepository) *Service {
	return &Service{repo: repo}
}

// Log writes an audit entry. Auditing never fails the operation it
// describes; storage errors are logged and swallowed.
func (s *Service) Log(ctx context.Context, action, resource, resourceID string, opts *LogOptions) {
	entry := &model.AuditEntry{
		ID:         uuid.New(),
		ActorID:    ActorFromContext(ctx),
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		CreatedAt:  time.Now(),
	}
	if opts != nil {
		entry.Metadata = opts.Metadata
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		log.Error().Err(err).
			Str("action", action).
			Str("resource", resource).
			Str("resource_id", resourceID).
			Msg("failed to write audit entry")
	}
}

// Trail returns the recorded entries in append order.
func (s *Service) Trail(ctx context.Context) ([]*model.AuditEntry, error) {
	return s.repo.List(ctx)
}
