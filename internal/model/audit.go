package model

import (
	"time"

	"github.com/google/uuid"
)

// AuditEntry records a mutation against the store: who did what to which
// resource, and when.
type AuditEntry struct {
	ID         uuid.UUID              `json:"id"`
	ActorID    string                 `json:"actor_id"`
	Action     string                 `json:"action"`
	Resource   string                 `json:"resource"`
	ResourceID string                 `json:"resource_id"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}
