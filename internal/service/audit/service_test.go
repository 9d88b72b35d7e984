package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ihdim5/healthrecord-api/internal/repository/memory"
)

func TestLogRecordsActorAndOrder(t *testing.T) {
	store := memory.NewStore(memory.Options{})
	svc := NewService(memory.NewAuditRepository(store))

	ctx := WithActor(context.Background(), "A001")
	svc.Log(ctx, "register", "patient", "P0001", nil)
	svc.Log(ctx, "update", "patient", "P0001", &LogOptions{
		Metadata: map[string]interface{}{"field": "phone"},
	})

	trail, err := svc.Trail(ctx)
	require.NoError(t, err)
	require.Len(t, trail, 2)

	assert.Equal(t, "register", trail[0].Action)
	assert.Equal(t, "A001", trail[0].ActorID)
	assert.Equal(t, "patient", trail[0].Resource)
	assert.Equal(t, "P0001", trail[0].ResourceID)
	assert.NotEqual(t, trail[0].ID, trail[1].ID)

	assert.Equal(t, "update", trail[1].Action)
	assert.Equal(t, "phone", trail[1].Metadata["field"])
}

func TestUnauthenticatedActorIsAnonymous(t *testing.T) {
	store := memory.NewStore(memory.Options{})
	svc := NewService(memory.NewAuditRepository(store))

	ctx := context.Background()
	svc.Log(ctx, "login", "account", "P0001", nil)

	trail, err := svc.Trail(ctx)
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, "anonymous", trail[0].ActorID)
}
