package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Myself7802/aatmiya-sabha-form/internal/models"
	"github.com/Myself7802/aatmiya-sabha-form/internal/repository"
)

func newTestSessionService(passphrase string, refs *countingReferenceRepo, store *repository.MemoryStore) SessionService {
	references := NewReferenceService(refs, 0, zerolog.Nop())
	submissions := NewSubmissionService(store.Submissions(), nil, zerolog.Nop())

	return NewSessionService(
		NewSessionStore(),
		NewWorkflowService(references, submissions, zerolog.Nop()),
		NewAdminService(passphrase, references, submissions, zerolog.Nop()),
		0,
		zerolog.Nop(),
	)
}

func TestSessionServiceFlow(t *testing.T) {
	svc := newTestSessionService("pw", newCountingReferenceRepo(alice), repository.NewMemoryStore())
	ctx := context.Background()

	created := svc.Create(ctx)
	assert.Equal(t, models.StateAwaitingID, created.State)
	assert.Empty(t, created.Message)

	resp, err := svc.Verify(ctx, created.ID, &models.VerifyRequest{IDNumber: "A1"})
	require.NoError(t, err)
	assert.Equal(t, models.StateVerified, resp.State)
	assert.Equal(t, MessageVerified, resp.Message)
	require.NotNil(t, resp.Record)
	assert.Equal(t, "Alice", resp.Record.FullName)

	resp, err = svc.Submit(ctx, created.ID, &models.SubmitRequest{Marks: "42"})
	require.NoError(t, err)
	assert.Equal(t, models.StateSubmitted, resp.State)
	assert.Equal(t, MessageSubmitted, resp.Message)
	assert.Equal(t, "42", resp.Marks)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.State, got.State)

	require.NoError(t, svc.End(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionServiceErrorKeepsView(t *testing.T) {
	svc := newTestSessionService("pw", newCountingReferenceRepo(alice), repository.NewMemoryStore())
	ctx := context.Background()
	created := svc.Create(ctx)

	resp, err := svc.Verify(ctx, created.ID, &models.VerifyRequest{IDNumber: "ZZ"})
	assert.ErrorIs(t, err, ErrNotFound)
	require.NotNil(t, resp)
	assert.Equal(t, models.StateAwaitingID, resp.State)

	resp, err = svc.Verify(ctx, "missing", &models.VerifyRequest{IDNumber: "A1"})
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Nil(t, resp)
}

func TestSessionServiceIndependentSessions(t *testing.T) {
	svc := newTestSessionService("pw", newCountingReferenceRepo(alice), repository.NewMemoryStore())
	ctx := context.Background()

	first := svc.Create(ctx)
	second := svc.Create(ctx)

	_, err := svc.Verify(ctx, first.ID, &models.VerifyRequest{IDNumber: "A1"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateAwaitingID, got.State)
	assert.Nil(t, got.Record)
}

func TestSessionServiceAdminGate(t *testing.T) {
	svc := newTestSessionService("pw", newCountingReferenceRepo(alice), repository.NewMemoryStore())
	ctx := context.Background()
	session := svc.Create(ctx)

	assert.ErrorIs(t, svc.RequireAdmin(ctx, session.ID), ErrAdminRequired)
	assert.ErrorIs(t, svc.RequireAdmin(ctx, "missing"), ErrSessionNotFound)

	resp, err := svc.AdminLogin(ctx, session.ID, &models.AdminLoginRequest{Passphrase: "nope"})
	assert.ErrorIs(t, err, ErrInvalidPassphrase)
	assert.False(t, resp.IsAdmin)
	assert.ErrorIs(t, svc.RequireAdmin(ctx, session.ID), ErrAdminRequired)

	resp, err = svc.AdminLogin(ctx, session.ID, &models.AdminLoginRequest{Passphrase: "pw"})
	require.NoError(t, err)
	assert.True(t, resp.IsAdmin)
	assert.NoError(t, svc.RequireAdmin(ctx, session.ID))

	// флаг не переносится на другие сессии
	other := svc.Create(ctx)
	assert.ErrorIs(t, svc.RequireAdmin(ctx, other.ID), ErrAdminRequired)
}

func TestSessionServiceAdminDoesNotChangeWorkflow(t *testing.T) {
	svc := newTestSessionService("pw", newCountingReferenceRepo(alice), repository.NewMemoryStore())
	ctx := context.Background()
	session := svc.Create(ctx)

	resp, err := svc.AdminLogin(ctx, session.ID, &models.AdminLoginRequest{Passphrase: "pw"})
	require.NoError(t, err)
	assert.Equal(t, models.StateAwaitingID, resp.State)

	_, err = svc.Submit(ctx, session.ID, &models.SubmitRequest{Marks: "1"})
	assert.True(t, errors.Is(err, ErrInvalidState))
}

func TestSessionServiceSweepIdleDisabled(t *testing.T) {
	svc := newTestSessionService("pw", newCountingReferenceRepo(), repository.NewMemoryStore())
	svc.Create(context.Background())

	assert.Equal(t, 0, svc.SweepIdle())
}
