package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Myself7802/aatmiya-sabha-form/internal/models"
)

func newTestReferenceService(repo *countingReferenceRepo, ttl time.Duration, now *time.Time) *referenceService {
	svc := NewReferenceService(repo, ttl, zerolog.Nop()).(*referenceService)
	svc.now = func() time.Time { return *now }
	return svc
}

func TestReferenceServiceLoadOnce(t *testing.T) {
	repo := newCountingReferenceRepo(models.ReferenceRecord{PrimaryID: "A1"})
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestReferenceService(repo, 0, &now)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		table, err := svc.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, table.Records, 1)
		now = now.Add(24 * time.Hour)
	}

	assert.Equal(t, 1, repo.Calls(), "ttl 0 keeps the table until restart")
}

func TestReferenceServiceTTL(t *testing.T) {
	repo := newCountingReferenceRepo(models.ReferenceRecord{PrimaryID: "A1"})
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestReferenceService(repo, time.Minute, &now)
	ctx := context.Background()

	_, err := svc.Load(ctx)
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	_, err = svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.Calls())

	now = now.Add(31 * time.Second)
	_, err = svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.Calls())
}

func TestReferenceServiceRefresh(t *testing.T) {
	repo := newCountingReferenceRepo(models.ReferenceRecord{PrimaryID: "A1"})
	now := time.Now()
	svc := newTestReferenceService(repo, 0, &now)
	ctx := context.Background()

	_, err := svc.Load(ctx)
	require.NoError(t, err)

	repo.table = referenceTable(models.ReferenceRecord{PrimaryID: "A1"}, models.ReferenceRecord{PrimaryID: "B2"})
	table, err := svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Len(t, table.Records, 2)
	assert.Equal(t, 2, repo.Calls())

	// следующий Load отдает уже новую таблицу
	table, err = svc.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, table.Records, 2)
	assert.Equal(t, 2, repo.Calls())
}

func TestReferenceServiceStoreUnavailable(t *testing.T) {
	repo := newCountingReferenceRepo(models.ReferenceRecord{PrimaryID: "A1"})
	now := time.Now()
	svc := newTestReferenceService(repo, 0, &now)
	ctx := context.Background()

	_, err := svc.Load(ctx)
	require.NoError(t, err)

	cause := errors.New("network down")
	repo.err = cause

	_, err = svc.Refresh(ctx)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, cause)

	// прежняя таблица осталась в кэше
	table, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, table.Records, 1)
	assert.Equal(t, 2, repo.Calls())
}

func TestReferenceServiceFirstLoadFailure(t *testing.T) {
	repo := newCountingReferenceRepo(models.ReferenceRecord{PrimaryID: "A1"})
	repo.err = errors.New("permission denied")
	now := time.Now()
	svc := newTestReferenceService(repo, 0, &now)
	ctx := context.Background()

	_, err := svc.Load(ctx)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	// неудачная загрузка не кэшируется
	repo.err = nil
	table, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, table.Records, 1)
	assert.Equal(t, 2, repo.Calls())
}
