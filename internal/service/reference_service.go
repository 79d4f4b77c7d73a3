package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Myself7802/aatmiya-sabha-form/internal/models"
	"github.com/Myself7802/aatmiya-sabha-form/internal/repository"
)

// ReferenceService кэширует эталонную таблицу.
//
// ttl == 0: таблица загружается один раз и живет до перезапуска или Refresh.
// Refresh перечитывает таблицу сразу; при ошибке кэш остается прежним.
// ttl > 0: при обращении после истечения ttl таблица перечитывается.
// Возвращаемая таблица общая для всех сессий и не должна изменяться вызывающим кодом.
type ReferenceService interface {
	Load(ctx context.Context) (*models.ReferenceTable, error)
	Refresh(ctx context.Context) (*models.ReferenceTable, error)
}

type referenceService struct {
	repo   repository.ReferenceRepository
	ttl    time.Duration
	now    func() time.Time
	logger zerolog.Logger

	mu       sync.Mutex
	table    *models.ReferenceTable
	loadedAt time.Time
}

func NewReferenceService(repo repository.ReferenceRepository, ttl time.Duration, logger zerolog.Logger) ReferenceService {
	return &referenceService{
		repo:   repo,
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

func (s *referenceService) Load(ctx context.Context) (*models.ReferenceTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.table != nil && (s.ttl <= 0 || s.now().Sub(s.loadedAt) < s.ttl) {
		return s.table, nil
	}

	return s.reload(ctx)
}

func (s *referenceService) Refresh(ctx context.Context) (*models.ReferenceTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.reload(ctx)
}

// reload must be called with s.mu held. On failure the previous table is kept.
func (s *referenceService) reload(ctx context.Context) (*models.ReferenceTable, error) {
	table, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load reference data: %w", ErrStoreUnavailable, err)
	}

	s.table = table
	s.loadedAt = s.now()

	s.logger.Info().
		Int("records", len(table.Records)).
		Msg("Reference data loaded")

	return table, nil
}
