package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Myself7802/aatmiya-sabha-form/internal/models"
	"github.com/Myself7802/aatmiya-sabha-form/internal/repository"
	"github.com/Myself7802/aatmiya-sabha-form/internal/service/integration"
)

// SubmissionService - доступ к журналу заявок. Чтение всегда без кэша.
type SubmissionService interface {
	List(ctx context.Context) (*models.SubmissionTable, error)
	Append(ctx context.Context, sessionID string, submission *models.SubmissionRecord) error
}

type submissionService struct {
	repo      repository.SubmissionRepository
	publisher integration.EventPublisher
	logger    zerolog.Logger
}

// NewSubmissionService принимает publisher == nil, если RabbitMQ не настроен.
func NewSubmissionService(
	repo repository.SubmissionRepository,
	publisher integration.EventPublisher,
	logger zerolog.Logger,
) SubmissionService {
	return &submissionService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *submissionService) List(ctx context.Context) (*models.SubmissionTable, error) {
	table, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load submissions: %w", ErrStoreUnavailable, err)
	}
	return table, nil
}

// Append добавляет одну строку. Повторная отправка того же primary_id разрешена;
// при ошибке записи ничего не откатывается и не повторяется.
func (s *submissionService) Append(ctx context.Context, sessionID string, submission *models.SubmissionRecord) error {
	if err := s.repo.Append(ctx, submission); err != nil {
		return fmt.Errorf("%w: failed to submit data: %w", ErrStoreUnavailable, err)
	}

	s.logger.Info().
		Str("primary_id", submission.PrimaryID).
		Str("session_id", sessionID).
		Msg("Submission recorded")

	if s.publisher == nil {
		return nil
	}

	event := &models.SubmissionCreatedEvent{
		PrimaryID:  submission.PrimaryID,
		SequenceNo: submission.SequenceNo,
		FullName:   submission.FullName,
		Marks:      submission.Marks,
		SessionID:  sessionID,
		Timestamp:  time.Now().Unix(),
	}
	if err := s.publisher.PublishSubmissionCreated(ctx, event); err != nil {
		// Заявка уже записана, событие не критично
		s.logger.Error().Err(err).
			Str("primary_id", submission.PrimaryID).
			Msg("Failed to publish submission created event")
	}

	return nil
}
