package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Myself7802/aatmiya-sabha-form/internal/models"
)

const (
	MessageVerified  = "ID found! Please verify your details."
	MessageSubmitted = "Your submission has been recorded successfully."
)

// WorkflowService переводит сессию по шагам awaiting_id -> verified -> submitted.
// Переходы только вперед; при любой ошибке сессия остается в прежнем состоянии.
type WorkflowService interface {
	Verify(ctx context.Context, session *models.Session, req *models.VerifyRequest) error
	Submit(ctx context.Context, session *models.Session, req *models.SubmitRequest) error
}

type workflowService struct {
	references  ReferenceService
	submissions SubmissionService
	logger      zerolog.Logger
}

func NewWorkflowService(references ReferenceService, submissions SubmissionService, logger zerolog.Logger) WorkflowService {
	return &workflowService{
		references:  references,
		submissions: submissions,
		logger:      logger,
	}
}

func (s *workflowService) Verify(ctx context.Context, session *models.Session, req *models.VerifyRequest) error {
	if err := checkState(session, models.StateAwaitingID); err != nil {
		return err
	}

	query := strings.TrimSpace(req.IDNumber)
	if err := validateStruct(&models.VerifyRequest{IDNumber: query}); err != nil {
		return err
	}

	table, err := s.references.Load(ctx)
	if err != nil {
		return err
	}

	record, ok := Find(table.Records, query)
	if !ok {
		s.logger.Info().
			Str("session_id", session.ID).
			Str("query", query).
			Msg("ID not found")
		return ErrNotFound
	}

	session.EnteredID = query
	session.Matched = &record
	session.State = models.StateVerified

	s.logger.Info().
		Str("session_id", session.ID).
		Str("primary_id", record.PrimaryID).
		Msg("ID verified")

	return nil
}

func (s *workflowService) Submit(ctx context.Context, session *models.Session, req *models.SubmitRequest) error {
	if err := checkState(session, models.StateVerified); err != nil {
		return err
	}
	if session.Matched == nil {
		return ErrInvalidState
	}

	marks := strings.TrimSpace(req.Marks)
	if err := validateStruct(&models.SubmitRequest{Marks: marks}); err != nil {
		return err
	}

	submission := models.NewSubmission(*session.Matched, marks)
	if err := s.submissions.Append(ctx, session.ID, &submission); err != nil {
		return err
	}

	session.Marks = marks
	session.State = models.StateSubmitted

	return nil
}

func checkState(session *models.Session, want models.WorkflowState) error {
	if session.State == want {
		return nil
	}
	if session.State == models.StateSubmitted {
		return ErrAlreadySubmitted
	}
	return ErrInvalidState
}
