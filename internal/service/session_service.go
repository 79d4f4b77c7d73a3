package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/Myself7802/aatmiya-sabha-form/internal/models"
)

type SessionService interface {
	Create(ctx context.Context) *models.SessionResponse
	Get(ctx context.Context, id string) (*models.SessionResponse, error)
	End(ctx context.Context, id string) error
	Verify(ctx context.Context, id string, req *models.VerifyRequest) (*models.SessionResponse, error)
	Submit(ctx context.Context, id string, req *models.SubmitRequest) (*models.SessionResponse, error)
	AdminLogin(ctx context.Context, id string, req *models.AdminLoginRequest) (*models.SessionResponse, error)
	RequireAdmin(ctx context.Context, id string) error
	SweepIdle() int
}

type sessionService struct {
	store       SessionStore
	workflow    WorkflowService
	admin       AdminService
	idleTimeout time.Duration
	logger      zerolog.Logger
}

func NewSessionService(
	store SessionStore,
	workflow WorkflowService,
	admin AdminService,
	idleTimeout time.Duration,
	logger zerolog.Logger,
) SessionService {
	return &sessionService{
		store:       store,
		workflow:    workflow,
		admin:       admin,
		idleTimeout: idleTimeout,
		logger:      logger,
	}
}

func (s *sessionService) Create(_ context.Context) *models.SessionResponse {
	session := s.store.Create()

	s.logger.Debug().
		Str("session_id", session.ID).
		Msg("Session started")

	return toSessionResponse(session)
}

func (s *sessionService) Get(_ context.Context, id string) (*models.SessionResponse, error) {
	session, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

func (s *sessionService) End(_ context.Context, id string) error {
	if err := s.store.Delete(id); err != nil {
		return err
	}

	s.logger.Debug().
		Str("session_id", id).
		Msg("Session ended")

	return nil
}

func (s *sessionService) Verify(ctx context.Context, id string, req *models.VerifyRequest) (*models.SessionResponse, error) {
	return s.update(id, func(session *models.Session) error {
		return s.workflow.Verify(ctx, session, req)
	})
}

func (s *sessionService) Submit(ctx context.Context, id string, req *models.SubmitRequest) (*models.SessionResponse, error) {
	return s.update(id, func(session *models.Session) error {
		return s.workflow.Submit(ctx, session, req)
	})
}

func (s *sessionService) AdminLogin(_ context.Context, id string, req *models.AdminLoginRequest) (*models.SessionResponse, error) {
	return s.update(id, func(session *models.Session) error {
		return s.admin.Login(session, req)
	})
}

func (s *sessionService) RequireAdmin(_ context.Context, id string) error {
	session, err := s.store.Get(id)
	if err != nil {
		return err
	}
	if !session.IsAdmin {
		return ErrAdminRequired
	}
	return nil
}

func (s *sessionService) SweepIdle() int {
	removed := s.store.Sweep(s.idleTimeout)
	if removed > 0 {
		s.logger.Info().
			Int("removed", removed).
			Int("active", s.store.Len()).
			Msg("Idle sessions removed")
	}
	return removed
}

// update returns the session view even when fn fails, so callers can show
// the unchanged state next to the error.
func (s *sessionService) update(id string, fn func(*models.Session) error) (*models.SessionResponse, error) {
	session, err := s.store.Update(id, fn)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, err
	}
	return toSessionResponse(session), err
}

func toSessionResponse(session models.Session) *models.SessionResponse {
	resp := &models.SessionResponse{
		ID:        session.ID,
		State:     session.State,
		EnteredID: session.EnteredID,
		Record:    session.Matched,
		Marks:     session.Marks,
		IsAdmin:   session.IsAdmin,
		CreatedAt: session.CreatedAt,
	}

	switch session.State {
	case models.StateVerified:
		resp.Message = MessageVerified
	case models.StateSubmitted:
		resp.Message = MessageSubmitted
	}

	return resp
}
