package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Myself7802/aatmiya-sabha-form/internal/models"
)

// AdminService - доступ к спискам по общему паролю.
//
// Пароль хранится открытым текстом и сравнивается на равенство: без хеширования,
// ограничения попыток и блокировки. Пустой пароль в конфигурации отключает вход.
type AdminService interface {
	Login(session *models.Session, req *models.AdminLoginRequest) error
	ListSubmissions(ctx context.Context) (*models.SubmissionsResponse, error)
	ListPending(ctx context.Context) (*models.PendingResponse, error)
	RefreshReference(ctx context.Context) (int, error)
}

type adminService struct {
	passphrase  string
	references  ReferenceService
	submissions SubmissionService
	logger      zerolog.Logger
}

func NewAdminService(
	passphrase string,
	references ReferenceService,
	submissions SubmissionService,
	logger zerolog.Logger,
) AdminService {
	return &adminService{
		passphrase:  passphrase,
		references:  references,
		submissions: submissions,
		logger:      logger,
	}
}

func (s *adminService) Login(session *models.Session, req *models.AdminLoginRequest) error {
	if err := validateStruct(&models.AdminLoginRequest{Passphrase: strings.TrimSpace(req.Passphrase)}); err != nil {
		return err
	}

	if s.passphrase == "" || req.Passphrase != s.passphrase {
		s.logger.Warn().
			Str("session_id", session.ID).
			Msg("Admin login failed")
		return ErrInvalidPassphrase
	}

	session.IsAdmin = true

	s.logger.Info().
		Str("session_id", session.ID).
		Msg("Admin access granted")

	return nil
}

func (s *adminService) ListSubmissions(ctx context.Context) (*models.SubmissionsResponse, error) {
	table, err := s.submissions.List(ctx)
	if err != nil {
		return nil, err
	}

	return &models.SubmissionsResponse{
		Submissions: table.Records,
		Total:       len(table.Records),
	}, nil
}

func (s *adminService) ListPending(ctx context.Context) (*models.PendingResponse, error) {
	reference, err := s.references.Load(ctx)
	if err != nil {
		return nil, err
	}

	submissions, err := s.submissions.List(ctx)
	if err != nil {
		return nil, err
	}

	pending, err := Pending(reference, submissions)
	if err != nil {
		return nil, err
	}

	return &models.PendingResponse{
		Pending:        pending,
		Total:          len(pending),
		ReferenceTotal: len(reference.Records),
	}, nil
}

func (s *adminService) RefreshReference(ctx context.Context) (int, error) {
	table, err := s.references.Refresh(ctx)
	if err != nil {
		return 0, err
	}
	return len(table.Records), nil
}
