package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"path"
	"time"

	"github.com/rs/zerolog"

	"github.com/Myself7802/aatmiya-sabha-form/internal/models"
	"github.com/Myself7802/aatmiya-sabha-form/internal/service/integration"
)

// ExportService выгружает списки администратора в CSV в объектное хранилище.
type ExportService interface {
	Export(ctx context.Context, req *models.ExportRequest) (*models.ExportResult, error)
}

type exportService struct {
	admin   AdminService
	storage integration.ObjectStorage
	prefix  string
	now     func() time.Time
	logger  zerolog.Logger
}

// NewExportService принимает storage == nil, если выгрузка отключена.
func NewExportService(admin AdminService, storage integration.ObjectStorage, prefix string, logger zerolog.Logger) ExportService {
	return &exportService{
		admin:   admin,
		storage: storage,
		prefix:  prefix,
		now:     time.Now,
		logger:  logger,
	}
}

func (s *exportService) Export(ctx context.Context, req *models.ExportRequest) (*models.ExportResult, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if s.storage == nil {
		return nil, ErrExportDisabled
	}

	kind := models.ExportKind(req.Kind)

	var (
		header = []string{
			string(models.FieldSequenceNo),
			string(models.FieldPrimaryID),
			string(models.FieldSecondaryID),
			string(models.FieldFullName),
			string(models.FieldPhone),
		}
		rows [][]string
	)

	switch kind {
	case models.ExportSubmissions:
		resp, err := s.admin.ListSubmissions(ctx)
		if err != nil {
			return nil, err
		}
		header = append(header, string(models.FieldMarks))
		for _, sub := range resp.Submissions {
			rows = append(rows, sub.Values())
		}
	case models.ExportPending:
		resp, err := s.admin.ListPending(ctx)
		if err != nil {
			return nil, err
		}
		for _, r := range resp.Pending {
			rows = append(rows, []string{r.SequenceNo, r.PrimaryID, r.SecondaryID, r.FullName, r.Phone})
		}
	}

	data, err := encodeCSV(header, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s export: %w", kind, err)
	}

	createdAt := s.now().UTC()
	key := path.Join(s.prefix, fmt.Sprintf("%s-%s.csv", kind, createdAt.Format("20060102T150405Z")))

	if err := s.storage.PutObject(ctx, key, "text/csv", data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	s.logger.Info().
		Str("kind", string(kind)).
		Str("object_key", key).
		Int("rows", len(rows)).
		Msg("Export created")

	return &models.ExportResult{
		Kind:      kind,
		Bucket:    s.storage.Bucket(),
		ObjectKey: key,
		Rows:      len(rows),
		CreatedAt: createdAt,
	}, nil
}

func encodeCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
