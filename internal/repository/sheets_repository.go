package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Myself7802/aatmiya-sabha-form/internal/models"
	"github.com/Myself7802/aatmiya-sabha-form/internal/sheet"
)

type sheetsReferenceRepository struct {
	values SheetValues
	tab    string
	schema sheet.Schema
	logger zerolog.Logger
}

func NewSheetsReferenceRepository(values SheetValues, tab string, schema sheet.Schema, logger zerolog.Logger) ReferenceRepository {
	return &sheetsReferenceRepository{
		values: values,
		tab:    tab,
		schema: schema,
		logger: logger,
	}
}

func (r *sheetsReferenceRepository) LoadAll(ctx context.Context) (*models.ReferenceTable, error) {
	raw, err := r.values.Get(ctx, r.tab)
	if err != nil {
		return nil, err
	}

	table, err := sheet.Decode(r.schema, raw)
	if err != nil {
		return nil, fmt.Errorf("tab %q: %w", r.tab, err)
	}

	r.logger.Debug().
		Str("tab", r.tab).
		Int("rows", len(table.Rows)).
		Msg("Reference tab loaded")

	return &models.ReferenceTable{
		Columns: table.Columns,
		Records: table.ReferenceRecords(),
	}, nil
}

type sheetsSubmissionRepository struct {
	values SheetValues
	tab    string
	schema sheet.Schema
	logger zerolog.Logger
}

func NewSheetsSubmissionRepository(values SheetValues, tab string, schema sheet.Schema, logger zerolog.Logger) SubmissionRepository {
	return &sheetsSubmissionRepository{
		values: values,
		tab:    tab,
		schema: schema,
		logger: logger,
	}
}

func (r *sheetsSubmissionRepository) LoadAll(ctx context.Context) (*models.SubmissionTable, error) {
	raw, err := r.values.Get(ctx, r.tab)
	if err != nil {
		return nil, err
	}

	table, err := sheet.Decode(r.schema, raw)
	if err != nil {
		return nil, fmt.Errorf("tab %q: %w", r.tab, err)
	}

	return &models.SubmissionTable{
		Columns: table.Columns,
		Records: table.SubmissionRecords(),
	}, nil
}

func (r *sheetsSubmissionRepository) Append(ctx context.Context, submission *models.SubmissionRecord) error {
	return r.values.Append(ctx, r.tab, sheet.EncodeRow(*submission))
}
