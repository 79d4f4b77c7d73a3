package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Myself7802/aatmiya-sabha-form/internal/models"
)

type referenceRepository struct {
	*PostgresRepository
}

func NewReferenceRepository(db *sql.DB, logger zerolog.Logger) ReferenceRepository {
	return &referenceRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *referenceRepository) LoadAll(ctx context.Context) (*models.ReferenceTable, error) {
	query := `
		SELECT sequence_no, primary_id, secondary_id, full_name, phone
		FROM reference_records
		WHERE btrim(primary_id) <> ''
		ORDER BY row_no
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query reference records: %w", err)
	}
	defer rows.Close()

	table := &models.ReferenceTable{
		Columns: []models.Field{
			models.FieldSequenceNo,
			models.FieldPrimaryID,
			models.FieldSecondaryID,
			models.FieldFullName,
			models.FieldPhone,
		},
		Records: []models.ReferenceRecord{},
	}
	for rows.Next() {
		var rec models.ReferenceRecord
		if err := rows.Scan(
			&rec.SequenceNo,
			&rec.PrimaryID,
			&rec.SecondaryID,
			&rec.FullName,
			&rec.Phone,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reference record: %w", err)
		}
		table.Records = append(table.Records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reference records: %w", err)
	}

	return table, nil
}
