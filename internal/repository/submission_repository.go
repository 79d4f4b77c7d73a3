package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Myself7802/aatmiya-sabha-form/internal/models"
)

type submissionRepository struct {
	*PostgresRepository
}

func NewSubmissionRepository(db *sql.DB, logger zerolog.Logger) SubmissionRepository {
	return &submissionRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *submissionRepository) LoadAll(ctx context.Context) (*models.SubmissionTable, error) {
	query := `
		SELECT sequence_no, primary_id, secondary_id, full_name, phone, marks
		FROM submissions
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	table := &models.SubmissionTable{
		Columns: models.SubmissionColumns,
		Records: []models.SubmissionRecord{},
	}
	for rows.Next() {
		var rec models.SubmissionRecord
		if err := rows.Scan(
			&rec.SequenceNo,
			&rec.PrimaryID,
			&rec.SecondaryID,
			&rec.FullName,
			&rec.Phone,
			&rec.Marks,
		); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		table.Records = append(table.Records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read submissions: %w", err)
	}

	return table, nil
}

func (r *submissionRepository) Append(ctx context.Context, submission *models.SubmissionRecord) error {
	query := `
		INSERT INTO submissions (sequence_no, primary_id, secondary_id, full_name, phone, marks)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		submission.SequenceNo,
		submission.PrimaryID,
		submission.SecondaryID,
		submission.FullName,
		submission.Phone,
		submission.Marks,
	)
	if err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}

	return nil
}
