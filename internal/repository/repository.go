package repository

import (
	"context"

	"github.com/Myself7802/aatmiya-sabha-form/internal/models"
)

// ReferenceRepository читает таблицу допустимых участников.
type ReferenceRepository interface {
	LoadAll(ctx context.Context) (*models.ReferenceTable, error)
}

// SubmissionRepository - журнал заявок, только добавление.
type SubmissionRepository interface {
	LoadAll(ctx context.Context) (*models.SubmissionTable, error)
	Append(ctx context.Context, submission *models.SubmissionRecord) error
}
