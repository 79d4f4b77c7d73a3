package service

import (
	"fmt"
	"strings"

	"github.com/Myself7802/aatmiya-sabha-form/internal/models"
)

// Pending returns the reference records whose primary id has no submission, in reference order.
func Pending(reference *models.ReferenceTable, submissions *models.SubmissionTable) ([]models.ReferenceRecord, error) {
	if reference == nil || !reference.HasColumn(models.FieldPrimaryID) {
		return nil, fmt.Errorf("%w: reference table has no %s column", ErrSchemaMismatch, models.FieldPrimaryID)
	}
	if submissions == nil || !submissions.HasColumn(models.FieldPrimaryID) {
		return nil, fmt.Errorf("%w: submission table has no %s column", ErrSchemaMismatch, models.FieldPrimaryID)
	}

	submitted := make(map[string]struct{}, len(submissions.Records))
	for _, s := range submissions.Records {
		submitted[strings.TrimSpace(s.PrimaryID)] = struct{}{}
	}

	pending := make([]models.ReferenceRecord, 0, len(reference.Records))
	for _, r := range reference.Records {
		if _, ok := submitted[strings.TrimSpace(r.PrimaryID)]; ok {
			continue
		}
		pending = append(pending, r)
	}

	return pending, nil
}
