package service

import (
	"strings"

	"github.com/Myself7802/aatmiya-sabha-form/internal/models"
)

// Find returns the first record, in table order, whose primary id equals the trimmed query.
// Comparison is exact and case-sensitive. A miss is reported by ok == false, not an error.
func Find(records []models.ReferenceRecord, query string) (models.ReferenceRecord, bool) {
	q := strings.TrimSpace(query)
	for _, rec := range records {
		if strings.TrimSpace(rec.PrimaryID) == q {
			return rec, true
		}
	}
	return models.ReferenceRecord{}, false
}
