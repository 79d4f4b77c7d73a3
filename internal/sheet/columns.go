// Package sheet maps rows of an external spreadsheet tab onto semantic record fields.
//
// The mapping is an explicit table from accepted header texts to models.Field values.
// It is applied once when a tab is loaded; optional columns that are absent decode as "".
package sheet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Myself7802/aatmiya-sabha-form/internal/models"
)

var ErrMissingColumn = errors.New("required column missing")

type Column struct {
	Field    models.Field
	Headers  []string
	Required bool
}

type Schema struct {
	Columns []Column
	// Positional разрешает читать лист без строки заголовков в порядке Columns.
	Positional bool
}

var ReferenceSchema = Schema{
	Columns: []Column{
		{Field: models.FieldSequenceNo, Headers: []string{"NO", "No.", "S.No", "Sequence No"}},
		{Field: models.FieldPrimaryID, Headers: []string{"ID Number", "ID", "SMK", "SMK No"}, Required: true},
		{Field: models.FieldSecondaryID, Headers: []string{"Secondary ID", "Secondary ID Number"}},
		{Field: models.FieldFullName, Headers: []string{"Name", "Full Name"}, Required: true},
		{Field: models.FieldPhone, Headers: []string{"Phone Number", "Phone"}, Required: true},
	},
}

// SubmissionSchema follows models.SubmissionColumns order; appended rows have no header.
var SubmissionSchema = Schema{
	Columns: []Column{
		{Field: models.FieldSequenceNo, Headers: []string{"sequence_no", "NO", "No."}},
		{Field: models.FieldPrimaryID, Headers: []string{"primary_id", "ID Number", "ID"}, Required: true},
		{Field: models.FieldSecondaryID, Headers: []string{"secondary_id", "Secondary ID"}},
		{Field: models.FieldFullName, Headers: []string{"full_name", "Name"}},
		{Field: models.FieldPhone, Headers: []string{"phone", "Phone Number"}},
		{Field: models.FieldMarks, Headers: []string{"marks", "Marks"}},
	},
	Positional: true,
}

// WithOverrides returns a copy of s whose header lists are replaced for the fields named in
// overrides. Unknown field names are reported as an error.
func (s Schema) WithOverrides(overrides map[string][]string) (Schema, error) {
	out := Schema{Positional: s.Positional, Columns: make([]Column, len(s.Columns))}
	copy(out.Columns, s.Columns)

	for name, headers := range overrides {
		idx := out.index(models.Field(strings.ToLower(strings.TrimSpace(name))))
		if idx < 0 {
			return Schema{}, fmt.Errorf("unknown column %q", name)
		}
		if len(headers) == 0 {
			continue
		}
		out.Columns[idx].Headers = append([]string(nil), headers...)
	}

	return out, nil
}

func (s Schema) Fields() []models.Field {
	fields := make([]models.Field, 0, len(s.Columns))
	for _, c := range s.Columns {
		fields = append(fields, c.Field)
	}
	return fields
}

func (s Schema) index(f models.Field) int {
	for i, c := range s.Columns {
		if c.Field == f {
			return i
		}
	}
	return -1
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// resolve maps each schema column to its position in header, -1 if absent.
func (s Schema) resolve(header []interface{}) ([]int, int) {
	positions := make([]int, len(s.Columns))
	matched := 0

	for i, col := range s.Columns {
		positions[i] = -1
		for j, cell := range header {
			text := normalizeHeader(CellString(cell))
			if text == "" {
				continue
			}
			if containsHeader(col.Headers, text) {
				positions[i] = j
				matched++
				break
			}
		}
	}

	return positions, matched
}

// isHeader reports whether a resolved first row is a header. Every required column must be
// named. Positional tabs hold user data from the first row, so there a header must also name
// at least half of the columns: a single free-text cell such as marks "No" is not enough.
func (s Schema) isHeader(positions []int, matched int) bool {
	if matched == 0 {
		return false
	}
	for i, col := range s.Columns {
		if col.Required && positions[i] < 0 {
			return false
		}
	}
	if s.Positional {
		return 2*matched >= len(s.Columns)
	}
	return true
}

func containsHeader(headers []string, normalized string) bool {
	for _, h := range headers {
		if normalizeHeader(h) == normalized {
			return true
		}
	}
	return false
}
