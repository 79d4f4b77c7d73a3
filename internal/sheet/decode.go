package sheet

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Myself7802/aatmiya-sabha-form/internal/models"
)

type Table struct {
	Columns []models.Field
	Rows    []map[models.Field]string
}

// Decode converts raw tab values (first row may be a header) into a Table.
//
// The first row is a header only when it names every required column (see isHeader).
// Otherwise positional schemas read every row in column order and other schemas fail
// with ErrMissingColumn. Rows whose primary id is blank are skipped.
func Decode(schema Schema, values [][]interface{}) (*Table, error) {
	var (
		positions []int
		body      [][]interface{}
	)

	if len(values) > 0 {
		var matched int
		positions, matched = schema.resolve(values[0])
		if schema.isHeader(positions, matched) {
			body = values[1:]
		} else {
			positions = nil
		}
	}

	if positions == nil {
		positions = make([]int, len(schema.Columns))
		for i := range positions {
			positions[i] = -1
			if schema.Positional {
				positions[i] = i
			}
		}
		if schema.Positional {
			body = values
		}
	}

	table := &Table{}
	var missing []string
	for i, col := range schema.Columns {
		if positions[i] >= 0 {
			table.Columns = append(table.Columns, col.Field)
			continue
		}
		if col.Required {
			missing = append(missing, string(col.Field))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	for _, row := range body {
		rec := make(map[models.Field]string, len(schema.Columns))
		for i, col := range schema.Columns {
			pos := positions[i]
			if pos < 0 || pos >= len(row) {
				rec[col.Field] = ""
				continue
			}
			rec[col.Field] = strings.TrimSpace(CellString(row[pos]))
		}
		if rec[models.FieldPrimaryID] == "" {
			continue
		}
		table.Rows = append(table.Rows, rec)
	}

	return table, nil
}

// CellString renders a cell value as the text a user sees in the sheet. Whole numbers come
// back from the API as float64 and must not gain a fractional part.
func CellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

func (t *Table) ReferenceRecords() []models.ReferenceRecord {
	records := make([]models.ReferenceRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		records = append(records, models.ReferenceRecord{
			SequenceNo:  row[models.FieldSequenceNo],
			PrimaryID:   row[models.FieldPrimaryID],
			SecondaryID: row[models.FieldSecondaryID],
			FullName:    row[models.FieldFullName],
			Phone:       row[models.FieldPhone],
		})
	}
	return records
}

func (t *Table) SubmissionRecords() []models.SubmissionRecord {
	records := make([]models.SubmissionRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		records = append(records, models.SubmissionRecord{
			SequenceNo:  row[models.FieldSequenceNo],
			PrimaryID:   row[models.FieldPrimaryID],
			SecondaryID: row[models.FieldSecondaryID],
			FullName:    row[models.FieldFullName],
			Phone:       row[models.FieldPhone],
			Marks:       row[models.FieldMarks],
		})
	}
	return records
}

// EncodeRow converts a submission into the cell slice appended to the submission tab.
func EncodeRow(s models.SubmissionRecord) []interface{} {
	values := s.Values()
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}
