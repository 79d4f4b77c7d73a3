package models

// Field - семантическое имя колонки, не зависящее от заголовков во внешней таблице.
type Field string

const (
	FieldSequenceNo  Field = "sequence_no"
	FieldPrimaryID   Field = "primary_id"
	FieldSecondaryID Field = "secondary_id"
	FieldFullName    Field = "full_name"
	FieldPhone       Field = "phone"
	FieldMarks       Field = "marks"
)

type ReferenceRecord struct {
	SequenceNo  string `json:"sequence_no" db:"sequence_no"`
	PrimaryID   string `json:"primary_id" db:"primary_id"`
	SecondaryID string `json:"secondary_id" db:"secondary_id"`
	FullName    string `json:"full_name" db:"full_name"`
	Phone       string `json:"phone" db:"phone"`
}

// ReferenceTable - эталонные записи в порядке строк источника и набор колонок,
// которые в источнике реально присутствовали.
type ReferenceTable struct {
	Columns []Field           `json:"columns"`
	Records []ReferenceRecord `json:"records"`
}

func (t ReferenceTable) HasColumn(f Field) bool {
	return hasField(t.Columns, f)
}

func hasField(columns []Field, f Field) bool {
	for _, c := range columns {
		if c == f {
			return true
		}
	}
	return false
}
