package models

import "time"

// SubmissionColumns - фиксированный порядок колонок строки заявки.
var SubmissionColumns = []Field{
	FieldSequenceNo,
	FieldPrimaryID,
	FieldSecondaryID,
	FieldFullName,
	FieldPhone,
	FieldMarks,
}

type SubmissionRecord struct {
	SequenceNo  string `json:"sequence_no" db:"sequence_no"`
	PrimaryID   string `json:"primary_id" db:"primary_id"`
	SecondaryID string `json:"secondary_id" db:"secondary_id"`
	FullName    string `json:"full_name" db:"full_name"`
	Phone       string `json:"phone" db:"phone"`
	Marks       string `json:"marks" db:"marks"`
}

// NewSubmission копирует поля найденной эталонной записи и добавляет оценку.
func NewSubmission(ref ReferenceRecord, marks string) SubmissionRecord {
	return SubmissionRecord{
		SequenceNo:  ref.SequenceNo,
		PrimaryID:   ref.PrimaryID,
		SecondaryID: ref.SecondaryID,
		FullName:    ref.FullName,
		Phone:       ref.Phone,
		Marks:       marks,
	}
}

// Values возвращает значения в порядке SubmissionColumns.
func (s SubmissionRecord) Values() []string {
	return []string{s.SequenceNo, s.PrimaryID, s.SecondaryID, s.FullName, s.Phone, s.Marks}
}

type SubmissionTable struct {
	Columns []Field            `json:"columns"`
	Records []SubmissionRecord `json:"records"`
}

func (t SubmissionTable) HasColumn(f Field) bool {
	return hasField(t.Columns, f)
}

type SubmissionCreatedEvent struct {
	PrimaryID  string `json:"primary_id"`
	SequenceNo string `json:"sequence_no"`
	FullName   string `json:"full_name"`
	Marks      string `json:"marks"`
	SessionID  string `json:"session_id"`
	Timestamp  int64  `json:"timestamp"`
}

type ExportKind string

const (
	ExportSubmissions ExportKind = "submissions"
	ExportPending     ExportKind = "pending"
)

type ExportResult struct {
	Kind      ExportKind `json:"kind"`
	Bucket    string     `json:"bucket"`
	ObjectKey string     `json:"object_key"`
	Rows      int        `json:"rows"`
	CreatedAt time.Time  `json:"created_at"`
}
