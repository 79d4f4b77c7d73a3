package repository

import (
	"context"
	"sync"

	"github.com/Myself7802/aatmiya-sabha-form/internal/models"
)

// MemoryStore хранит обе таблицы в памяти процесса (локальный запуск и тесты).
type MemoryStore struct {
	mu          sync.RWMutex
	reference   []models.ReferenceRecord
	submissions []models.SubmissionRecord

	// Если задано, возвращается всеми операциями вместо результата (см. SetErr).
	err error
}

func NewMemoryStore(reference ...models.ReferenceRecord) *MemoryStore {
	return &MemoryStore{
		reference: append([]models.ReferenceRecord(nil), reference...),
	}
}

func (m *MemoryStore) SetReference(records ...models.ReferenceRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reference = append([]models.ReferenceRecord(nil), records...)
}

func (m *MemoryStore) SetErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MemoryStore) References() ReferenceRepository {
	return memoryReferences{m}
}

func (m *MemoryStore) Submissions() SubmissionRepository {
	return memorySubmissions{m}
}

type memoryReferences struct{ store *MemoryStore }

func (r memoryReferences) LoadAll(_ context.Context) (*models.ReferenceTable, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if r.store.err != nil {
		return nil, r.store.err
	}

	return &models.ReferenceTable{
		Columns: []models.Field{
			models.FieldSequenceNo,
			models.FieldPrimaryID,
			models.FieldSecondaryID,
			models.FieldFullName,
			models.FieldPhone,
		},
		Records: append([]models.ReferenceRecord{}, r.store.reference...),
	}, nil
}

type memorySubmissions struct{ store *MemoryStore }

func (r memorySubmissions) LoadAll(_ context.Context) (*models.SubmissionTable, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if r.store.err != nil {
		return nil, r.store.err
	}

	return &models.SubmissionTable{
		Columns: models.SubmissionColumns,
		Records: append([]models.SubmissionRecord{}, r.store.submissions...),
	}, nil
}

func (r memorySubmissions) Append(_ context.Context, submission *models.SubmissionRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.store.err != nil {
		return r.store.err
	}

	r.store.submissions = append(r.store.submissions, *submission)
	return nil
}
