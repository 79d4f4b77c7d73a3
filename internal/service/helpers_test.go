package service

import (
	"context"
	"sync"

	"github.com/Myself7802/aatmiya-sabha-form/internal/models"
)

type countingReferenceRepo struct {
	mu    sync.Mutex
	table *models.ReferenceTable
	err   error
	calls int
}

func newCountingReferenceRepo(records ...models.ReferenceRecord) *countingReferenceRepo {
	return &countingReferenceRepo{table: referenceTable(records...)}
}

func (r *countingReferenceRepo) LoadAll(_ context.Context) (*models.ReferenceTable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.table, nil
}

func (r *countingReferenceRepo) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

type fakePublisher struct {
	mu     sync.Mutex
	events []models.SubmissionCreatedEvent
	err    error
}

func (p *fakePublisher) PublishSubmissionCreated(_ context.Context, event *models.SubmissionCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, *event)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func referenceTable(records ...models.ReferenceRecord) *models.ReferenceTable {
	return &models.ReferenceTable{
		Columns: []models.Field{
			models.FieldSequenceNo,
			models.FieldPrimaryID,
			models.FieldSecondaryID,
			models.FieldFullName,
			models.FieldPhone,
		},
		Records: records,
	}
}

func submissionTable(records ...models.SubmissionRecord) *models.SubmissionTable {
	return &models.SubmissionTable{
		Columns: models.SubmissionColumns,
		Records: records,
	}
}
