package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Myself7802/aatmiya-sabha-form/internal/models"
	"github.com/Myself7802/aatmiya-sabha-form/internal/sheet"
)

type fakeSheetValues struct {
	tabs   map[string][][]interface{}
	getErr error
	appErr error
	gets   int
}

func newFakeSheetValues() *fakeSheetValues {
	return &fakeSheetValues{tabs: map[string][][]interface{}{}}
}

func (f *fakeSheetValues) Get(_ context.Context, tab string) ([][]interface{}, error) {
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.tabs[tab], nil
}

func (f *fakeSheetValues) Append(_ context.Context, tab string, row []interface{}) error {
	if f.appErr != nil {
		return f.appErr
	}
	f.tabs[tab] = append(f.tabs[tab], row)
	return nil
}

func TestSheetsReferenceRepositoryLoadAll(t *testing.T) {
	values := newFakeSheetValues()
	values.tabs["Sheet1"] = [][]interface{}{
		{"NO", "ID Number", "Name", "Phone Number"},
		{float64(1), float64(1001), "Alice", float64(5550101)},
	}
	repo := NewSheetsReferenceRepository(values, "Sheet1", sheet.ReferenceSchema, zerolog.Nop())

	table, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, table.Records, 1)
	assert.Equal(t, "1001", table.Records[0].PrimaryID)
	assert.True(t, table.HasColumn(models.FieldPrimaryID))
	assert.False(t, table.HasColumn(models.FieldSecondaryID))
}

func TestSheetsReferenceRepositoryErrors(t *testing.T) {
	values := newFakeSheetValues()
	values.tabs["Sheet1"] = [][]interface{}{{"Name", "Phone Number"}}
	repo := NewSheetsReferenceRepository(values, "Sheet1", sheet.ReferenceSchema, zerolog.Nop())

	_, err := repo.LoadAll(context.Background())
	assert.ErrorIs(t, err, sheet.ErrMissingColumn)

	values.getErr = errors.New("connection refused")
	_, err = repo.LoadAll(context.Background())
	assert.EqualError(t, err, "connection refused")
}

func TestSheetsSubmissionRepositoryAppendTwice(t *testing.T) {
	values := newFakeSheetValues()
	repo := NewSheetsSubmissionRepository(values, "Sheet2", sheet.SubmissionSchema, zerolog.Nop())
	ctx := context.Background()

	sub := &models.SubmissionRecord{SequenceNo: "1", PrimaryID: "A1", FullName: "Alice", Phone: "555", Marks: "70"}
	require.NoError(t, repo.Append(ctx, sub))
	require.NoError(t, repo.Append(ctx, sub))

	assert.Equal(t, []interface{}{"1", "A1", "", "Alice", "555", "70"}, values.tabs["Sheet2"][0])

	table, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, table.Records, 2)
	assert.Equal(t, table.Records[0], table.Records[1])

	again, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, table, again)
	assert.Equal(t, 2, values.gets, "submissions are re-read on every call")
}

func TestSheetsSubmissionRepositoryAppendError(t *testing.T) {
	values := newFakeSheetValues()
	values.appErr = errors.New("quota exceeded")
	repo := NewSheetsSubmissionRepository(values, "Sheet2", sheet.SubmissionSchema, zerolog.Nop())

	err := repo.Append(context.Background(), &models.SubmissionRecord{PrimaryID: "A1"})
	assert.EqualError(t, err, "quota exceeded")
	assert.Empty(t, values.tabs["Sheet2"])
}

func TestTabRange(t *testing.T) {
	assert.Equal(t, "'Sheet1'", tabRange("Sheet1"))
	assert.Equal(t, "'Members'' List'", tabRange("Members' List"))
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(models.ReferenceRecord{PrimaryID: "A1", FullName: "Alice"})
	ctx := context.Background()

	ref, err := store.References().LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, ref.Records, 1)

	subs := store.Submissions()
	require.NoError(t, subs.Append(ctx, &models.SubmissionRecord{PrimaryID: "A1"}))
	require.NoError(t, subs.Append(ctx, &models.SubmissionRecord{PrimaryID: "A1"}))

	table, err := subs.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, table.Records, 2)

	store.SetErr(errors.New("down"))
	_, err = subs.LoadAll(ctx)
	assert.Error(t, err)
	assert.Error(t, subs.Append(ctx, &models.SubmissionRecord{PrimaryID: "B2"}))
}
