package repository

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetValues - минимальный набор операций над значениями листа.
type SheetValues interface {
	Get(ctx context.Context, tab string) ([][]interface{}, error)
	Append(ctx context.Context, tab string, row []interface{}) error
}

type sheetValues struct {
	service       *sheets.Service
	spreadsheetID string
}

// NewSheetValues авторизуется сервисным аккаунтом из credentialsFile.
func NewSheetValues(ctx context.Context, spreadsheetID, credentialsFile string) (SheetValues, error) {
	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	return &sheetValues{
		service:       service,
		spreadsheetID: spreadsheetID,
	}, nil
}

func (s *sheetValues) Get(ctx context.Context, tab string) ([][]interface{}, error) {
	resp, err := s.service.Spreadsheets.Values.
		Get(s.spreadsheetID, tabRange(tab)).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read tab %q: %w", tab, err)
	}

	return resp.Values, nil
}

func (s *sheetValues) Append(ctx context.Context, tab string, row []interface{}) error {
	values := &sheets.ValueRange{Values: [][]interface{}{row}}

	_, err := s.service.Spreadsheets.Values.
		Append(s.spreadsheetID, tabRange(tab), values).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append to tab %q: %w", tab, err)
	}

	return nil
}

// tabRange quotes a tab name as an A1 range covering the whole tab.
func tabRange(tab string) string {
	return "'" + strings.ReplaceAll(tab, "'", "''") + "'"
}
