package service

import "errors"

// Типизированные ошибки для корректного маппинга на HTTP-коды в delivery-слое.
var (
	// Ошибки валидации/состояния домена.
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("ID not found. Please check and try again")
	ErrSchemaMismatch    = errors.New("schema mismatch")
	ErrInvalidState      = errors.New("action not allowed in current state")
	ErrAlreadySubmitted  = errors.New("submission already recorded for this session")
	ErrSessionNotFound   = errors.New("session not found")
	ErrAdminRequired     = errors.New("admin access required")
	ErrInvalidPassphrase = errors.New("invalid passphrase")

	// Ошибки внешних зависимостей.
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrExportDisabled   = errors.New("export is not configured")
)
