package models

import "time"

// Data Transfer Objects

type VerifyRequest struct {
	IDNumber string `json:"id_number" validate:"required,max=128"`
}

type SubmitRequest struct {
	Marks string `json:"marks" validate:"required,max=64"`
}

type AdminLoginRequest struct {
	Passphrase string `json:"passphrase" validate:"required"`
}

type ExportRequest struct {
	Kind string `json:"kind" validate:"required,oneof=submissions pending"`
}

type SessionResponse struct {
	ID        string           `json:"session_id"`
	State     WorkflowState    `json:"state"`
	EnteredID string           `json:"entered_id,omitempty"`
	Record    *ReferenceRecord `json:"record,omitempty"`
	Marks     string           `json:"marks,omitempty"`
	IsAdmin   bool             `json:"is_admin"`
	Message   string           `json:"message,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

type SubmissionsResponse struct {
	Submissions []SubmissionRecord `json:"submissions"`
	Total       int                `json:"total"`
}

type PendingResponse struct {
	Pending        []ReferenceRecord `json:"pending"`
	Total          int               `json:"total"`
	ReferenceTotal int               `json:"reference_total"`
}
