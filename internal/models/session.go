package models

import "time"

type WorkflowState string

const (
	StateAwaitingID WorkflowState = "awaiting_id"
	StateVerified   WorkflowState = "verified"
	StateSubmitted  WorkflowState = "submitted"
)

func (s WorkflowState) String() string {
	return string(s)
}

// Session - состояние одного пользователя: шаги проверки и отправки плюс флаг администратора.
type Session struct {
	ID         string
	State      WorkflowState
	EnteredID  string
	Matched    *ReferenceRecord
	Marks      string
	IsAdmin    bool
	CreatedAt  time.Time
	LastSeenAt time.Time
}

func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:         id,
		State:      StateAwaitingID,
		CreatedAt:  now,
		LastSeenAt: now,
	}
}
