package models

import (
	"time"

	"github.com/google/uuid"
)

// WebSocket message types
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type ProgressRecorded struct {
	JobID      uuid.UUID `json:"job_id"`
	SessionID  uuid.UUID `json:"session_id"`
	CategoryID string    `json:"category_id"`
	Recorded   int       `json:"recorded"`
	Correct    int       `json:"correct"`
	RecordedAt time.Time `json:"recorded_at"`
}

type ErrorEvent struct {
	JobID        uuid.UUID `json:"job_id"`
	ErrorCode    string    `json:"error_code"`
	ErrorMessage string    `json:"error_message"`
}

// API Error response
type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}
