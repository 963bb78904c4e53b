package transport

import (
	"encoding/json"
	"time"
)

// Envelope is the standard API response wrapper used for both success and error payloads.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
		Meta:   meta,
	}
}

// NewError returns an error envelope with optional metadata.
func NewError(code string, err interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "error",
		Code:   code,
		Error:  err,
		Meta:   meta,
	}
}

// ListMeta accompanies collection payloads.
type ListMeta struct {
	Count int `json:"count"`
}

// NewList returns a success envelope for a collection.
func NewList(items interface{}, count int) Envelope {
	return NewSuccess(items, ListMeta{Count: count})
}

// ErrorMeta lets clients quote the failing request.
type ErrorMeta struct {
	RequestID string `json:"request_id"`
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}

// AuthResponse is returned by register, login and refresh.
type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	SessionID string      `json:"session_id"`
	User      interface{} `json:"user,omitempty"`
}

// DeleteBoardResponse reports how many tasks went with the board.
type DeleteBoardResponse struct {
	BoardID      string `json:"board_id"`
	TasksRemoved int    `json:"tasks_removed"`
}
