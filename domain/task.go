package domain

import (
	"strings"
	"time"
)

// Status is the kanban column a task sits in.
type Status string

const (
	StatusNotStarted Status = "not-started"
	StatusInProgress Status = "in-progress"
	StatusOnHold     Status = "on-hold"
	StatusBlocked    Status = "blocked"
	StatusDone       Status = "done"
)

// Statuses lists every status in board column order.
var Statuses = []Status{
	StatusNotStarted,
	StatusInProgress,
	StatusOnHold,
	StatusBlocked,
	StatusDone,
}

func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusOnHold, StatusBlocked, StatusDone:
		return true
	}
	return false
}

// Label renders "in-progress" as "In Progress".
func (s Status) Label() string {
	parts := strings.Split(string(s), "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// DueDateLayout is the date-only form accepted for due dates.
const DueDateLayout = "2006-01-02"

// Task is a unit of work on a board.
type Task struct {
	ID          string     `json:"id"`
	BoardID     string     `json:"board_id"`
	TeamID      string     `json:"team_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Comments    []Comment  `json:"comments"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (t *Task) IsDone() bool {
	return t != nil && t.Status == StatusDone
}

// DueOn reports whether the due date falls on the same calendar day as day.
// The time of day is ignored.
func (t *Task) DueOn(year int, month time.Month, day int) bool {
	if t == nil || t.DueDate == nil {
		return false
	}
	y, m, d := t.DueDate.Date()
	return y == year && m == month && d == day
}

// Comment is embedded in its task and never addressed on its own.
type Comment struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
}

// TaskPatch is a shallow update: nil fields keep the stored value.
type TaskPatch struct {
	Title        *string
	Description  *string
	Status       *Status
	Priority     *Priority
	DueDate      *time.Time
	ClearDueDate bool
}

// Validate rejects values that would break task invariants.
func (p TaskPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return Invalid("task title is required")
	}
	if p.Status != nil && !p.Status.Valid() {
		return Invalid("unknown task status")
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return Invalid("unknown task priority")
	}
	return nil
}

// Apply merges the patch into t. Applying the same patch twice yields the same task.
func (p TaskPatch) Apply(t *Task) {
	if t == nil {
		return
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	switch {
	case p.ClearDueDate:
		t.DueDate = nil
	case p.DueDate != nil:
		due := *p.DueDate
		t.DueDate = &due
	}
}

// ParseDueDate accepts either a bare date or an RFC3339 timestamp.
// An empty string yields nil.
func ParseDueDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if parsed, err := time.Parse(DueDateLayout, value); err == nil {
		return &parsed, nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, WrapError(ErrCodeInvalid, "invalid due date", err)
	}
	return &parsed, nil
}
