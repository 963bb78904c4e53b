package repository

import (
	"context"

	"github.com/fastygo/ministryflow/domain"
)

type TaskFilter struct {
	BoardID string
	TeamID  string
	Status  domain.Status
}

// Matches reports whether the task passes every non-empty filter field.
func (f TaskFilter) Matches(task *domain.Task) bool {
	if task == nil {
		return false
	}
	if f.BoardID != "" && task.BoardID != f.BoardID {
		return false
	}
	if f.TeamID != "" && task.TeamID != f.TeamID {
		return false
	}
	if f.Status != "" && task.Status != f.Status {
		return false
	}
	return true
}

// MutateFunc edits a task in place inside a Modify transaction. Returning an
// error aborts the change.
type MutateFunc func(task *domain.Task) error

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	// List returns matching tasks in insertion order.
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) error
	// Modify reads, mutates and writes a task atomically.
	Modify(ctx context.Context, id string, fn MutateFunc) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}
