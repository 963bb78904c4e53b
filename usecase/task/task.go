package task

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/ministryflow/domain"
	appLogger "github.com/fastygo/ministryflow/pkg/logger"
	"github.com/fastygo/ministryflow/repository"
)

// Input carries the fields of a new task. Empty status and priority take
// their defaults.
type Input struct {
	Title       string
	Description string
	Status      domain.Status
	Priority    domain.Priority
	DueDate     *time.Time
}

type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

// ListTasks returns the board's tasks in creation order. An empty status
// matches every task.
func (uc *UseCase) ListTasks(ctx context.Context, boardID string, status domain.Status) ([]domain.Task, error) {
	if status != "" && !status.Valid() {
		return nil, domain.Invalid("unknown task status")
	}
	return uc.tasks.List(ctx, repository.TaskFilter{BoardID: boardID, Status: status})
}

func (uc *UseCase) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, id)
}

func (uc *UseCase) CreateTask(ctx context.Context, boardID, teamID string, in Input) (*domain.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.Invalid("task title is required")
	}
	if boardID == "" {
		return nil, domain.Invalid("board id is required")
	}
	if in.Status == "" {
		in.Status = domain.StatusNotStarted
	}
	if in.Priority == "" {
		in.Priority = domain.PriorityMedium
	}
	if !in.Status.Valid() {
		return nil, domain.Invalid("unknown task status")
	}
	if !in.Priority.Valid() {
		return nil, domain.Invalid("unknown task priority")
	}

	task := &domain.Task{
		BoardID:     boardID,
		TeamID:      teamID,
		Title:       title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		Comments:    []domain.Comment{},
	}
	if err := uc.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	appLogger.WithRequestID(ctx, uc.logger).Info("task created", zap.String("task_id", task.ID), zap.String("board_id", boardID))
	return task, nil
}

// UpdateTask merges patch into the stored task in one transaction.
func (uc *UseCase) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		patch.Title = &title
	}
	return uc.tasks.Modify(ctx, id, func(task *domain.Task) error {
		patch.Apply(task)
		return nil
	})
}

func (uc *UseCase) MoveTask(ctx context.Context, id string, status domain.Status) (*domain.Task, error) {
	return uc.UpdateTask(ctx, id, domain.TaskPatch{Status: &status})
}

func (uc *UseCase) DeleteTask(ctx context.Context, id string) error {
	if err := uc.tasks.Delete(ctx, id); err != nil {
		return err
	}
	appLogger.WithRequestID(ctx, uc.logger).Info("task deleted", zap.String("task_id", id))
	return nil
}

// AddComment appends a comment to the task's thread.
func (uc *UseCase) AddComment(ctx context.Context, id, text, author string) (*domain.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.Invalid("comment text is required")
	}

	comment := domain.Comment{
		ID:        domain.NewID(),
		Text:      text,
		Author:    author,
		Timestamp: time.Now().UTC(),
	}
	if _, err := uc.tasks.Modify(ctx, id, func(task *domain.Task) error {
		task.Comments = append(task.Comments, comment)
		return nil
	}); err != nil {
		return nil, err
	}
	return &comment, nil
}
