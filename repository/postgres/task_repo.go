package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fastygo/ministryflow/domain"
	"github.com/fastygo/ministryflow/repository"
)

type taskRepository struct {
	db DB
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(db DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, board_id, team_id, title, description, status, priority, due_date, comments, created_at, updated_at`

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	row := r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	return scanTask(row)
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE ($1 = '' OR board_id = $1)
	  AND ($2 = '' OR team_id = $2)
	  AND ($3 = '' OR status = $3)
	ORDER BY created_at, id
	`
	rows, err := r.db.Query(ctx, query, filter.BoardID, filter.TeamID, string(filter.Status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = domain.NewID()
	}
	now := time.Now().UTC()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now
	if task.Comments == nil {
		task.Comments = []domain.Comment{}
	}

	const query = `
	INSERT INTO tasks (id, board_id, team_id, title, description, status, priority, due_date, comments, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	if _, err := r.db.Exec(ctx, query,
		task.ID,
		task.BoardID,
		task.TeamID,
		task.Title,
		task.Description,
		string(task.Status),
		string(task.Priority),
		dueDay(task.DueDate),
		marshalComments(task.Comments),
		task.CreatedAt,
		task.UpdatedAt,
	); err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *taskRepository) Modify(ctx context.Context, id string, fn repository.MutateFunc) (*domain.Task, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	task, err := scanTask(tx.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, err
	}
	if err := fn(task); err != nil {
		return nil, err
	}
	task.ID = id
	task.UpdatedAt = time.Now().UTC()

	const query = `
	UPDATE tasks
	SET title = $2,
		description = $3,
		status = $4,
		priority = $5,
		due_date = $6,
		comments = $7,
		updated_at = $8
	WHERE id = $1
	`
	if _, err := tx.Exec(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		string(task.Status),
		string(task.Priority),
		dueDay(task.DueDate),
		marshalComments(task.Comments),
		task.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return task, nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func scanTask(row scanner) (*domain.Task, error) {
	var task domain.Task
	var (
		status   string
		priority string
		due      *time.Time
		comments []byte
	)

	if err := row.Scan(
		&task.ID,
		&task.BoardID,
		&task.TeamID,
		&task.Title,
		&task.Description,
		&status,
		&priority,
		&due,
		&comments,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task.Status = domain.Status(status)
	task.Priority = domain.Priority(priority)
	task.DueDate = scannedDueDay(due)
	task.Comments = unmarshalComments(comments)
	return &task, nil
}
