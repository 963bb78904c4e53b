package bolt

import (
	"context"
	"time"

	"github.com/fastygo/ministryflow/domain"
	"github.com/fastygo/ministryflow/internal/infrastructure/kvstore"
	"github.com/fastygo/ministryflow/repository"
)

type taskRepository struct {
	store *kvstore.Store
}

// NewTaskRepository returns a bolt-backed implementation of TaskRepository.
func NewTaskRepository(store *kvstore.Store) repository.TaskRepository {
	return &taskRepository{store: store}
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	var task domain.Task
	var found bool
	err := r.store.View(func(tx *kvstore.Tx) error {
		var err error
		found, err = tx.Get(kvstore.CollectionTasks, id, &task)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrTaskNotFound
	}
	return &task, nil
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.store.View(func(tx *kvstore.Tx) error {
		var err error
		tasks, err = scan(tx, kvstore.CollectionTasks, filter.Matches)
		return err
	})
	return tasks, err
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
	return r.store.Update(func(tx *kvstore.Tx) error {
		return tx.Put(kvstore.CollectionTasks, task.ID, task)
	})
}

func (r *taskRepository) Modify(ctx context.Context, id string, fn repository.MutateFunc) (*domain.Task, error) {
	var task domain.Task
	err := r.store.Update(func(tx *kvstore.Tx) error {
		found, err := tx.Get(kvstore.CollectionTasks, id, &task)
		if err != nil {
			return err
		}
		if !found {
			return domain.ErrTaskNotFound
		}
		if err := fn(&task); err != nil {
			return err
		}
		task.ID = id
		task.UpdatedAt = time.Now().UTC()
		return tx.Put(kvstore.CollectionTasks, id, &task)
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	return r.store.Update(func(tx *kvstore.Tx) error {
		if !tx.Exists(kvstore.CollectionTasks, id) {
			return domain.ErrTaskNotFound
		}
		return tx.Delete(kvstore.CollectionTasks, id)
	})
}
