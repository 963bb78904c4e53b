package bolt

import (
	"context"
	"time"

	"github.com/fastygo/ministryflow/domain"
	"github.com/fastygo/ministryflow/internal/infrastructure/kvstore"
	"github.com/fastygo/ministryflow/repository"
)

type boardRepository struct {
	store *kvstore.Store
}

func NewBoardRepository(store *kvstore.Store) repository.BoardRepository {
	return &boardRepository{store: store}
}

func (r *boardRepository) GetByID(ctx context.Context, id string) (*domain.Board, error) {
	var board domain.Board
	var found bool
	err := r.store.View(func(tx *kvstore.Tx) error {
		var err error
		found, err = tx.Get(kvstore.CollectionBoards, id, &board)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrBoardNotFound
	}
	return &board, nil
}

func (r *boardRepository) ListByTeam(ctx context.Context, teamID string) ([]domain.Board, error) {
	var boards []domain.Board
	err := r.store.View(func(tx *kvstore.Tx) error {
		var err error
		boards, err = scan(tx, kvstore.CollectionBoards, func(b *domain.Board) bool {
			return b.TeamID == teamID
		})
		return err
	})
	return boards, err
}

func (r *boardRepository) Create(ctx context.Context, board *domain.Board) error {
	if board == nil {
		return domain.ErrInvalidPayload
	}
	if board.ID == "" {
		board.ID = domain.NewID()
	}
	if board.CreatedAt.IsZero() {
		board.CreatedAt = time.Now().UTC()
	}
	return r.store.Update(func(tx *kvstore.Tx) error {
		return tx.Put(kvstore.CollectionBoards, board.ID, board)
	})
}

func (r *boardRepository) Delete(ctx context.Context, id string) (int, error) {
	var removed int
	err := r.store.Update(func(tx *kvstore.Tx) error {
		if !tx.Exists(kvstore.CollectionBoards, id) {
			return domain.ErrBoardNotFound
		}
		if err := tx.Delete(kvstore.CollectionBoards, id); err != nil {
			return err
		}

		tasks, err := scan(tx, kvstore.CollectionTasks, func(t *domain.Task) bool {
			return t.BoardID == id
		})
		if err != nil {
			return err
		}
		// Keys are collected first; deleting under an open cursor skips records.
		for _, task := range tasks {
			if err := tx.Delete(kvstore.CollectionTasks, task.ID); err != nil {
				return err
			}
		}
		removed = len(tasks)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
