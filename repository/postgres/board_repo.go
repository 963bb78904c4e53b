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

type boardRepository struct {
	db DB
}

func NewBoardRepository(db DB) repository.BoardRepository {
	return &boardRepository{db: db}
}

func (r *boardRepository) GetByID(ctx context.Context, id string) (*domain.Board, error) {
	var board domain.Board
	err := r.db.QueryRow(ctx, `
		SELECT id, name, team_id, created_at
		FROM boards WHERE id = $1
	`, id).Scan(&board.ID, &board.Name, &board.TeamID, &board.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBoardNotFound
		}
		return nil, err
	}
	return &board, nil
}

func (r *boardRepository) ListByTeam(ctx context.Context, teamID string) ([]domain.Board, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, team_id, created_at
		FROM boards WHERE team_id = $1
		ORDER BY created_at, id
	`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	boards := []domain.Board{}
	for rows.Next() {
		var board domain.Board
		if err := rows.Scan(&board.ID, &board.Name, &board.TeamID, &board.CreatedAt); err != nil {
			return nil, err
		}
		boards = append(boards, board)
	}
	return boards, rows.Err()
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
	_, err := r.db.Exec(ctx, `
		INSERT INTO boards (id, name, team_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, board.ID, board.Name, board.TeamID, board.CreatedAt)
	if err != nil {
		return fmt.Errorf("create board: %w", err)
	}
	return nil
}

func (r *boardRepository) Delete(ctx context.Context, id string) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM boards WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete board: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return 0, domain.ErrBoardNotFound
	}

	tag, err = tx.Exec(ctx, `DELETE FROM tasks WHERE board_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete board tasks: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
