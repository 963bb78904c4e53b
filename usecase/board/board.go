package board

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/fastygo/ministryflow/domain"
	appLogger "github.com/fastygo/ministryflow/pkg/logger"
	"github.com/fastygo/ministryflow/repository"
)

// Summary is a board with the number of tasks it holds.
type Summary struct {
	domain.Board
	TaskCount int `json:"task_count"`
}

type UseCase struct {
	boards repository.BoardRepository
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(boards repository.BoardRepository, tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		boards: boards,
		tasks:  tasks,
		logger: logger,
	}
}

func (uc *UseCase) ListBoards(ctx context.Context, teamID string) ([]domain.Board, error) {
	return uc.boards.ListByTeam(ctx, teamID)
}

// ListBoardSummaries attaches task counts to the team's boards. Tasks are
// counted by board, whatever team id they carry.
func (uc *UseCase) ListBoardSummaries(ctx context.Context, teamID string) ([]Summary, error) {
	boards, err := uc.boards.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(boards))
	for _, b := range boards {
		tasks, err := uc.tasks.List(ctx, repository.TaskFilter{BoardID: b.ID})
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, Summary{Board: b, TaskCount: len(tasks)})
	}
	return summaries, nil
}

func (uc *UseCase) GetBoard(ctx context.Context, id string) (*domain.Board, error) {
	return uc.boards.GetByID(ctx, id)
}

// CreateBoard stores a board under teamID. The team is not looked up.
func (uc *UseCase) CreateBoard(ctx context.Context, name, teamID string) (*domain.Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Invalid("board name is required")
	}
	if teamID == "" {
		return nil, domain.Invalid("team id is required")
	}

	board := &domain.Board{Name: name, TeamID: teamID}
	if err := uc.boards.Create(ctx, board); err != nil {
		return nil, err
	}
	appLogger.WithRequestID(ctx, uc.logger).Info("board created", zap.String("board_id", board.ID), zap.String("team_id", teamID))
	return board, nil
}

// DeleteBoard removes the board and every task on it. Nothing happens
// unless confirmed is set. It returns the number of tasks removed.
func (uc *UseCase) DeleteBoard(ctx context.Context, id string, confirmed bool) (int, error) {
	if !confirmed {
		return 0, domain.ErrConfirmationRequired
	}
	removed, err := uc.boards.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	appLogger.WithRequestID(ctx, uc.logger).Info("board deleted", zap.String("board_id", id), zap.Int("tasks_removed", removed))
	return removed, nil
}
