package repository

import (
	"context"

	"github.com/fastygo/ministryflow/domain"
)

type TeamRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Team, error)
	// ListByMember returns teams in insertion order.
	ListByMember(ctx context.Context, userID string) ([]domain.Team, error)
	Create(ctx context.Context, team *domain.Team) error
}

type BoardRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Board, error)
	// ListByTeam returns boards in insertion order.
	ListByTeam(ctx context.Context, teamID string) ([]domain.Board, error)
	Create(ctx context.Context, board *domain.Board) error
	// Delete removes the board and every task on it in one transaction and
	// reports how many tasks were removed.
	Delete(ctx context.Context, id string) (int, error)
}
