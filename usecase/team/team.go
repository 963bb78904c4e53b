package team

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/fastygo/ministryflow/domain"
	appLogger "github.com/fastygo/ministryflow/pkg/logger"
	"github.com/fastygo/ministryflow/repository"
)

type UseCase struct {
	teams  repository.TeamRepository
	logger *zap.Logger
}

func New(teams repository.TeamRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		teams:  teams,
		logger: logger,
	}
}

// ListTeams returns the teams the user belongs to, oldest first.
func (uc *UseCase) ListTeams(ctx context.Context, userID string) ([]domain.Team, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	return uc.teams.ListByMember(ctx, userID)
}

func (uc *UseCase) GetTeam(ctx context.Context, id string) (*domain.Team, error) {
	return uc.teams.GetByID(ctx, id)
}

// CreateTeam stores a team whose only member is its creator.
func (uc *UseCase) CreateTeam(ctx context.Context, name, creatorID string) (*domain.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Invalid("team name is required")
	}
	if creatorID == "" {
		return nil, domain.ErrUnauthorized
	}

	team := &domain.Team{
		Name:      name,
		CreatedBy: creatorID,
		Members:   []string{creatorID},
	}
	if err := uc.teams.Create(ctx, team); err != nil {
		return nil, err
	}
	appLogger.WithRequestID(ctx, uc.logger).Info("team created", zap.String("team_id", team.ID), zap.String("created_by", creatorID))
	return team, nil
}
