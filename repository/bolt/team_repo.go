package bolt

import (
	"context"
	"time"

	"github.com/fastygo/ministryflow/domain"
	"github.com/fastygo/ministryflow/internal/infrastructure/kvstore"
	"github.com/fastygo/ministryflow/repository"
)

type teamRepository struct {
	store *kvstore.Store
}

func NewTeamRepository(store *kvstore.Store) repository.TeamRepository {
	return &teamRepository{store: store}
}

func (r *teamRepository) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	var team domain.Team
	var found bool
	err := r.store.View(func(tx *kvstore.Tx) error {
		var err error
		found, err = tx.Get(kvstore.CollectionTeams, id, &team)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrTeamNotFound
	}
	return &team, nil
}

func (r *teamRepository) ListByMember(ctx context.Context, userID string) ([]domain.Team, error) {
	var teams []domain.Team
	err := r.store.View(func(tx *kvstore.Tx) error {
		var err error
		teams, err = scan(tx, kvstore.CollectionTeams, func(t *domain.Team) bool {
			return t.HasMember(userID)
		})
		return err
	})
	return teams, err
}

func (r *teamRepository) Create(ctx context.Context, team *domain.Team) error {
	if team == nil {
		return domain.ErrInvalidPayload
	}
	if team.ID == "" {
		team.ID = domain.NewID()
	}
	if team.CreatedAt.IsZero() {
		team.CreatedAt = time.Now().UTC()
	}
	if !team.HasMember(team.CreatedBy) {
		team.Members = append([]string{team.CreatedBy}, team.Members...)
	}
	return r.store.Update(func(tx *kvstore.Tx) error {
		return tx.Put(kvstore.CollectionTeams, team.ID, team)
	})
}
