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

type teamRepository struct {
	db DB
}

func NewTeamRepository(db DB) repository.TeamRepository {
	return &teamRepository{db: db}
}

const teamColumns = `id, name, created_by, members, created_at`

func (r *teamRepository) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	row := r.db.QueryRow(ctx, `SELECT `+teamColumns+` FROM teams WHERE id = $1`, id)
	team, err := scanTeam(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTeamNotFound
	}
	return team, err
}

func (r *teamRepository) ListByMember(ctx context.Context, userID string) ([]domain.Team, error) {
	const query = `
	SELECT ` + teamColumns + `
	FROM teams
	WHERE $1 = ANY(members)
	ORDER BY created_at, id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := []domain.Team{}
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *team)
	}
	return teams, rows.Err()
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

	const query = `
	INSERT INTO teams (id, name, created_by, members, created_at)
	VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.Exec(ctx, query, team.ID, team.Name, team.CreatedBy, team.Members, team.CreatedAt); err != nil {
		return fmt.Errorf("create team: %w", err)
	}
	return nil
}

func scanTeam(row scanner) (*domain.Team, error) {
	var team domain.Team
	if err := row.Scan(&team.ID, &team.Name, &team.CreatedBy, &team.Members, &team.CreatedAt); err != nil {
		return nil, err
	}
	return &team, nil
}
