package team

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/ministryflow/domain"
	"github.com/fastygo/ministryflow/internal/testutil"
)

func TestCreateTeam_ListedForCreatorOnly(t *testing.T) {
	repos := testutil.NewRepos(t)
	uc := New(repos.Teams, nil)
	ctx := context.Background()

	team, err := uc.CreateTeam(ctx, "  Youth Ministry ", "u1")
	require.NoError(t, err)
	assert.Equal(t, "Youth Ministry", team.Name)
	assert.Equal(t, []string{"u1"}, team.Members)

	mine, err := uc.ListTeams(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, team.ID, mine[0].ID)

	theirs, err := uc.ListTeams(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, theirs)

	fetched, err := uc.GetTeam(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, "u1", fetched.CreatedBy)
}

func TestCreateTeam_BlankNameRejected(t *testing.T) {
	repos := testutil.NewRepos(t)
	uc := New(repos.Teams, nil)
	ctx := context.Background()

	_, err := uc.CreateTeam(ctx, "   ", "u1")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	teams, err := uc.ListTeams(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, teams)

	_, err = uc.GetTeam(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrTeamNotFound)
}
