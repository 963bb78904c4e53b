package board

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/ministryflow/domain"
	"github.com/fastygo/ministryflow/internal/testutil"
	"github.com/fastygo/ministryflow/repository"
)

func TestCreateBoard_ListedExactlyOnce(t *testing.T) {
	repos := testutil.NewRepos(t)
	uc := New(repos.Boards, repos.Tasks, nil)
	ctx := context.Background()

	first, err := uc.CreateBoard(ctx, "Sunday Service", "t1")
	require.NoError(t, err)
	second, err := uc.CreateBoard(ctx, "Retreat", "t1")
	require.NoError(t, err)
	_, err = uc.CreateBoard(ctx, "Elsewhere", "t2")
	require.NoError(t, err)

	boards, err := uc.ListBoards(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, boards, 2)
	assert.Equal(t, first.ID, boards[0].ID)
	assert.Equal(t, second.ID, boards[1].ID)
}

func TestCreateBoard_UnknownTeamAccepted(t *testing.T) {
	repos := testutil.NewRepos(t)
	uc := New(repos.Boards, repos.Tasks, nil)

	board, err := uc.CreateBoard(context.Background(), "Orphan", "no-such-team")

	require.NoError(t, err)
	assert.Equal(t, "no-such-team", board.TeamID)
}

func TestCreateBoard_BlankNameRejected(t *testing.T) {
	repos := testutil.NewRepos(t)
	uc := New(repos.Boards, repos.Tasks, nil)

	_, err := uc.CreateBoard(context.Background(), " ", "t1")

	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestListBoardSummaries_CountsTasks(t *testing.T) {
	repos := testutil.NewRepos(t)
	uc := New(repos.Boards, repos.Tasks, nil)
	ctx := context.Background()

	busy, err := uc.CreateBoard(ctx, "Busy", "t1")
	require.NoError(t, err)
	_, err = uc.CreateBoard(ctx, "Idle", "t1")
	require.NoError(t, err)
	for _, title := range []string{"a", "b", "c"} {
		require.NoError(t, repos.Tasks.Create(ctx, &domain.Task{BoardID: busy.ID, TeamID: "t1", Title: title}))
	}
	// team ids on tasks are not checked against the board's team
	require.NoError(t, repos.Tasks.Create(ctx, &domain.Task{BoardID: busy.ID, Title: "no team"}))
	require.NoError(t, repos.Tasks.Create(ctx, &domain.Task{BoardID: busy.ID, TeamID: "t2", Title: "other team"}))

	summaries, err := uc.ListBoardSummaries(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, 5, summaries[0].TaskCount)
	assert.Equal(t, 0, summaries[1].TaskCount)
}

func TestDeleteBoard_RequiresConfirmationAndCascades(t *testing.T) {
	repos := testutil.NewRepos(t)
	uc := New(repos.Boards, repos.Tasks, nil)
	ctx := context.Background()

	board, err := uc.CreateBoard(ctx, "Doomed", "t1")
	require.NoError(t, err)
	require.NoError(t, repos.Tasks.Create(ctx, &domain.Task{BoardID: board.ID, TeamID: "t1", Title: "a"}))
	require.NoError(t, repos.Tasks.Create(ctx, &domain.Task{BoardID: board.ID, TeamID: "t1", Title: "b"}))

	_, err = uc.DeleteBoard(ctx, board.ID, false)
	assert.ErrorIs(t, err, domain.ErrConfirmationRequired)
	_, err = uc.GetBoard(ctx, board.ID)
	require.NoError(t, err)

	removed, err := uc.DeleteBoard(ctx, board.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	_, err = uc.GetBoard(ctx, board.ID)
	assert.ErrorIs(t, err, domain.ErrBoardNotFound)

	left, err := repos.Tasks.List(ctx, repository.TaskFilter{BoardID: board.ID})
	require.NoError(t, err)
	assert.Empty(t, left)
}
