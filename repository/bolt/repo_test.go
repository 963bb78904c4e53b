package bolt

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/ministryflow/domain"
	"github.com/fastygo/ministryflow/internal/infrastructure/kvstore"
	"github.com/fastygo/ministryflow/repository"
)

func openStore(t *testing.T) *kvstore.Store {
	t.Helper()
	store, err := kvstore.Open(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestUserRepository_CreateEnforcesUniqueEmail(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	repo := NewUserRepository(store)

	first := &domain.User{Email: "Ana@Example.com", FirstName: "Ana"}
	require.NoError(t, repo.Create(ctx, first))
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "ana@example.com", first.Email)

	err := repo.Create(ctx, &domain.User{Email: " ana@example.com "})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

	found, err := repo.GetByEmail(ctx, "ANA@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	index, err := store.Get(kvstore.CollectionUserEmails)
	require.NoError(t, err)
	require.Len(t, index, 1)
	assert.Equal(t, "ana@example.com", index[0].Key)
	assert.JSONEq(t, `"`+first.ID+`"`, string(index[0].Value))
}

func TestUserRepository_UpdateMovesEmailIndex(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openStore(t))

	ana := &domain.User{Email: "ana@example.com"}
	ben := &domain.User{Email: "ben@example.com"}
	require.NoError(t, repo.Create(ctx, ana))
	require.NoError(t, repo.Create(ctx, ben))

	ben.Email = "ana@example.com"
	assert.ErrorIs(t, repo.Update(ctx, ben), domain.ErrDuplicateEmail)

	ana.Email = "ana.new@example.com"
	require.NoError(t, repo.Update(ctx, ana))

	_, err := repo.GetByEmail(ctx, "ana@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	found, err := repo.GetByEmail(ctx, "ana.new@example.com")
	require.NoError(t, err)
	assert.Equal(t, ana.ID, found.ID)

	err = repo.Update(ctx, &domain.User{ID: "missing", Email: "x@example.com"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestTeamRepository_ListByMemberKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewTeamRepository(openStore(t))

	for _, name := range []string{"Youth", "Worship", "Outreach"} {
		require.NoError(t, repo.Create(ctx, &domain.Team{Name: name, CreatedBy: "u1"}))
	}
	require.NoError(t, repo.Create(ctx, &domain.Team{Name: "Other", CreatedBy: "u2"}))

	teams, err := repo.ListByMember(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, teams, 3)
	assert.Equal(t, "Youth", teams[0].Name)
	assert.Equal(t, "Worship", teams[1].Name)
	assert.Equal(t, "Outreach", teams[2].Name)
	assert.Equal(t, []string{"u1"}, teams[0].Members)
}

func TestBoardRepository_DeleteCascadesToTasks(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	boards := NewBoardRepository(store)
	tasks := NewTaskRepository(store)

	doomed := &domain.Board{Name: "Doomed", TeamID: "t1"}
	kept := &domain.Board{Name: "Kept", TeamID: "t1"}
	require.NoError(t, boards.Create(ctx, doomed))
	require.NoError(t, boards.Create(ctx, kept))

	var doomedTasks []string
	for _, title := range []string{"a", "b"} {
		task := &domain.Task{BoardID: doomed.ID, TeamID: "t1", Title: title}
		require.NoError(t, tasks.Create(ctx, task))
		doomedTasks = append(doomedTasks, task.ID)
	}
	survivor := &domain.Task{BoardID: kept.ID, TeamID: "t1", Title: "c"}
	require.NoError(t, tasks.Create(ctx, survivor))

	removed, err := boards.Delete(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	for _, id := range doomedTasks {
		_, err := tasks.GetByID(ctx, id)
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	}
	_, err = tasks.GetByID(ctx, survivor.ID)
	assert.NoError(t, err)

	_, err = boards.Delete(ctx, doomed.ID)
	assert.ErrorIs(t, err, domain.ErrBoardNotFound)
}

func TestTaskRepository_ModifyAndFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository(openStore(t))

	task := &domain.Task{BoardID: "b1", Title: "Plan", Status: domain.StatusNotStarted, Priority: domain.PriorityMedium}
	require.NoError(t, repo.Create(ctx, task))
	require.NoError(t, repo.Create(ctx, &domain.Task{BoardID: "b2", Title: "Other", Status: domain.StatusDone}))

	updated, err := repo.Modify(ctx, task.ID, func(t *domain.Task) error {
		t.Status = domain.StatusDone
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, updated.Status)
	assert.Equal(t, "Plan", updated.Title)

	done, err := repo.List(ctx, repository.TaskFilter{BoardID: "b1", Status: domain.StatusDone})
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, task.ID, done[0].ID)

	_, err = repo.Modify(ctx, task.ID, func(t *domain.Task) error {
		t.Title = "ignored"
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)
	stored, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Plan", stored.Title)

	_, err = repo.Modify(ctx, "missing", func(*domain.Task) error { return nil })
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "missing"), domain.ErrTaskNotFound)
}

func TestSessionRepository_PurgeExpired(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(openStore(t), time.Hour)
	now := time.Now().UTC()

	require.NoError(t, repo.Save(ctx, &domain.Session{ID: "live", UserID: "u1", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, repo.Save(ctx, &domain.Session{ID: "old", UserID: "u1", CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)}))

	purged, err := repo.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	_, err = repo.Get(ctx, "old")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = repo.Get(ctx, "live")
	assert.NoError(t, err)

	require.NoError(t, repo.Extend(ctx, "live", 60))
	assert.ErrorIs(t, repo.Extend(ctx, "old", 60), domain.ErrSessionNotFound)
}
