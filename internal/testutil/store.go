package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fastygo/ministryflow/internal/infrastructure/kvstore"
	"github.com/fastygo/ministryflow/repository"
	boltRepo "github.com/fastygo/ministryflow/repository/bolt"
)

// Repos bundles bolt repositories sharing one temporary store.
type Repos struct {
	Store    *kvstore.Store
	Users    repository.UserRepository
	Teams    repository.TeamRepository
	Boards   repository.BoardRepository
	Tasks    repository.TaskRepository
	Sessions boltRepo.SessionStore
}

// OpenStore opens a bolt store under t.TempDir and closes it on cleanup.
func OpenStore(t *testing.T) *kvstore.Store {
	t.Helper()
	store, err := kvstore.Open(filepath.Join(t.TempDir(), "ministryflow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func NewRepos(t *testing.T) Repos {
	t.Helper()
	store := OpenStore(t)
	return Repos{
		Store:    store,
		Users:    boltRepo.NewUserRepository(store),
		Teams:    boltRepo.NewTeamRepository(store),
		Boards:   boltRepo.NewBoardRepository(store),
		Tasks:    boltRepo.NewTaskRepository(store),
		Sessions: boltRepo.NewSessionRepository(store, time.Hour),
	}
}
