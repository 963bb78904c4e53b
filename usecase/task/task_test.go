package task

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/ministryflow/domain"
	"github.com/fastygo/ministryflow/internal/testutil"
)

func setupTasks(t *testing.T) (*UseCase, testutil.Repos) {
	t.Helper()
	repos := testutil.NewRepos(t)
	return New(repos.Tasks, nil), repos
}

func toJSON(t *testing.T, v interface{}) string {
	t.Helper()
	out, err := json.Marshal(v)
	require.NoError(t, err)
	return string(out)
}

func TestCreateTask_RoundTrip(t *testing.T) {
	uc, _ := setupTasks(t)
	ctx := context.Background()
	due, err := domain.ParseDueDate("2024-03-15")
	require.NoError(t, err)

	created, err := uc.CreateTask(ctx, "b1", "t1", Input{
		Title:       "Order chairs",
		Description: "for the retreat",
		Priority:    domain.PriorityHigh,
		DueDate:     due,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNotStarted, created.Status)
	assert.Empty(t, created.Comments)

	tasks, err := uc.ListTasks(ctx, "b1", "")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.JSONEq(t, toJSON(t, created), toJSON(t, tasks[0]))
}

func TestCreateTask_Defaults(t *testing.T) {
	uc, _ := setupTasks(t)

	task, err := uc.CreateTask(context.Background(), "b1", "t1", Input{Title: "Call pastor"})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusNotStarted, task.Status)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	assert.Nil(t, task.DueDate)
}

func TestCreateTask_Rejections(t *testing.T) {
	uc, _ := setupTasks(t)
	ctx := context.Background()

	cases := map[string]Input{
		"blank title":      {Title: "   "},
		"unknown status":   {Title: "x", Status: "archived"},
		"unknown priority": {Title: "x", Priority: "urgent"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.CreateTask(ctx, "b1", "t1", in)
			assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
		})
	}

	tasks, err := uc.ListTasks(ctx, "b1", "")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestUpdateTask_ShallowMergeIsIdempotent(t *testing.T) {
	uc, _ := setupTasks(t)
	ctx := context.Background()

	task, err := uc.CreateTask(ctx, "b1", "t1", Input{Title: "Plan", Description: "keep me"})
	require.NoError(t, err)

	title := "Plan worship night"
	priority := domain.PriorityHigh
	patch := domain.TaskPatch{Title: &title, Priority: &priority}

	once, err := uc.UpdateTask(ctx, task.ID, patch)
	require.NoError(t, err)
	twice, err := uc.UpdateTask(ctx, task.ID, patch)
	require.NoError(t, err)

	assert.Equal(t, "keep me", twice.Description)
	assert.Equal(t, domain.StatusNotStarted, twice.Status)
	once.UpdatedAt, twice.UpdatedAt = task.UpdatedAt, task.UpdatedAt
	assert.JSONEq(t, toJSON(t, once), toJSON(t, twice))

	_, err = uc.UpdateTask(ctx, "missing", patch)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestUpdateTask_DueDate(t *testing.T) {
	uc, _ := setupTasks(t)
	ctx := context.Background()

	task, err := uc.CreateTask(ctx, "b1", "t1", Input{Title: "Plan"})
	require.NoError(t, err)

	due, err := domain.ParseDueDate("2024-03-15")
	require.NoError(t, err)
	updated, err := uc.UpdateTask(ctx, task.ID, domain.TaskPatch{DueDate: due})
	require.NoError(t, err)
	require.NotNil(t, updated.DueDate)
	assert.True(t, updated.DueOn(2024, 3, 15))

	cleared, err := uc.UpdateTask(ctx, task.ID, domain.TaskPatch{ClearDueDate: true})
	require.NoError(t, err)
	assert.Nil(t, cleared.DueDate)
}

func TestMoveTask(t *testing.T) {
	uc, _ := setupTasks(t)
	ctx := context.Background()

	task, err := uc.CreateTask(ctx, "b1", "t1", Input{Title: "Plan"})
	require.NoError(t, err)

	moved, err := uc.MoveTask(ctx, task.ID, domain.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, moved.Status)

	_, err = uc.MoveTask(ctx, task.ID, "sideways")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	inProgress, err := uc.ListTasks(ctx, "b1", domain.StatusInProgress)
	require.NoError(t, err)
	assert.Len(t, inProgress, 1)
}

func TestDeleteTask(t *testing.T) {
	uc, _ := setupTasks(t)
	ctx := context.Background()

	task, err := uc.CreateTask(ctx, "b1", "t1", Input{Title: "Plan"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteTask(ctx, task.ID))
	_, err = uc.GetTask(ctx, task.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.ErrorIs(t, uc.DeleteTask(ctx, task.ID), domain.ErrTaskNotFound)
}

func TestAddComment(t *testing.T) {
	uc, _ := setupTasks(t)
	ctx := context.Background()

	task, err := uc.CreateTask(ctx, "b1", "t1", Input{Title: "Plan"})
	require.NoError(t, err)

	first, err := uc.AddComment(ctx, task.ID, " Booked the hall ", "Ana Lee")
	require.NoError(t, err)
	assert.Equal(t, "Booked the hall", first.Text)
	_, err = uc.AddComment(ctx, task.ID, "Confirmed", "Ben Park")
	require.NoError(t, err)

	_, err = uc.AddComment(ctx, task.ID, "  ", "Ana Lee")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	_, err = uc.AddComment(ctx, "missing", "hello", "Ana Lee")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	stored, err := uc.GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, stored.Comments, 2)
	assert.Equal(t, first.ID, stored.Comments[0].ID)
	assert.Equal(t, "Ben Park", stored.Comments[1].Author)
}
