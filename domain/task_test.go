package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_LabelAndValid(t *testing.T) {
	labels := map[Status]string{
		StatusNotStarted: "Not Started",
		StatusInProgress: "In Progress",
		StatusOnHold:     "On Hold",
		StatusBlocked:    "Blocked",
		StatusDone:       "Done",
	}
	for _, s := range Statuses {
		assert.True(t, s.Valid(), s)
		assert.Equal(t, labels[s], s.Label())
	}
	assert.False(t, Status("archived").Valid())
	assert.False(t, Priority("urgent").Valid())
	assert.True(t, PriorityHigh.Valid())
}

func TestTaskPatch_ApplyIsIdempotent(t *testing.T) {
	title := "Rehearsal"
	status := StatusInProgress
	due := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	patch := TaskPatch{Title: &title, Status: &status, DueDate: &due}

	task := &Task{Title: "Plan", Description: "keep", Status: StatusNotStarted, Priority: PriorityLow}
	patch.Apply(task)
	once := *task
	patch.Apply(task)

	assert.Equal(t, once, *task)
	assert.Equal(t, "Rehearsal", task.Title)
	assert.Equal(t, "keep", task.Description)
	assert.Equal(t, PriorityLow, task.Priority)
	require.NotNil(t, task.DueDate)
	assert.True(t, task.DueOn(2024, time.March, 15))

	due = due.AddDate(0, 0, 1)
	assert.True(t, task.DueOn(2024, time.March, 15), "patch value is copied")

	TaskPatch{ClearDueDate: true}.Apply(task)
	assert.Nil(t, task.DueDate)
	assert.False(t, task.DueOn(2024, time.March, 15))
}

func TestTaskPatch_Validate(t *testing.T) {
	blank := "  "
	bad := Status("archived")
	urgent := Priority("urgent")

	assert.NoError(t, TaskPatch{}.Validate())
	assert.ErrorIs(t, TaskPatch{Title: &blank}.Validate(), ErrInvalidPayload)
	assert.ErrorIs(t, TaskPatch{Status: &bad}.Validate(), ErrInvalidPayload)
	assert.ErrorIs(t, TaskPatch{Priority: &urgent}.Validate(), ErrInvalidPayload)
}

func TestParseDueDate(t *testing.T) {
	due, err := ParseDueDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), *due)

	due, err = ParseDueDate("2024-03-15T23:30:00-05:00")
	require.NoError(t, err)
	assert.True(t, (&Task{DueDate: due}).DueOn(2024, time.March, 15))

	due, err = ParseDueDate(" ")
	require.NoError(t, err)
	assert.Nil(t, due)

	_, err = ParseDueDate("15/03/2024")
	assert.True(t, IsDomainError(err, ErrCodeInvalid))
}
