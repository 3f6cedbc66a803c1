package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionCloneDoesNotShareTasks(t *testing.T) {
	original := Session{
		ID:    "s1",
		Tasks: []Task{{ID: "t1", Name: "Write", DurationMinutes: 25, Kind: TaskWork}},
	}

	clone := original.Clone()
	clone.Tasks[0].Name = "Changed"

	assert.Equal(t, "Write", original.Tasks[0].Name)
	assert.Equal(t, "s1", clone.ID)
}

func TestTaskDurationAndKind(t *testing.T) {
	task := Task{DurationMinutes: 5, Kind: TaskBreak}

	assert.Equal(t, uint32(300), task.DurationSeconds())
	assert.True(t, task.IsBreak())
	assert.False(t, TaskKind("Nap").Valid())
}

func TestSessionTotalSeconds(t *testing.T) {
	session := Session{Tasks: []Task{
		{DurationMinutes: 25, Kind: TaskWork},
		{DurationMinutes: 5, Kind: TaskBreak},
	}}

	assert.Equal(t, uint64(1800), session.TotalSeconds())
	assert.Zero(t, Session{}.TotalSeconds())
}
