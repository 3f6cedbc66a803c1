package model

import "time"

// TaskKind tags a task as focused work or a break.
type TaskKind string

const (
	TaskWork  TaskKind = "Work"
	TaskBreak TaskKind = "Break"
)

// Valid reports whether the kind is one of the known values.
func (kind TaskKind) Valid() bool {
	return kind == TaskWork || kind == TaskBreak
}

// Task is a single timed segment within a session.
type Task struct {
	ID              string
	Name            string
	DurationMinutes uint32
	Kind            TaskKind
}

// DurationSeconds returns the task length in seconds.
func (task Task) DurationSeconds() uint32 {
	return task.DurationMinutes * 60
}

// IsBreak reports whether the task is a break.
func (task Task) IsBreak() bool {
	return task.Kind == TaskBreak
}

// Session is an ordered list of tasks that make up one work cycle.
type Session struct {
	ID        string
	Name      string
	Tasks     []Task
	CreatedAt time.Time
}

// Clone returns a copy that shares no backing storage with the receiver.
func (session Session) Clone() Session {
	clone := session
	clone.Tasks = append([]Task(nil), session.Tasks...)
	return clone
}

// TotalSeconds returns the sum of all task durations.
func (session Session) TotalSeconds() uint64 {
	var total uint64
	for _, task := range session.Tasks {
		total += uint64(task.DurationSeconds())
	}
	return total
}
