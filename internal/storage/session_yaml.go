package storage

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/juandisay/GaWe/internal/core/model"
)

// ErrInvalidSession reports a session file the engine cannot run.
var ErrInvalidSession = errors.New("invalid session")

type yamlSession struct {
	ID        string     `yaml:"id"`
	Name      string     `yaml:"name"`
	CreatedAt *time.Time `yaml:"created_at"`
	Tasks     []yamlTask `yaml:"tasks"`
}

type yamlTask struct {
	ID              string `yaml:"id"`
	Name            string `yaml:"name"`
	DurationMinutes uint32 `yaml:"duration_minutes"`
	Kind            string `yaml:"kind"`
}

// LoadSessionFile reads a session description from a YAML file.
// Missing ids get fresh UUIDs and a missing created_at becomes the load time.
func LoadSessionFile(path string) (model.Session, error) {
	rawData, err := os.ReadFile(path)
	if err != nil {
		return model.Session{}, fmt.Errorf("read session file: %w", err)
	}
	return ParseSession(rawData, time.Now())
}

// ParseSession decodes a YAML session document.
func ParseSession(rawData []byte, now time.Time) (model.Session, error) {
	var fileData yamlSession
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return model.Session{}, fmt.Errorf("parse session yaml: %w", err)
	}

	session := model.Session{
		ID:        fileData.ID,
		Name:      fileData.Name,
		CreatedAt: now,
		Tasks:     make([]model.Task, 0, len(fileData.Tasks)),
	}
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if fileData.CreatedAt != nil {
		session.CreatedAt = *fileData.CreatedAt
	}

	for index, entry := range fileData.Tasks {
		task, err := entry.toTask()
		if err != nil {
			return model.Session{}, fmt.Errorf("task %d: %w", index+1, err)
		}
		session.Tasks = append(session.Tasks, task)
	}
	return session, nil
}

func (entry yamlTask) toTask() (model.Task, error) {
	kind := model.TaskKind(entry.Kind)
	if entry.Kind == "" {
		kind = model.TaskWork
	}
	if !kind.Valid() {
		return model.Task{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidSession, entry.Kind)
	}
	if entry.DurationMinutes == 0 {
		return model.Task{}, fmt.Errorf("%w: %q has no duration", ErrInvalidSession, entry.Name)
	}

	task := model.Task{
		ID:              entry.ID,
		Name:            entry.Name,
		DurationMinutes: entry.DurationMinutes,
		Kind:            kind,
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	return task, nil
}
