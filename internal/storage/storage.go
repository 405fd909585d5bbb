package storage

import (
	"context"

	"github.com/janosik-bot/janosik/internal/model"
)

//go:generate mockery --case underscore --output storagemock --outpkg storagemock --name ProtipRepository --structname MockProtipRepository

// ProtipRepository is the interface for protip persistence.
type ProtipRepository interface {
	// AddProtip stores a new protip for a task and returns it with its assigned ID.
	AddProtip(ctx context.Context, task, content string) (*model.Protip, error)
	// RemoveProtip removes a protip, returns model.ErrNotFound if it doesn't exist.
	RemoveProtip(ctx context.Context, id int64) error
	// ListProtips returns the protips of a task ordered by ID.
	ListProtips(ctx context.Context, task string) ([]model.Protip, error)
	// ListTasks returns the distinct tasks that have protips, sorted by name.
	ListTasks(ctx context.Context) ([]string, error)
}
