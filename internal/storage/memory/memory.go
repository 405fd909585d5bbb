package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/janosik-bot/janosik/internal/log"
	"github.com/janosik-bot/janosik/internal/model"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.ProtipRepository.
type Repository struct {
	protips map[int64]model.Protip
	lastID  int64
	mu      sync.RWMutex
	logger  log.Logger
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		protips: make(map[int64]model.Protip),
		logger:  cfg.Logger,
	}, nil
}

// AddProtip stores a new protip.
func (r *Repository) AddProtip(ctx context.Context, task, content string) (*model.Protip, error) {
	if task == "" || content == "" {
		return nil, fmt.Errorf("task and content are required: %w", model.ErrNotValid)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	p := model.Protip{
		ID:        r.lastID,
		Task:      task,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	r.protips[p.ID] = p
	r.logger.Debugf("Added protip %d to task %s", p.ID, task)

	return &p, nil
}

// RemoveProtip removes a protip by ID.
func (r *Repository) RemoveProtip(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.protips[id]; !ok {
		return fmt.Errorf("protip %d: %w", id, model.ErrNotFound)
	}
	delete(r.protips, id)
	r.logger.Debugf("Removed protip %d", id)

	return nil
}

// ListProtips returns the protips of a task.
func (r *Repository) ListProtips(ctx context.Context, task string) ([]model.Protip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	protips := []model.Protip{}
	for _, p := range r.protips {
		if p.Task == task {
			protips = append(protips, p)
		}
	}
	slices.SortFunc(protips, func(a, b model.Protip) int { return cmp.Compare(a.ID, b.ID) })

	return protips, nil
}

// ListTasks returns the tasks that have protips.
func (r *Repository) ListTasks(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := []string{}
	for _, p := range r.protips {
		if !slices.Contains(tasks, p.Task) {
			tasks = append(tasks, p.Task)
		}
	}
	slices.Sort(tasks)

	return tasks, nil
}
