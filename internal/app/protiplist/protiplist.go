package protiplist

import (
	"context"
	"fmt"
	"strings"

	"github.com/janosik-bot/janosik/internal/log"
	"github.com/janosik-bot/janosik/internal/model"
	"github.com/janosik-bot/janosik/internal/storage"
)

// ServiceConfig is the configuration for the protip list service.
type ServiceConfig struct {
	Repository storage.ProtipRepository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Service lists protips or the tasks that have them.
type Service struct {
	repo   storage.ProtipRepository
	logger log.Logger
}

// NewService creates a new protip list service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the protip list request parameters.
type Request struct {
	// Task is optional, when empty the tasks with protips are listed instead.
	Task string
}

// Response holds either the protips of the requested task or, when no task
// was requested, the task names.
type Response struct {
	Task    string
	Protips []model.Protip
	Tasks   []string
}

// Run lists the protips.
func (s *Service) Run(ctx context.Context, req Request) (*Response, error) {
	task := strings.TrimSpace(req.Task)

	if task == "" {
		tasks, err := s.repo.ListTasks(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not list tasks: %w", err)
		}
		s.logger.Debugf("found %d tasks", len(tasks))
		return &Response{Tasks: tasks}, nil
	}

	protips, err := s.repo.ListProtips(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("could not list protips: %w", err)
	}
	s.logger.Debugf("found %d protips for %s", len(protips), task)

	return &Response{Task: task, Protips: protips}, nil
}
