package protipadd

import (
	"context"
	"fmt"
	"strings"

	"github.com/janosik-bot/janosik/internal/log"
	"github.com/janosik-bot/janosik/internal/model"
	"github.com/janosik-bot/janosik/internal/storage"
)

// ServiceConfig is the configuration for the protip add service.
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

// Service adds protips to tasks.
type Service struct {
	repo   storage.ProtipRepository
	logger log.Logger
}

// NewService creates a new protip add service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the protip add request parameters.
type Request struct {
	Task    string
	Content string
}

func (r *Request) validate() error {
	r.Task = strings.TrimSpace(r.Task)
	r.Content = strings.TrimSpace(r.Content)

	if r.Task == "" {
		return fmt.Errorf("task is required: %w", model.ErrNotValid)
	}
	if r.Content == "" {
		return fmt.Errorf("content is required: %w", model.ErrNotValid)
	}
	return nil
}

// Run stores a new protip and returns it.
func (s *Service) Run(ctx context.Context, req Request) (*model.Protip, error) {
	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	p, err := s.repo.AddProtip(ctx, req.Task, req.Content)
	if err != nil {
		return nil, fmt.Errorf("could not add protip: %w", err)
	}

	s.logger.Infof("Protip %d added to %s", p.ID, p.Task)
	return p, nil
}
