package protipremove

import (
	"context"
	"fmt"

	"github.com/janosik-bot/janosik/internal/log"
	"github.com/janosik-bot/janosik/internal/model"
	"github.com/janosik-bot/janosik/internal/storage"
)

// ServiceConfig is the configuration for the protip remove service.
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

// Service removes protips.
type Service struct {
	repo   storage.ProtipRepository
	logger log.Logger
}

// NewService creates a new protip remove service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the protip remove request parameters.
type Request struct {
	ID int64
}

// Run removes the protip, model.ErrNotFound is returned when it doesn't exist.
func (s *Service) Run(ctx context.Context, req Request) error {
	if req.ID <= 0 {
		return fmt.Errorf("protip id must be positive: %w", model.ErrNotValid)
	}

	if err := s.repo.RemoveProtip(ctx, req.ID); err != nil {
		return fmt.Errorf("could not remove protip: %w", err)
	}

	s.logger.Infof("Protip %d removed", req.ID)
	return nil
}
