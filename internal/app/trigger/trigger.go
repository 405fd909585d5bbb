package trigger

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/janosik-bot/janosik/internal/log"
	"github.com/janosik-bot/janosik/internal/model"
)

// ServiceConfig is the configuration for the trigger service.
type ServiceConfig struct {
	Triggers []model.Trigger
	// Roll returns a number in [0,100), defaults to a random one.
	Roll   func() int
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	for _, t := range c.Triggers {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("trigger %q: %w", t.Name, err)
		}
	}

	if c.Roll == nil {
		c.Roll = func() int { return rand.IntN(100) }
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Trigger"})

	return nil
}

// Service answers chat messages that contain trigger words.
type Service struct {
	triggers []model.Trigger
	roll     func() int
	logger   log.Logger
}

// NewService creates a new trigger service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		triggers: cfg.Triggers,
		roll:     cfg.Roll,
		logger:   cfg.Logger,
	}, nil
}

// Request is a chat message.
type Request struct {
	Text string
}

// Response holds the triggers that fired, in configuration order.
type Response struct {
	Fired []model.Trigger
}

// Messages returns the replies of the fired triggers.
func (r Response) Messages() []string {
	msgs := make([]string, 0, len(r.Fired))
	for _, t := range r.Fired {
		msgs = append(msgs, t.Message)
	}
	return msgs
}

// Run checks the message against every trigger.
func (s *Service) Run(ctx context.Context, req Request) (*Response, error) {
	resp := &Response{Fired: []model.Trigger{}}
	lower := strings.ToLower(req.Text)

	for _, t := range s.triggers {
		// Never answer our own message.
		if req.Text == t.Message {
			continue
		}
		if !containsAny(lower, t.Words) {
			continue
		}

		roll := s.roll()
		s.logger.Debugf("%s dice roll: %d", t.Name, roll)
		if roll > t.Frequency%100 {
			continue
		}

		s.logger.Infof("Sending %s", t.Name)
		resp.Fired = append(resp.Fired, t)
	}

	return resp, nil
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, strings.ToLower(w)) {
			return true
		}
	}
	return false
}
