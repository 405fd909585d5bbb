package blackbox

import (
	"context"
	"fmt"
	"strings"

	"github.com/janosik-bot/janosik/internal/locale"
	"github.com/janosik-bot/janosik/internal/log"
	"github.com/janosik-bot/janosik/internal/model"
	"github.com/janosik-bot/janosik/internal/runner"
)

const fence = "```"

// ParseMessage splits a chat message into the program name and its input.
// The program is the first word before any code block, the input is the text
// between the first and last triple backtick fence with every remaining
// backtick removed. Without a complete fence the input is empty.
func ParseMessage(text string) (program, input string) {
	head := text
	first := strings.Index(text, fence)
	if first >= 0 {
		head = text[:first]
	}
	if fields := strings.Fields(head); len(fields) > 0 {
		program = fields[0]
	}

	last := strings.LastIndex(text, fence)
	if first < 0 || last <= first {
		return program, ""
	}
	input = strings.ReplaceAll(text[first+len(fence):last], "`", "")

	return program, input
}

// ServiceConfig is the configuration for the blackbox service.
type ServiceConfig struct {
	Runner  runner.Runner
	Catalog *locale.Catalog
	Logger  log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Runner == nil {
		return fmt.Errorf("runner is required")
	}

	if c.Catalog == nil {
		cat, err := locale.New(model.DefaultLanguage)
		if err != nil {
			return err
		}
		c.Catalog = cat
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Blackbox"})

	return nil
}

// Service runs the program named in a chat message and renders the reply.
type Service struct {
	runner  runner.Runner
	catalog *locale.Catalog
	logger  log.Logger
}

// NewService creates a new blackbox service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		runner:  cfg.Runner,
		catalog: cfg.Catalog,
		logger:  cfg.Logger,
	}, nil
}

// Request is a chat message addressed to the blackbox command.
type Request struct {
	Message string
}

// Response is the outcome of a blackbox request. Err holds the run failure,
// if any, and Text is always the reply to send back.
type Response struct {
	Program string
	Input   string
	Result  *model.RunResult
	Err     error
	Text    string
}

// Run parses the message, runs the program and renders the reply. Only a
// message without a program is returned as an error, run failures are
// reported through the response.
func (s *Service) Run(ctx context.Context, req Request) (*Response, error) {
	program, input := ParseMessage(req.Message)
	if program == "" {
		return nil, fmt.Errorf("message has no program: %w", model.ErrNotValid)
	}

	s.logger.Infof("Program: %s", program)
	s.logger.Debugf("Input: %q", input)

	resp := &Response{Program: program, Input: input}
	res, err := s.runner.Run(ctx, model.RunRequest{Program: program, Input: input})
	if err != nil {
		resp.Err = err
		resp.Text = s.catalog.RunMessage(program, err)
		return resp, nil
	}

	resp.Result = res
	resp.Text = s.catalog.Fence(res.Output)
	return resp, nil
}
