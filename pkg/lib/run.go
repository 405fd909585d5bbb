package lib

import (
	"context"

	"github.com/janosik-bot/janosik/internal/app/blackbox"
	"github.com/janosik-bot/janosik/internal/app/trigger"
	"github.com/janosik-bot/janosik/internal/model"
)

// Run runs program with input as its standard input and returns its output.
//
// Failures are [*RunError] values matching one of [ErrNoInput], [ErrTimeout],
// [ErrProgramNotFound], [ErrNoOutput], [ErrCrash] or [ErrOther].
func (c *Client) Run(ctx context.Context, program, input string) (*RunResult, error) {
	res, err := c.runner.Run(ctx, model.RunRequest{Program: program, Input: input})
	if err != nil {
		return nil, err
	}
	return fromInternalRunResult(res), nil
}

// Blackbox runs the program named in a chat message and renders the reply.
//
// Run failures are not returned as errors, they are in [BlackboxReply].Err and
// rendered in [BlackboxReply].Text. Returns [ErrNotValid] if the message has
// no program.
func (c *Client) Blackbox(ctx context.Context, message string) (*BlackboxReply, error) {
	resp, err := c.blackbox.Run(ctx, blackbox.Request{Message: message})
	if err != nil {
		return nil, mapError(err)
	}

	return &BlackboxReply{
		Program: resp.Program,
		Input:   resp.Input,
		Result:  fromInternalRunResult(resp.Result),
		Err:     resp.Err,
		Text:    resp.Text,
	}, nil
}

// Triggers returns the replies of the keyword triggers the chat message fires.
func (c *Client) Triggers(ctx context.Context, message string) ([]string, error) {
	resp, err := c.trigger.Run(ctx, trigger.Request{Text: message})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Messages(), nil
}
