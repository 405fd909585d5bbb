package lib

import (
	"context"
	"fmt"
	"strings"

	"github.com/janosik-bot/janosik/internal/app/protipadd"
	"github.com/janosik-bot/janosik/internal/app/protiplist"
	"github.com/janosik-bot/janosik/internal/app/protipremove"
)

// AddProtip adds a protip to a task.
//
// Returns [ErrNotValid] if the task or the content are empty.
func (c *Client) AddProtip(ctx context.Context, task, content string) (*Protip, error) {
	p, err := c.protipAdd.Run(ctx, protipadd.Request{Task: task, Content: content})
	if err != nil {
		return nil, mapError(err)
	}

	result := fromInternalProtip(*p)
	return &result, nil
}

// RemoveProtip removes a protip.
//
// Returns [ErrNotValid] if id is not positive, or [ErrNotFound] if it doesn't exist.
func (c *Client) RemoveProtip(ctx context.Context, id int64) error {
	return mapError(c.protipRemove.Run(ctx, protipremove.Request{ID: id}))
}

// ListProtips returns the protips of a task ordered by ID.
//
// Returns [ErrNotValid] if the task is empty, use [Client.ListTasks] instead.
func (c *Client) ListProtips(ctx context.Context, task string) ([]Protip, error) {
	if strings.TrimSpace(task) == "" {
		return nil, fmt.Errorf("task is required: %w", ErrNotValid)
	}

	resp, err := c.protipList.Run(ctx, protiplist.Request{Task: task})
	if err != nil {
		return nil, mapError(err)
	}
	return fromInternalProtipList(resp.Protips), nil
}

// ListTasks returns the tasks that have protips, sorted by name.
func (c *Client) ListTasks(ctx context.Context) ([]string, error) {
	resp, err := c.protipList.Run(ctx, protiplist.Request{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Tasks, nil
}
