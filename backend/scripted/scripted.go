// Package scripted provides a deterministic in-memory backend.Client for
// tests, examples and offline runs. Replies come from a queue or from a
// handler function; every conversation the client sees is recorded.
package scripted

import (
	"context"
	"errors"
	"sync"

	"github.com/jonwraymond/replexec/backend"
	"github.com/jonwraymond/replexec/protocol"
)

// ErrExhausted is returned by Complete when the reply queue is empty and
// no handler is set.
var ErrExhausted = errors.New("scripted client: reply queue exhausted")

// HandlerFunc computes a reply from the conversation.
type HandlerFunc func(ctx context.Context, msgs []protocol.Message) (string, error)

// Client implements backend.Client with scripted replies.
type Client struct {
	model string

	mu      sync.Mutex
	replies []string
	handler HandlerFunc
	calls   [][]protocol.Message
}

// New creates a scripted client for the given model identifier.
func New(model string) *Client {
	return &Client{model: model}
}

// NewFactory returns a backend.Factory constructing scripted clients.
func NewFactory() backend.Factory {
	return func(model string) (backend.Client, error) {
		return New(model), nil
	}
}

// Kind returns the provider kind.
func (c *Client) Kind() string {
	return "scripted"
}

// Model returns the model identifier.
func (c *Client) Model() string {
	return c.model
}

// Enqueue appends replies to the queue. Queued replies are consumed in
// order before the handler is consulted.
func (c *Client) Enqueue(replies ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replies = append(c.replies, replies...)
}

// SetHandler installs a handler used when the reply queue is empty.
func (c *Client) SetHandler(h HandlerFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handler = h
}

// Complete returns the next scripted reply.
func (c *Client) Complete(ctx context.Context, msgs []protocol.Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c.mu.Lock()
	c.calls = append(c.calls, append([]protocol.Message(nil), msgs...))
	if len(c.replies) > 0 {
		reply := c.replies[0]
		c.replies = c.replies[1:]
		c.mu.Unlock()
		return reply, nil
	}
	handler := c.handler
	c.mu.Unlock()

	if handler != nil {
		return handler(ctx, msgs)
	}
	return "", ErrExhausted
}

// Calls returns a copy of every conversation the client has seen.
func (c *Client) Calls() [][]protocol.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]protocol.Message(nil), c.calls...)
}
