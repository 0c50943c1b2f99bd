package backend

import (
	"context"
	"errors"

	"github.com/jonwraymond/replexec/protocol"
)

// Common errors for backend operations.
var (
	// ErrKindNotFound indicates that no factory is registered for a
	// provider kind.
	ErrKindNotFound = errors.New("backend kind not found")

	// ErrNoClient indicates that an operation requires a client that was
	// not configured.
	ErrNoClient = errors.New("no client configured")

	// ErrUnimplemented indicates a surface that is declared but not
	// implemented, such as cost accounting.
	ErrUnimplemented = errors.New("not implemented")
)

// Client is a chat-completion model provider.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: Complete must honor cancellation/deadlines.
// - Errors: provider failures return a non-nil error and an empty reply.
// - Ownership: msgs are read-only; the returned reply is caller-owned.
type Client interface {
	// Kind returns the provider kind (e.g., "gemini", "scripted").
	Kind() string

	// Model returns the model identifier this client targets.
	Model() string

	// Complete sends the conversation and returns the model's reply text.
	Complete(ctx context.Context, msgs []protocol.Message) (string, error)
}

// Factory creates a client for the given model identifier.
type Factory func(model string) (Client, error)

// CostSummary reports accumulated usage for a client or bridge.
// Population of these fields is not implemented; surfaces that return a
// CostSummary also return ErrUnimplemented.
type CostSummary struct {
	Calls            int
	PromptTokens     int
	CompletionTokens int
}
