package backend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonwraymond/replexec/protocol"
)

// DefaultBridgeTimeout bounds a single nested query.
const DefaultBridgeTimeout = 300 * time.Second

// BridgeConfig holds the configuration for a Bridge.
type BridgeConfig struct {
	// Client serves the nested queries.
	// Required.
	Client Client

	// Timeout bounds each Query call. Defaults to DefaultBridgeTimeout.
	Timeout time.Duration

	// SystemPrompt, when set, is prepended to every query as a system
	// message.
	SystemPrompt string
}

// Validate checks that all required fields are set.
func (c *BridgeConfig) Validate() error {
	var missing []string
	if c.Client == nil {
		missing = append(missing, "Client")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s",
			ErrNoClient, strings.Join(missing, ", "))
	}
	return nil
}

func (c *BridgeConfig) applyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = DefaultBridgeTimeout
	}
}

// Bridge serves nested model queries issued from inside an execution
// session. It satisfies repl.Bridge.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Context: Query honors the caller's context plus the fixed timeout.
// - Errors: provider failures are returned as-is for the caller to render.
type Bridge struct {
	cfg BridgeConfig
}

// NewBridge builds a bridge around a client.
func NewBridge(cfg BridgeConfig) (*Bridge, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &Bridge{cfg: cfg}, nil
}

// Query sends a single-prompt conversation to the client under the
// bridge's timeout.
func (b *Bridge) Query(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, b.cfg.Timeout)
	defer cancel()

	var msgs []protocol.Message
	if b.cfg.SystemPrompt != "" {
		msgs = append(msgs, protocol.SystemMessage(b.cfg.SystemPrompt))
	}
	msgs = append(msgs, protocol.UserMessage(prompt))
	return b.cfg.Client.Complete(ctx, msgs)
}

// CostSummary reports accumulated usage.
func (b *Bridge) CostSummary() (CostSummary, error) {
	return CostSummary{}, fmt.Errorf("%w: cost accounting", ErrUnimplemented)
}

// Reset clears accumulated usage.
func (b *Bridge) Reset() error {
	return fmt.Errorf("%w: cost accounting", ErrUnimplemented)
}
