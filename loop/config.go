package loop

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/replexec/backend"
	"github.com/jonwraymond/replexec/repl"
)

// DefaultMaxIterations bounds the number of model turns per run.
const DefaultMaxIterations = 20

// Session is the slice of repl.Session the orchestrator needs. It is an
// interface so tests can drive the loop with a fake.
type Session interface {
	Execute(ctx context.Context, code string) (repl.Result, error)
	LookupVar(name string) (string, bool)
	Close() error
}

// SessionFactory builds a session for one run from the bound context.
type SessionFactory func(ctx context.Context, payload Payload) (Session, error)

// Config holds the configuration for an Orchestrator.
type Config struct {
	// Client is the root model driving the loop.
	// Required.
	Client backend.Client

	// Sessions builds the execution session for each run.
	// Required.
	Sessions SessionFactory

	// MaxIterations bounds the number of model turns per run.
	// Defaults to DefaultMaxIterations.
	MaxIterations int

	// MaxResultChars bounds each rendered execution result folded into
	// the transcript. Defaults to DefaultMaxResultChars.
	MaxResultChars int

	// Capabilities describes the session operations in the system
	// prompt. Defaults to Capabilities().
	Capabilities []mcp.Tool

	// Logger is an optional logger for observability.
	Logger repl.Logger
}

// Validate checks that all required fields are set.
// Returns repl.ErrConfiguration if any required field is missing.
func (c *Config) Validate() error {
	var missing []string

	if c.Client == nil {
		missing = append(missing, "Client")
	}
	if c.Sessions == nil {
		missing = append(missing, "Sessions")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s",
			repl.ErrConfiguration, strings.Join(missing, ", "))
	}
	return nil
}

// applyDefaults sets default values for optional fields.
func (c *Config) applyDefaults() {
	if c.MaxIterations <= 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if c.MaxResultChars <= 0 {
		c.MaxResultChars = DefaultMaxResultChars
	}
	if c.Capabilities == nil {
		c.Capabilities = Capabilities()
	}
}
