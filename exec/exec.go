package exec

import (
	"context"

	"github.com/jonwraymond/replexec/backend"
	"github.com/jonwraymond/replexec/goengine"
	"github.com/jonwraymond/replexec/loop"
	"github.com/jonwraymond/replexec/protocol"
	"github.com/jonwraymond/replexec/repl"
)

// Exec is the unified facade for recursive completions. It wires the
// engine, session, bridge and conversation loop into a single API.
type Exec struct {
	orch   *loop.Orchestrator
	bridge *backend.Bridge
	opts   Options
}

// New creates a new Exec instance with the given options.
func New(opts Options) (*Exec, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	opts.applyDefaults()

	bridge, err := backend.NewBridge(backend.BridgeConfig{
		Client:  opts.RecursiveClient,
		Timeout: opts.BridgeTimeout,
	})
	if err != nil {
		return nil, err
	}

	engine := goengine.Factory(opts.Profile)
	sessions := func(ctx context.Context, payload loop.Payload) (loop.Session, error) {
		return repl.NewSession(ctx, repl.Config{
			Engine:         engine,
			Bridge:         bridge,
			Builtins:       payload.Builtins,
			Prelude:        payload.Prelude,
			WorkspaceFiles: payload.Files,
			SetupCode:      opts.SetupCode,
			WorkspaceRoot:  opts.WorkspaceRoot,
			Logger:         opts.Logger,
		})
	}

	orch, err := loop.New(loop.Config{
		Client:         opts.Client,
		Sessions:       sessions,
		MaxIterations:  opts.MaxIterations,
		MaxResultChars: opts.MaxResultChars,
		Logger:         opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &Exec{orch: orch, bridge: bridge, opts: opts}, nil
}

// Completion answers query about input. The input becomes the context
// variable of a fresh session; the root model inspects it with code
// until it declares a final answer or runs out of iterations.
func (e *Exec) Completion(ctx context.Context, input any, query string) (string, error) {
	return e.orch.Completion(ctx, input, query)
}

// Transcript returns a copy of the most recent conversation.
func (e *Exec) Transcript() []protocol.Message {
	return e.orch.Transcript()
}

// Reset discards conversation state and closes the bound session.
func (e *Exec) Reset() error {
	return e.orch.Reset()
}

// CostSummary reports accumulated usage across root and nested calls.
// Cost accounting is not implemented; the summary is zero and the error
// matches backend.ErrUnimplemented.
func (e *Exec) CostSummary() (backend.CostSummary, error) {
	return e.bridge.CostSummary()
}
