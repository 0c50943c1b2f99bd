package repl

import "context"

// Engine is the pluggable interpreter backing a Session. Implementations
// hold a persistent namespace: names bound by one call are visible to
// every later call on the same engine.
//
// Contract:
//   - Concurrency: implementations need not be safe for concurrent use;
//     the Session serializes all calls.
//   - Context: Declare, Exec and Eval must honor cancellation/deadlines
//     and return ctx.Err() when canceled.
//   - Errors: interpretation failures should return EvalError where
//     possible; callers use errors.Is with ErrCodeExecution. Panics
//     inside interpreted code must be recovered and returned as errors,
//     never propagated.
//   - Ownership: returned maps and strings are caller-owned copies.
type Engine interface {
	// Declare evaluates declaration source (import forms) against the
	// persistent global scope.
	Declare(ctx context.Context, src string) error

	// Exec runs statement source for its side effects.
	Exec(ctx context.Context, src string) error

	// Eval evaluates a single expression and returns its value. The
	// boolean reports whether the evaluation produced a usable value
	// (void calls and bare declarations do not).
	Eval(ctx context.Context, src string) (any, bool, error)

	// Globals returns a snapshot of the engine's global bindings by name.
	Globals() map[string]any

	// TakeOutput drains and returns the stdout and stderr captured since
	// the previous call.
	TakeOutput() (stdout, stderr string)

	// Close releases the engine. Close is idempotent; all other methods
	// return ErrEngineClosed afterwards.
	Close() error
}

// EngineOptions configures an Engine at construction.
type EngineOptions struct {
	// Builtins maps bare names to Go values (typically funcs) bound into
	// the interpreter's global scope before any code runs.
	Builtins map[string]any
}

// EngineFactory constructs an Engine for a new Session.
type EngineFactory func(opts EngineOptions) (Engine, error)

// Bridge issues a nested model query on behalf of interpreted code.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines.
// - Errors: a failed query returns a non-nil error and an empty string.
type Bridge interface {
	// Query sends a prompt to the nested model and returns its reply.
	Query(ctx context.Context, prompt string) (string, error)
}
