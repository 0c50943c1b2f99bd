package repl

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is a persistent execution environment for model-authored
// snippets. Variables bound by one submission remain visible to every
// later one; output and failures are captured per call into a Result.
//
// Contract:
//   - Concurrency: safe for concurrent use; Execute calls are serialized.
//   - Context: Execute honors cancellation and returns ctx.Err() when the
//     interpreter reports it.
//   - Errors: failures in submitted code surface through Result.Stderr,
//     not Execute's error return.
//   - Ownership: returned Results are caller-owned.
type Session struct {
	cfg    Config
	logger Logger

	id        string
	workspace string

	mu sync.Mutex // serializes Execute and Close

	stateMu    sync.Mutex // guards the fields below
	engine     Engine
	closed     bool
	locals     map[string]any
	globalKeys map[string]bool
	seq        int
	activeCtx  context.Context
}

// NewSession builds a session from cfg: it creates the per-session
// workspace directory, materializes WorkspaceFiles into it, constructs
// the engine with the capability bindings installed, runs SetupCode against the global scope, snapshots
// the global names, and runs Prelude so its bindings appear as session
// variables.
func NewSession(ctx context.Context, cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	s := &Session{
		cfg:        cfg,
		logger:     cfg.Logger,
		id:         uuid.NewString(),
		locals:     make(map[string]any),
		globalKeys: make(map[string]bool),
	}
	s.workspace = filepath.Join(cfg.WorkspaceRoot, "replexec-"+s.id)
	if err := os.MkdirAll(s.workspace, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating workspace: %v", ErrConfiguration, err)
	}
	for name, data := range cfg.WorkspaceFiles {
		if err := os.WriteFile(filepath.Join(s.workspace, name), data, 0o644); err != nil {
			os.RemoveAll(s.workspace)
			return nil, fmt.Errorf("%w: writing workspace file %s: %v", ErrConfiguration, name, err)
		}
	}

	builtins := make(map[string]any, len(cfg.Builtins)+2)
	for k, v := range cfg.Builtins {
		builtins[k] = v
	}
	builtins["llmQuery"] = s.llmQuery
	builtins["finalVar"] = s.finalVar

	engine, err := cfg.Engine(EngineOptions{Builtins: builtins})
	if err != nil {
		os.RemoveAll(s.workspace)
		return nil, err
	}
	s.engine = engine

	fail := func(stage string, err error) error {
		engine.Close()
		os.RemoveAll(s.workspace)
		return fmt.Errorf("%w: %s: %v", ErrConfiguration, stage, err)
	}

	if cfg.SetupCode != "" {
		if err := engine.Exec(ctx, cfg.SetupCode); err != nil {
			return nil, fail("setup code", err)
		}
		engine.TakeOutput()
	}
	for k := range engine.Globals() {
		s.globalKeys[k] = true
	}
	if cfg.Prelude != "" {
		if err := engine.Exec(ctx, cfg.Prelude); err != nil {
			return nil, fail("prelude", err)
		}
		engine.TakeOutput()
		s.writeBack()
	}

	s.logf("session %s: created (workspace %s)", s.id, s.workspace)
	return s, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Workspace returns the session's working directory.
func (s *Session) Workspace() string { return s.workspace }

// Execute runs one submitted snippet. Declaration lines are evaluated
// first, and a failed declaration aborts the submission without running
// the body; otherwise, if the last body line classifies as an expression, the body's
// head runs as statements and the tail is evaluated, with a non-nil
// value echoed into captured stdout. Any failure on the expression path
// falls back to executing the whole body as statements. Interpretation
// failures are rendered into Result.Stderr and Execute returns normally.
func (s *Session) Execute(ctx context.Context, code string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stateMu.Lock()
	if s.closed {
		s.stateMu.Unlock()
		return Result{}, ErrSessionClosed
	}
	engine := s.engine
	s.activeCtx = ctx
	s.stateMu.Unlock()
	defer func() {
		s.stateMu.Lock()
		s.activeCtx = nil
		s.stateMu.Unlock()
	}()

	// The mutex makes the process-wide chdir safe for the duration of
	// the call.
	if restore, err := s.enterWorkspace(); err != nil {
		s.logf("session %s: workspace chdir failed: %v", s.id, err)
	} else {
		defer restore()
	}

	start := time.Now()
	var faults []string

	declFailed := false
	decls, body := splitDeclarations(code)
	if strings.TrimSpace(decls) != "" {
		if err := engine.Declare(ctx, decls); err != nil {
			if isCtxErr(err) {
				return Result{}, err
			}
			faults = append(faults, err.Error())
			declFailed = true
		}
	}

	// A failed declaration aborts the submission; running the body would
	// only re-report the missing symbol.
	var echo string
	if !declFailed && strings.TrimSpace(body) != "" {
		var err error
		echo, faults, err = s.runBody(ctx, engine, body, faults)
		if err != nil {
			return Result{}, err
		}
	}

	stdout, stderr := engine.TakeOutput()
	stdout += echo
	for _, f := range faults {
		if stderr != "" && !strings.HasSuffix(stderr, "\n") {
			stderr += "\n"
		}
		stderr += f + "\n"
	}

	s.stateMu.Lock()
	s.mergeGlobals()
	s.locals["_stdout"] = stdout
	s.locals["_stderr"] = stderr
	s.seq++
	res := Result{
		Stdout:   stdout,
		Stderr:   stderr,
		Locals:   copyLocals(s.locals),
		Duration: time.Since(start),
		Seq:      s.seq,
	}
	s.stateMu.Unlock()

	s.logf("session %s: snippet %d ran in %s (stdout %dB, stderr %dB)",
		s.id, res.Seq, res.Duration.Round(time.Millisecond), len(res.Stdout), len(res.Stderr))
	return res, nil
}

// runBody applies the expression-tail heuristic to the body lines.
// The returned error is non-nil only for context cancellation.
func (s *Session) runBody(ctx context.Context, engine Engine, body string, faults []string) (string, []string, error) {
	lines := strings.Split(body, "\n")
	last := lastBodyLine(lines)
	if last < 0 {
		return "", faults, nil
	}
	tail := strings.TrimSpace(lines[last])

	if !isExpression(tail) {
		if err := engine.Exec(ctx, body); err != nil {
			if isCtxErr(err) {
				return "", nil, err
			}
			faults = append(faults, err.Error())
		}
		return "", faults, nil
	}

	head := strings.Join(lines[:last], "\n")
	if strings.TrimSpace(head) != "" {
		if err := engine.Exec(ctx, head); err != nil {
			if isCtxErr(err) {
				return "", nil, err
			}
			return s.fallback(ctx, engine, body, faults)
		}
	}
	v, ok, err := engine.Eval(ctx, tail)
	if err != nil {
		if isCtxErr(err) {
			return "", nil, err
		}
		// Misclassified tail: re-run the whole body as statements. Side
		// effects of an already-executed head repeat, matching
		// interactive-interpreter behavior for this corner.
		return s.fallback(ctx, engine, body, faults)
	}
	var echo string
	if ok && v != nil {
		echo = fmt.Sprintf("%v\n", v)
	}
	return echo, faults, nil
}

func (s *Session) fallback(ctx context.Context, engine Engine, body string, faults []string) (string, []string, error) {
	if err := engine.Exec(ctx, body); err != nil {
		if isCtxErr(err) {
			return "", nil, err
		}
		faults = append(faults, err.Error())
	}
	return "", faults, nil
}

// LookupVar returns the textual value of a session variable. The name is
// trimmed of surrounding whitespace and quotes before lookup.
func (s *Session) LookupVar(name string) (string, bool) {
	name = cleanVarName(name)
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	v, ok := s.locals[name]
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%v", v), true
}

// Close releases the engine and removes the workspace directory.
// Close is idempotent; Execute after Close returns ErrSessionClosed.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stateMu.Lock()
	if s.closed {
		s.stateMu.Unlock()
		return nil
	}
	s.closed = true
	engine := s.engine
	s.stateMu.Unlock()

	var firstErr error
	if engine != nil {
		firstErr = engine.Close()
	}
	if err := os.RemoveAll(s.workspace); err != nil && firstErr == nil {
		firstErr = err
	}
	s.logf("session %s: closed", s.id)
	return firstErr
}

// llmQuery is the capability binding for nested model queries. Failures
// come back as descriptive strings so interpreted code never observes a
// raised error.
func (s *Session) llmQuery(prompt string) string {
	if s.cfg.Bridge == nil {
		return "llmQuery error: no nested model configured"
	}
	ctx := s.currentContext()
	s.logf("session %s: nested query (%d chars)", s.id, len(prompt))
	reply, err := s.cfg.Bridge.Query(ctx, prompt)
	if err != nil {
		return fmt.Sprintf("llmQuery error: %v", err)
	}
	return reply
}

// finalVar is the capability binding for named-variable extraction. It
// reads the variable mirror, which excludes names bound by the snippet
// still being executed.
func (s *Session) finalVar(name string) string {
	if v, ok := s.LookupVar(name); ok {
		return v
	}
	return fmt.Sprintf("no variable named %q in the session", cleanVarName(name))
}

func (s *Session) currentContext() context.Context {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	if s.activeCtx != nil {
		return s.activeCtx
	}
	return context.Background()
}

func (s *Session) enterWorkspace() (func(), error) {
	prev, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	if err := os.Chdir(s.workspace); err != nil {
		return nil, err
	}
	return func() { os.Chdir(prev) }, nil
}

// writeBack refreshes the variable mirror from the engine's globals.
func (s *Session) writeBack() {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.mergeGlobals()
}

// mergeGlobals copies engine bindings that are not part of the global
// snapshot into the variable mirror. Callers hold stateMu.
func (s *Session) mergeGlobals() {
	for k, v := range s.engine.Globals() {
		if !s.globalKeys[k] {
			s.locals[k] = v
		}
	}
}

func (s *Session) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Logf(format, args...)
	}
}

func cleanVarName(name string) string {
	return strings.Trim(name, " \t\r\n\"'")
}

func copyLocals(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func isCtxErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
