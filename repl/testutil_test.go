package repl

import (
	"context"
	"strings"
	"sync"
)

// mockEngine implements Engine for testing. Its behavior is configured
// per test via the on* hooks; the default hooks record calls and return
// the configured values.
type mockEngine struct {
	mu      sync.Mutex
	globals map[string]any
	stdout  strings.Builder
	stderr  strings.Builder
	closed  bool

	// Configurable returns
	declareErr error
	execErr    error
	evalValue  any
	evalOK     bool
	evalErr    error

	// Behavior hooks
	onDeclare func(src string) error
	onExec    func(src string) error
	onEval    func(src string) (any, bool, error)

	// Call tracking
	declareCalls []string
	execCalls    []string
	evalCalls    []string
	closeCalls   int
}

func newMockEngine() *mockEngine {
	return &mockEngine{globals: make(map[string]any)}
}

// factory returns an EngineFactory that installs the session's builtins
// into the mock's globals, the way a real interpreter binds them.
func (m *mockEngine) factory() EngineFactory {
	return func(opts EngineOptions) (Engine, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		for k, v := range opts.Builtins {
			m.globals[k] = v
		}
		return m, nil
	}
}

func (m *mockEngine) setVar(name string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.globals[name] = value
}

func (m *mockEngine) Declare(_ context.Context, src string) error {
	m.mu.Lock()
	m.declareCalls = append(m.declareCalls, src)
	m.mu.Unlock()
	if m.onDeclare != nil {
		return m.onDeclare(src)
	}
	return m.declareErr
}

func (m *mockEngine) Exec(_ context.Context, src string) error {
	m.mu.Lock()
	m.execCalls = append(m.execCalls, src)
	m.mu.Unlock()
	if m.onExec != nil {
		return m.onExec(src)
	}
	return m.execErr
}

func (m *mockEngine) Eval(_ context.Context, src string) (any, bool, error) {
	m.mu.Lock()
	m.evalCalls = append(m.evalCalls, src)
	m.mu.Unlock()
	if m.onEval != nil {
		return m.onEval(src)
	}
	return m.evalValue, m.evalOK, m.evalErr
}

func (m *mockEngine) Globals() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]any, len(m.globals))
	for k, v := range m.globals {
		out[k] = v
	}
	return out
}

func (m *mockEngine) TakeOutput() (string, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out, errOut := m.stdout.String(), m.stderr.String()
	m.stdout.Reset()
	m.stderr.Reset()
	return out, errOut
}

func (m *mockEngine) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.closeCalls++
	return nil
}

// mockBridge implements Bridge for testing.
type mockBridge struct {
	mu sync.Mutex

	reply string
	err   error

	prompts []string
}

func (b *mockBridge) Query(_ context.Context, prompt string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prompts = append(b.prompts, prompt)
	return b.reply, b.err
}

// mockLogger implements Logger for testing.
type mockLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *mockLogger) Logf(format string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, format)
}

func (l *mockLogger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.messages)
}
