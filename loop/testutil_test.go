package loop

import (
	"context"
	"sync"

	"github.com/jonwraymond/replexec/repl"
)

// fakeSession implements Session for testing.
type fakeSession struct {
	mu sync.Mutex

	// Configurable behavior
	onExecute func(code string) (repl.Result, error)
	vars      map[string]string

	// Call tracking
	executed []string
	lookups  []string
	closed   int
}

func newFakeSession() *fakeSession {
	return &fakeSession{vars: make(map[string]string)}
}

// factory returns a SessionFactory handing out this session and
// recording the payloads it was built with.
func (f *fakeSession) factory(payloads *[]Payload) SessionFactory {
	return func(_ context.Context, payload Payload) (Session, error) {
		if payloads != nil {
			*payloads = append(*payloads, payload)
		}
		return f, nil
	}
}

func (f *fakeSession) Execute(_ context.Context, code string) (repl.Result, error) {
	f.mu.Lock()
	f.executed = append(f.executed, code)
	f.mu.Unlock()
	if f.onExecute != nil {
		return f.onExecute(code)
	}
	return repl.Result{Stdout: "ok\n", Seq: len(f.executed)}, nil
}

func (f *fakeSession) LookupVar(name string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups = append(f.lookups, name)
	v, ok := f.vars[name]
	return v, ok
}

func (f *fakeSession) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}
