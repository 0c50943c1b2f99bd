package goengine

import (
	"bytes"
	"context"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/traefik/yaegi/interp"

	"github.com/jonwraymond/replexec/repl"
)

// exportPkg is the synthetic import path under which capability bindings
// are handed to the interpreter before being aliased to bare names.
const exportPkg = "replenv"

// importPathRe extracts quoted import paths from declaration source.
var importPathRe = regexp.MustCompile(`"([^"]+)"`)

// locRe matches yaegi's "line:col: message" error prefix.
var locRe = regexp.MustCompile(`^(\d+):(\d+): ?(.*)$`)

// Options configures an Engine.
type Options struct {
	// Profile controls the stdlib surface. Defaults to Restricted().
	Profile Profile

	// Builtins maps bare names to Go values bound into the global scope
	// before any submitted code runs.
	Builtins map[string]any
}

// Engine is a yaegi-backed repl.Engine. It is not safe for concurrent
// use; repl.Session serializes calls.
type Engine struct {
	mu      sync.Mutex
	interp  *interp.Interpreter
	profile Profile
	stdout  bytes.Buffer
	stderr  bytes.Buffer
	closed  bool
}

// New constructs an engine: a fresh interpreter with the profile's
// symbol table and the builtins bound to their bare names.
func New(opts Options) (*Engine, error) {
	profile := opts.Profile
	if profile.Name == "" {
		profile = Restricted()
	}

	e := &Engine{profile: profile}
	e.interp = interp.New(interp.Options{
		Stdout: &e.stdout,
		Stderr: &e.stderr,
	})
	if err := e.interp.Use(profile.symbols()); err != nil {
		return nil, fmt.Errorf("%w: loading %s symbols: %v", repl.ErrConfiguration, profile.Name, err)
	}
	if len(opts.Builtins) > 0 {
		if err := e.bindBuiltins(opts.Builtins); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Factory adapts New to repl.EngineFactory for the given profile.
func Factory(profile Profile) repl.EngineFactory {
	return func(opts repl.EngineOptions) (repl.Engine, error) {
		return New(Options{Profile: profile, Builtins: opts.Builtins})
	}
}

// bindBuiltins exposes the builtin values as exported symbols of the
// synthetic package, imports it, and aliases each symbol to its bare
// name so submitted code calls llmQuery(...) rather than
// replenv.LlmQuery(...).
func (e *Engine) bindBuiltins(builtins map[string]any) error {
	syms := make(map[string]reflect.Value, len(builtins))
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		syms[exportName(name)] = reflect.ValueOf(builtins[name])
	}
	exports := interp.Exports{exportPkg + "/" + exportPkg: syms}
	if err := e.interp.Use(exports); err != nil {
		return fmt.Errorf("%w: loading capability bindings: %v", repl.ErrConfiguration, err)
	}
	if _, err := e.interp.Eval(`import "` + exportPkg + `"`); err != nil {
		return fmt.Errorf("%w: importing capability bindings: %v", repl.ErrConfiguration, err)
	}
	for _, name := range names {
		src := fmt.Sprintf("%s := %s.%s", name, exportPkg, exportName(name))
		if _, err := e.interp.Eval(src); err != nil {
			return fmt.Errorf("%w: binding %s: %v", repl.ErrConfiguration, name, err)
		}
	}
	return nil
}

// Declare evaluates import declarations after checking them against the
// profile's denied list.
func (e *Engine) Declare(ctx context.Context, src string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return repl.ErrEngineClosed
	}
	for _, m := range importPathRe.FindAllStringSubmatch(src, -1) {
		if e.profile.denies(m[1]) {
			return fmt.Errorf("%w: %q is not available in this session", repl.ErrImportDenied, m[1])
		}
	}
	_, err := e.eval(ctx, src)
	return err
}

// Exec runs statement source for its side effects.
func (e *Engine) Exec(ctx context.Context, src string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return repl.ErrEngineClosed
	}
	_, err := e.eval(ctx, src)
	return err
}

// Eval evaluates a single expression and returns its value.
func (e *Engine) Eval(ctx context.Context, src string) (any, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, false, repl.ErrEngineClosed
	}
	v, err := e.eval(ctx, src)
	if err != nil {
		return nil, false, err
	}
	if !v.IsValid() || !v.CanInterface() {
		return nil, false, nil
	}
	return v.Interface(), true, nil
}

// eval runs src through the interpreter, recovering panics from
// interpreted code and normalizing failures into repl.EvalError.
func (e *Engine) eval(ctx context.Context, src string) (v reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			v = reflect.Value{}
			err = &repl.EvalError{Message: fmt.Sprintf("panic: %v", r)}
		}
	}()
	v, err = e.interp.EvalWithContext(ctx, src)
	if err != nil {
		if ctx.Err() != nil {
			return reflect.Value{}, ctx.Err()
		}
		return reflect.Value{}, wrapEvalError(err)
	}
	return v, nil
}

// Globals returns a snapshot of the interpreter's global bindings.
func (e *Engine) Globals() map[string]any {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	globals := e.interp.Globals()
	out := make(map[string]any, len(globals))
	for name, v := range globals {
		if v.IsValid() && v.CanInterface() {
			out[name] = v.Interface()
		}
	}
	return out
}

// TakeOutput drains the captured stdout and stderr buffers.
func (e *Engine) TakeOutput() (string, string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	stdout, stderr := e.stdout.String(), e.stderr.String()
	e.stdout.Reset()
	e.stderr.Reset()
	return stdout, stderr
}

// Close releases the engine. Close is idempotent.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return nil
}

// wrapEvalError converts a yaegi error into an EvalError, lifting out
// the "line:col:" location prefix when present.
func wrapEvalError(err error) error {
	msg := err.Error()
	ee := &repl.EvalError{Message: msg, Err: err}
	if m := locRe.FindStringSubmatch(strings.SplitN(msg, "\n", 2)[0]); m != nil {
		ee.Line, _ = strconv.Atoi(m[1])
		ee.Column, _ = strconv.Atoi(m[2])
		ee.Message = m[3]
	}
	return ee
}

// exportName maps a bare binding name to the exported identifier used
// inside the synthetic package.
func exportName(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
