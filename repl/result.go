package repl

import "time"

// Result is the record of a single Execute call. It is immutable and
// caller-owned.
type Result struct {
	// Stdout is the standard output captured during the call, including
	// the echoed value of a trailing expression.
	Stdout string

	// Stderr is the standard error captured during the call, including
	// rendered interpretation failures.
	Stderr string

	// Locals is a snapshot of the session's variables after the call:
	// every name submitted code has bound, plus the _stdout and _stderr
	// mirrors. Globals and capability bindings are excluded.
	Locals map[string]any

	// Duration is the wall-clock time the call took.
	Duration time.Duration

	// Seq is the 1-based position of this call in the session's history.
	Seq int
}
