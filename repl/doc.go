// Package repl provides a persistent, stateful execution session for
// model-authored Go snippets.
//
// A Session owns a pluggable Engine (the interpreter), a per-session
// workspace directory, and a mirrored map of the variables that submitted
// code has introduced. Snippets are submitted to Execute, which partitions
// declaration lines from body lines, applies an expression-tail heuristic
// so that a trailing expression echoes its value the way an interactive
// interpreter would, and captures all output into the returned Result.
// State accumulates across calls: a variable bound in one submission is
// visible in every later one.
//
// Errors raised by submitted code are reported through the Result's
// captured stderr, not through Execute's error return; Execute fails only
// for session-level conditions such as ErrSessionClosed.
package repl
