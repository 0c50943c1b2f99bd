// Package goengine implements repl.Engine on the yaegi interpreter.
//
// Each Engine owns one persistent interpreter: bindings accumulate
// across calls, output goes to per-engine buffers instead of the host
// process streams, and capability bindings arrive as exported symbols
// under a synthetic "replenv" package that the engine aliases to bare
// names before any submitted code runs.
//
// A Profile controls the capability surface. The restricted profile
// installs a filtered stdlib symbol table (text, math, time and encoding
// packages only) and rejects declarations that import a denied package;
// the open profile installs the full stdlib table but keeps the denied
// list.
package goengine
