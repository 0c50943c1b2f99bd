package repl

import (
	"fmt"
	"os"
	"strings"
)

// Config holds the configuration for a Session.
type Config struct {
	// Engine constructs the interpreter backing the session.
	// Required.
	Engine EngineFactory

	// Bridge serves nested model queries issued by interpreted code via
	// the llmQuery binding. Optional; when nil, llmQuery reports that no
	// nested model is configured.
	Bridge Bridge

	// Builtins maps additional bare names to Go values bound into the
	// interpreter's global scope. The llmQuery and finalVar bindings are
	// installed by the session and take precedence over entries here.
	Builtins map[string]any

	// SetupCode is executed once at construction, before the global
	// scope is snapshotted. Names it binds are treated as globals and
	// excluded from the session's variable mirror.
	SetupCode string

	// Prelude is executed once at construction, after the global scope
	// is snapshotted. Names it binds appear as session variables, which
	// is how context material is made addressable by name.
	Prelude string

	// WorkspaceFiles maps file names to contents written into the
	// workspace at construction, before any code runs. This is how
	// context material is made addressable as files.
	WorkspaceFiles map[string][]byte

	// WorkspaceRoot is the directory under which the per-session
	// workspace is created. Defaults to os.TempDir().
	WorkspaceRoot string

	// Logger is an optional logger for observability.
	Logger Logger
}

// Validate checks that all required fields are set.
// Returns ErrConfiguration if any required field is missing.
func (c *Config) Validate() error {
	var missing []string

	if c.Engine == nil {
		missing = append(missing, "Engine")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s",
			ErrConfiguration, strings.Join(missing, ", "))
	}
	return nil
}

// applyDefaults sets default values for optional fields.
func (c *Config) applyDefaults() {
	if c.WorkspaceRoot == "" {
		c.WorkspaceRoot = os.TempDir()
	}
}
