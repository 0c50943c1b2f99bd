package exec

import (
	"errors"
	"time"

	"github.com/jonwraymond/replexec/backend"
	"github.com/jonwraymond/replexec/goengine"
	"github.com/jonwraymond/replexec/loop"
	"github.com/jonwraymond/replexec/repl"
)

// Default configuration values.
const (
	DefaultMaxIterations  = loop.DefaultMaxIterations
	DefaultMaxResultChars = loop.DefaultMaxResultChars
)

// ErrClientRequired is returned when Options lacks a root client.
var ErrClientRequired = errors.New("exec: Client is required")

// Options configures an Exec instance.
type Options struct {
	// Client is the root model driving the conversation.
	// Required.
	Client backend.Client

	// RecursiveClient serves llmQuery calls issued from inside the
	// session. Defaults to Client.
	RecursiveClient backend.Client

	// Profile controls the stdlib surface available to submitted code.
	// Defaults to goengine.Restricted().
	Profile goengine.Profile

	// MaxIterations bounds the number of model turns per completion.
	// Default: 20
	MaxIterations int

	// MaxResultChars bounds each execution result folded into the
	// transcript. Default: 100000
	MaxResultChars int

	// BridgeTimeout bounds each nested query.
	// Default: backend.DefaultBridgeTimeout
	BridgeTimeout time.Duration

	// WorkspaceRoot is the directory under which session workspaces are
	// created. Defaults to os.TempDir().
	WorkspaceRoot string

	// SetupCode runs once in every new session before any submitted
	// code.
	SetupCode string

	// Logger is an optional logger for observability.
	Logger repl.Logger
}

// validate checks that required fields are set.
func (o *Options) validate() error {
	if o.Client == nil {
		return ErrClientRequired
	}
	return nil
}

// applyDefaults sets default values for unset optional fields.
func (o *Options) applyDefaults() {
	if o.RecursiveClient == nil {
		o.RecursiveClient = o.Client
	}
	if o.Profile.Name == "" {
		o.Profile = goengine.Restricted()
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.MaxResultChars == 0 {
		o.MaxResultChars = DefaultMaxResultChars
	}
}
