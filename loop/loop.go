package loop

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonwraymond/replexec/protocol"
)

// Orchestrator runs the conversation between the root model and an
// execution session.
//
// Contract:
// - Concurrency: safe for concurrent use; runs are serialized.
// - Context: Completion honors cancellation between model and session calls.
// - Errors: model and session-level failures abort the run; failures in
//   submitted code are folded into the transcript instead.
// - Ownership: Transcript returns a defensive copy.
type Orchestrator struct {
	cfg Config

	mu         sync.Mutex
	session    Session
	transcript []protocol.Message
}

// New creates an orchestrator from cfg.
func New(cfg Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &Orchestrator{cfg: cfg}, nil
}

// Completion answers query about input. It binds the context into a
// fresh session, then alternates model turns and code execution until
// the model emits a final-answer directive or the iteration budget runs
// out. The session and transcript remain inspectable until the next
// Completion or Reset.
func (o *Orchestrator) Completion(ctx context.Context, input any, query string) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.session != nil {
		o.session.Close()
		o.session = nil
	}

	payload := BindContext(input)
	session, err := o.cfg.Sessions(ctx, payload)
	if err != nil {
		return "", fmt.Errorf("creating session: %w", err)
	}
	o.session = session

	o.transcript = []protocol.Message{
		protocol.SystemMessage(systemPrompt(o.cfg.Capabilities, payload.Describe)),
		protocol.UserMessage(queryMessage(query)),
	}

	for i := 0; i < o.cfg.MaxIterations; i++ {
		reply, err := o.complete(ctx, iterationPrompt)
		if err != nil {
			return "", err
		}
		o.logf("loop: iteration %d: reply %d chars", i+1, len(reply))

		// A block-bearing reply persists only as its execution records;
		// the raw reply itself is folded in only when no blocks are found.
		blocks := protocol.CodeBlocks(reply)
		if len(blocks) == 0 {
			o.transcript = append(o.transcript,
				protocol.AssistantMessage("You responded with:\n"+reply))
		} else {
			for _, code := range blocks {
				res, err := session.Execute(ctx, code)
				if err != nil {
					return "", fmt.Errorf("executing block: %w", err)
				}
				o.transcript = append(o.transcript,
					executionMessage(code, formatResult(res), o.cfg.MaxResultChars))
			}
		}

		if d, ok := protocol.FinalAnswer(reply); ok {
			switch d.Kind {
			case protocol.DirectiveVariable:
				if v, found := session.LookupVar(d.Content); found {
					o.logf("loop: final answer from variable %q", d.Content)
					return v, nil
				}
				// Unknown variable: let the model try again.
				o.logf("loop: FINAL_VAR named unknown variable %q", d.Content)
			default:
				o.logf("loop: final answer after %d iterations", i+1)
				return d.Content, nil
			}
		}
	}

	o.logf("loop: iteration budget exhausted")
	o.transcript = append(o.transcript, protocol.UserMessage(exhaustedPrompt))
	return o.complete(ctx, "")
}

// complete requests one model turn over the transcript plus an optional
// turn instruction that is not persisted.
func (o *Orchestrator) complete(ctx context.Context, instruction string) (string, error) {
	msgs := append([]protocol.Message(nil), o.transcript...)
	if instruction != "" {
		msgs = append(msgs, protocol.UserMessage(instruction))
	}
	reply, err := o.cfg.Client.Complete(ctx, msgs)
	if err != nil {
		return "", fmt.Errorf("completion: %w", err)
	}
	return reply, nil
}

// Transcript returns a copy of the conversation so far.
func (o *Orchestrator) Transcript() []protocol.Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]protocol.Message(nil), o.transcript...)
}

// Reset discards the transcript and closes the bound session.
func (o *Orchestrator) Reset() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.transcript = nil
	if o.session == nil {
		return nil
	}
	err := o.session.Close()
	o.session = nil
	return err
}

func (o *Orchestrator) logf(format string, args ...any) {
	if o.cfg.Logger != nil {
		o.cfg.Logger.Logf(format, args...)
	}
}
