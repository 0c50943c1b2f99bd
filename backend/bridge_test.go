package backend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonwraymond/replexec/protocol"
)

func TestNewBridge_RequiresClient(t *testing.T) {
	_, err := NewBridge(BridgeConfig{})
	if !errors.Is(err, ErrNoClient) {
		t.Errorf("NewBridge() error = %v, want ErrNoClient", err)
	}
}

func TestBridge_Query(t *testing.T) {
	client := &stubClient{reply: "sub-answer"}
	bridge, err := NewBridge(BridgeConfig{Client: client})
	if err != nil {
		t.Fatalf("NewBridge() error = %v", err)
	}

	got, err := bridge.Query(context.Background(), "what is in chunk 3?")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if got != "sub-answer" {
		t.Errorf("Query() = %q, want %q", got, "sub-answer")
	}

	if len(client.calls) != 1 {
		t.Fatalf("client saw %d calls, want 1", len(client.calls))
	}
	msgs := client.calls[0]
	if len(msgs) != 1 || msgs[0].Role != protocol.RoleUser || msgs[0].Content != "what is in chunk 3?" {
		t.Errorf("client msgs = %v, want one user message with the prompt", msgs)
	}
}

func TestBridge_SystemPromptPrepended(t *testing.T) {
	client := &stubClient{reply: "ok"}
	bridge, err := NewBridge(BridgeConfig{Client: client, SystemPrompt: "answer tersely"})
	if err != nil {
		t.Fatalf("NewBridge() error = %v", err)
	}
	if _, err := bridge.Query(context.Background(), "q"); err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	msgs := client.calls[0]
	if len(msgs) != 2 || msgs[0].Role != protocol.RoleSystem || msgs[0].Content != "answer tersely" {
		t.Errorf("msgs = %v, want system message first", msgs)
	}
}

func TestBridge_AppliesTimeout(t *testing.T) {
	client := &deadlineClient{}
	bridge, err := NewBridge(BridgeConfig{Client: client, Timeout: time.Second})
	if err != nil {
		t.Fatalf("NewBridge() error = %v", err)
	}
	if _, err := bridge.Query(context.Background(), "q"); err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if !client.hadDeadline {
		t.Error("Query() context had no deadline, want the bridge timeout applied")
	}
}

func TestBridge_DefaultTimeout(t *testing.T) {
	cfg := BridgeConfig{Client: &stubClient{}}
	cfg.applyDefaults()
	if cfg.Timeout != DefaultBridgeTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultBridgeTimeout)
	}
}

func TestBridge_CostSurfacesUnimplemented(t *testing.T) {
	bridge, err := NewBridge(BridgeConfig{Client: &stubClient{}})
	if err != nil {
		t.Fatalf("NewBridge() error = %v", err)
	}
	if _, err := bridge.CostSummary(); !errors.Is(err, ErrUnimplemented) {
		t.Errorf("CostSummary() error = %v, want ErrUnimplemented", err)
	}
	if err := bridge.Reset(); !errors.Is(err, ErrUnimplemented) {
		t.Errorf("Reset() error = %v, want ErrUnimplemented", err)
	}
}

type deadlineClient struct {
	hadDeadline bool
}

func (c *deadlineClient) Kind() string  { return "deadline" }
func (c *deadlineClient) Model() string { return "deadline" }
func (c *deadlineClient) Complete(ctx context.Context, _ []protocol.Message) (string, error) {
	_, c.hadDeadline = ctx.Deadline()
	return "done", nil
}
