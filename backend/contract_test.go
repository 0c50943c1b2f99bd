package backend

import (
	"context"
	"testing"

	"github.com/jonwraymond/replexec/protocol"
)

type stubClient struct {
	reply string
	err   error
	calls [][]protocol.Message
}

func (c *stubClient) Kind() string  { return "stub" }
func (c *stubClient) Model() string { return "stub-model" }
func (c *stubClient) Complete(_ context.Context, msgs []protocol.Message) (string, error) {
	c.calls = append(c.calls, msgs)
	return c.reply, c.err
}

func TestClientContracts(t *testing.T) {
	var _ Client = (*stubClient)(nil)

	c := &stubClient{reply: "ok"}
	got, err := c.Complete(context.Background(), []protocol.Message{protocol.UserMessage("hi")})
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if got != "ok" {
		t.Fatalf("Complete = %q, want %q", got, "ok")
	}
}
