// Package backend provides model client abstractions and registry.
//
// This package defines the core Client interface and the infrastructure
// around it:
//
//   - Client interface for chat-completion model providers
//   - Registry for constructing clients by provider kind
//   - Bridge for nested model queries issued from inside an execution
//     session, with a hard per-call timeout
//
// # Registry
//
// The Registry maps provider kinds to factories:
//
//	registry := backend.NewRegistry()
//	registry.RegisterFactory("gemini", gemini.NewFactory())
//
//	client, _ := registry.New("gemini", "gemini-2.5-flash")
//
// # Bridge
//
// The Bridge wraps a Client for use as a session capability. Every call
// runs under a fixed timeout so a stuck provider cannot wedge an
// execution:
//
//	bridge := backend.NewBridge(backend.BridgeConfig{Client: client})
//	reply, _ := bridge.Query(ctx, "summarize this chunk")
package backend
