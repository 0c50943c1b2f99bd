package loop

import (
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Capabilities returns descriptors for the operations bound inside the
// execution session. They are rendered into the system prompt; keeping
// them as MCP tool shapes keeps the description aligned with how the
// bindings would be advertised to an MCP-speaking host.
func Capabilities() []mcp.Tool {
	return []mcp.Tool{
		{
			Name:        "llmQuery",
			Description: "Send a prompt to a sub-model and return its reply. Use it to digest a chunk of the context that is too large to reason about directly.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"prompt": map[string]any{"type": "string"},
				},
				"required": []string{"prompt"},
			},
			Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
		},
		{
			Name:        "finalVar",
			Description: "Return the textual value of a session variable by name. The same lookup backs the FINAL_VAR(name) directive.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name": map[string]any{"type": "string"},
				},
				"required": []string{"name"},
			},
			Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true},
		},
	}
}

// renderCapabilities formats the descriptors as a bulleted list for the
// system prompt.
func renderCapabilities(tools []mcp.Tool) string {
	var b strings.Builder
	for _, t := range tools {
		fmt.Fprintf(&b, "- %s: %s\n", t.Name, t.Description)
	}
	return b.String()
}
