package loop

import (
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// systemPrompt describes the session to the root model. The context is
// never inlined; the model reaches it through the session variable.
func systemPrompt(tools []mcp.Tool, contextDesc string) string {
	var b strings.Builder
	b.WriteString(`You answer questions about a large context you cannot read directly.
Instead you have a persistent Go session. Submit code in a fenced block
tagged "repl" and it will be executed; variables persist between
submissions, and the value of a trailing expression is printed back to
you.

The context is bound to the variable named context, `)
	b.WriteString(contextDesc)
	b.WriteString(".\n\nAvailable in the session:\n")
	b.WriteString(renderCapabilities(tools))
	b.WriteString(`
Work in small steps: peek at slices of the context, search it, and use
llmQuery to digest chunks. When you know the answer, reply with
FINAL(your answer) to give it literally, or FINAL_VAR(name) to return
the value of a session variable. Each directive must start on its own
line.`)
	return b.String()
}

// iterationPrompt is sent with every completion request but never
// persisted to the transcript.
const iterationPrompt = `Decide your next action. Either submit one fenced repl code block to
inspect the context further, or finish with FINAL(...) or FINAL_VAR(...).`

// exhaustedPrompt requests the terminal answer once the iteration
// budget is spent.
const exhaustedPrompt = `You have used all of your code-execution budget. Answer the query now,
in plain text, using what you have learned so far.`

func queryMessage(query string) string {
	return fmt.Sprintf("Query:\n%s", query)
}
