package loop

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonwraymond/replexec/protocol"
	"github.com/jonwraymond/replexec/repl"
)

// DefaultMaxResultChars bounds the rendered execution result folded
// into the transcript.
const DefaultMaxResultChars = 100000

// varPreviewChars bounds each variable value preview in the rendered
// result.
const varPreviewChars = 100

// formatResult renders an execution record for the model: captured
// output, captured failures, and the session variables with short value
// previews.
func formatResult(res repl.Result) string {
	var b strings.Builder
	if res.Stdout != "" {
		b.WriteString(res.Stdout)
		if !strings.HasSuffix(res.Stdout, "\n") {
			b.WriteString("\n")
		}
	}
	if res.Stderr != "" {
		b.WriteString("Stderr:\n")
		b.WriteString(res.Stderr)
		if !strings.HasSuffix(res.Stderr, "\n") {
			b.WriteString("\n")
		}
	}

	names := make([]string, 0, len(res.Locals))
	for name := range res.Locals {
		if name == "_stdout" || name == "_stderr" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	b.WriteString("Session variables: [")
	for i, name := range names {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		b.WriteString("=")
		b.WriteString(truncate(fmt.Sprintf("%v", res.Locals[name]), varPreviewChars))
	}
	b.WriteString("]")
	return b.String()
}

// executionMessage folds an executed block and its rendered result into
// a transcript message.
func executionMessage(code, rendered string, limit int) protocol.Message {
	content := fmt.Sprintf("Code executed:\n```go\n%s\n```\n\nSession output:\n%s",
		code, truncate(rendered, limit))
	return protocol.UserMessage(content)
}

// truncate bounds s to limit bytes, cutting back to a rune boundary so
// the result stays valid UTF-8. A non-positive limit means unbounded.
func truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit] + "..."
}
