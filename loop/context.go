package loop

import (
	"encoding/json"
	"fmt"

	"github.com/jonwraymond/replexec/protocol"
)

// Workspace file names the context is materialized under.
const (
	contextTextFile = "context.txt"
	contextJSONFile = "context.json"
)

// Payload carries the bound context into a new session: a typed loader
// builtin, a prelude binding it to the context variable, workspace
// files holding the serialized context, and a one-line description for
// the system prompt.
type Payload struct {
	Builtins map[string]any
	Prelude  string
	Files    map[string][]byte
	Describe string
}

// BindContext converts the caller's context input into a Payload. Free
// text binds as a string and is materialized to context.txt; structured
// records bind as map[string]any and sequences as []any, both
// materialized to context.json; message lists reduce to their content
// fields. Anything else is rendered to text.
func BindContext(input any) Payload {
	switch v := input.(type) {
	case nil:
		return textPayload("")
	case string:
		return textPayload(v)
	case map[string]any:
		return Payload{
			Builtins: map[string]any{"loadContext": func() map[string]any { return v }},
			Prelude:  "context := loadContext()",
			Files:    structuredFile(v),
			Describe: fmt.Sprintf("a map with %d keys", len(v)),
		}
	case []string:
		items := make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
		return listPayload(items)
	case []any:
		return listPayload(v)
	case []protocol.Message:
		items := make([]any, len(v))
		for i, m := range v {
			items[i] = m.Content
		}
		return listPayload(items)
	case []map[string]string:
		items := make([]any, 0, len(v))
		for _, m := range v {
			if content, ok := m["content"]; ok {
				items = append(items, content)
			}
		}
		return listPayload(items)
	default:
		return textPayload(fmt.Sprintf("%v", input))
	}
}

func textPayload(text string) Payload {
	return Payload{
		Builtins: map[string]any{"loadContext": func() string { return text }},
		Prelude:  "context := loadContext()",
		Files:    map[string][]byte{contextTextFile: []byte(text)},
		Describe: fmt.Sprintf("a string of %d chars", len(text)),
	}
}

func listPayload(items []any) Payload {
	return Payload{
		Builtins: map[string]any{"loadContext": func() []any { return items }},
		Prelude:  "context := loadContext()",
		Files:    structuredFile(items),
		Describe: fmt.Sprintf("a list of %d entries", len(items)),
	}
}

// structuredFile serializes a structured context for the workspace.
// Values that JSON cannot represent fall back to their textual form.
func structuredFile(v any) map[string][]byte {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return map[string][]byte{contextTextFile: []byte(fmt.Sprintf("%v", v))}
	}
	return map[string][]byte{contextJSONFile: data}
}
