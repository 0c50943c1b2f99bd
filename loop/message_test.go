package loop

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jonwraymond/replexec/protocol"
	"github.com/jonwraymond/replexec/repl"
)

func TestFormatResult(t *testing.T) {
	res := repl.Result{
		Stdout: "42\n",
		Stderr: "warning: something\n",
		Locals: map[string]any{
			"x":       42,
			"name":    "haystack",
			"_stdout": "42\n",
			"_stderr": "warning: something\n",
		},
	}
	got := formatResult(res)

	if !strings.HasPrefix(got, "42\n") {
		t.Errorf("rendered = %q, want it to start with stdout", got)
	}
	if !strings.Contains(got, "Stderr:\nwarning: something") {
		t.Errorf("rendered = %q, want a stderr section", got)
	}
	if !strings.Contains(got, "name=haystack") || !strings.Contains(got, "x=42") {
		t.Errorf("rendered = %q, want variable previews", got)
	}
	if strings.Contains(got, "_stdout") {
		t.Errorf("rendered = %q, want output mirrors excluded from the listing", got)
	}
}

func TestFormatResult_Empty(t *testing.T) {
	got := formatResult(repl.Result{})
	if got != "Session variables: []" {
		t.Errorf("rendered = %q, want just the empty variable listing", got)
	}
}

func TestFormatResult_PreviewsBounded(t *testing.T) {
	res := repl.Result{
		Locals: map[string]any{"big": strings.Repeat("z", 300)},
	}
	got := formatResult(res)
	if strings.Contains(got, strings.Repeat("z", 101)) {
		t.Errorf("preview exceeds %d chars", varPreviewChars)
	}
	if !strings.Contains(got, "...") {
		t.Error("long preview not marked as truncated")
	}
}

func TestExecutionMessage(t *testing.T) {
	msg := executionMessage("x := 1\nx", "1\nSession variables: [x=1]", 1000)
	if msg.Role != protocol.RoleUser {
		t.Errorf("Role = %q, want user", msg.Role)
	}
	if !strings.Contains(msg.Content, "Code executed:\n```go\nx := 1\nx\n```") {
		t.Errorf("Content = %q, want the fenced code", msg.Content)
	}
	if !strings.Contains(msg.Content, "Session output:\n1\n") {
		t.Errorf("Content = %q, want the rendered output", msg.Content)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		limit int
		want  string
	}{
		{"under limit", "abc", 10, "abc"},
		{"at limit", "abc", 3, "abc"},
		{"over limit", "abcdef", 3, "abc..."},
		{"zero limit unbounded", "abcdef", 0, "abcdef"},
		{"cut mid two-byte rune", "héllo", 2, "h..."},
		{"cut on rune boundary", "héllo", 3, "hé..."},
		{"cut mid three-byte rune", "a世b", 3, "a..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.s, tt.limit)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.s, tt.limit, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncate(%q, %d) produced invalid UTF-8", tt.s, tt.limit)
			}
		})
	}
}
