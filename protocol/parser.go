package protocol

import (
	"regexp"
	"strings"
)

// FenceTag is the info string that marks a fenced code block as executable.
const FenceTag = "repl"

var (
	codeBlockRe = regexp.MustCompile("(?s)```" + FenceTag + "[ \t]*\n(.*?)\n```")
	finalVarRe  = regexp.MustCompile(`(?ms)^\s*FINAL_VAR\((.*?)\)`)
	finalRe     = regexp.MustCompile(`(?ms)^\s*FINAL\((.*?)\)`)
)

// CodeBlocks extracts the inner text of every ```repl fenced block in text,
// in document order, with the fence markers stripped and surrounding
// whitespace trimmed. It returns nil when no blocks are present; callers
// treat a nil result and an empty slice identically (nothing to run).
func CodeBlocks(text string) []string {
	matches := codeBlockRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	blocks := make([]string, 0, len(matches))
	for _, m := range matches {
		blocks = append(blocks, strings.TrimSpace(m[1]))
	}
	return blocks
}

// DirectiveKind discriminates the two final-answer directive forms.
type DirectiveKind string

const (
	// DirectiveLiteral is the FINAL(...) form: the directive content is the
	// answer text itself.
	DirectiveLiteral DirectiveKind = "final"

	// DirectiveVariable is the FINAL_VAR(...) form: the directive content
	// names a session variable whose value is the answer.
	DirectiveVariable DirectiveKind = "final_var"
)

// Directive is a recognized final-answer directive.
type Directive struct {
	Kind    DirectiveKind
	Content string
}

// FinalAnswer scans text for a line-anchored final-answer directive and
// returns the first recognized form. FINAL_VAR is checked before FINAL, so a
// reply containing both resolves to the named-variable form; this scan order
// is part of the protocol contract.
func FinalAnswer(text string) (Directive, bool) {
	if m := finalVarRe.FindStringSubmatch(text); m != nil {
		return Directive{Kind: DirectiveVariable, Content: strings.TrimSpace(m[1])}, true
	}
	if m := finalRe.FindStringSubmatch(text); m != nil {
		return Directive{Kind: DirectiveLiteral, Content: strings.TrimSpace(m[1])}, true
	}
	return Directive{}, false
}
