package repl

import "strings"

// statementKeywords are the leading tokens that mark a line as a
// statement rather than an expression.
var statementKeywords = map[string]bool{
	"import":      true,
	"var":         true,
	"const":       true,
	"type":        true,
	"func":        true,
	"if":          true,
	"for":         true,
	"switch":      true,
	"select":      true,
	"go":          true,
	"defer":       true,
	"return":      true,
	"break":       true,
	"continue":    true,
	"fallthrough": true,
	"goto":        true,
	"package":     true,
}

// splitDeclarations partitions src into declaration source (single-line
// import forms and parenthesized import blocks) and body source, each
// preserving original line order.
func splitDeclarations(src string) (decls, body string) {
	var declLines, bodyLines []string
	inBlock := false
	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case inBlock:
			declLines = append(declLines, line)
			if trimmed == ")" {
				inBlock = false
			}
		case trimmed == "import (" || strings.HasPrefix(trimmed, "import ("):
			declLines = append(declLines, line)
			inBlock = true
		case strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, "import\t"):
			declLines = append(declLines, line)
		default:
			bodyLines = append(bodyLines, line)
		}
	}
	return strings.Join(declLines, "\n"), strings.Join(bodyLines, "\n")
}

// isExpression reports whether a single line of code reads as a bare
// expression whose value should be echoed. The check is a lexical
// heuristic, not a parse: it inspects the leading token, assignment
// operators outside a trailing line comment, a block-opening suffix, and
// explicit print calls. Misclassification is harmless because evaluation
// failures fall back to statement execution. Assignment operators inside
// string literals or composite literals are not recognized.
func isExpression(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "//") {
		return false
	}
	if i := strings.Index(trimmed, "//"); i >= 0 {
		trimmed = strings.TrimSpace(trimmed[:i])
		if trimmed == "" {
			return false
		}
	}
	if first := firstToken(trimmed); statementKeywords[first] {
		return false
	}
	if strings.HasPrefix(trimmed, "}") {
		return false
	}
	if strings.HasSuffix(trimmed, "{") ||
		strings.HasSuffix(trimmed, "++") || strings.HasSuffix(trimmed, "--") {
		return false
	}
	if strings.HasPrefix(trimmed, "fmt.Print") ||
		strings.HasPrefix(trimmed, "print(") || strings.HasPrefix(trimmed, "println(") {
		return false
	}
	if hasAssignment(trimmed) {
		return false
	}
	return true
}

// hasAssignment reports whether s contains an assignment operator. The
// comparison operators ==, !=, <= and >= are not assignments.
func hasAssignment(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '=' {
			continue
		}
		if i+1 < len(s) && s[i+1] == '=' {
			i++ // skip the == pair
			continue
		}
		if i > 0 {
			switch s[i-1] {
			case '=', '!', '<', '>':
				continue
			}
		}
		return true
	}
	return false
}

// firstToken returns the leading identifier-like token of s.
func firstToken(s string) string {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' ||
			i > 0 && c >= '0' && c <= '9' {
			continue
		}
		return s[:i]
	}
	return s
}

// lastBodyLine returns the index of the last line of body that is
// neither blank nor a bare comment, or -1 when there is none.
func lastBodyLine(lines []string) int {
	for i := len(lines) - 1; i >= 0; i-- {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		return i
	}
	return -1
}
