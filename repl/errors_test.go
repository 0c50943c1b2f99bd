package repl

import (
	"errors"
	"fmt"
	"testing"
)

func TestEvalError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *EvalError
		want string
	}{
		{
			name: "message only",
			err:  &EvalError{Message: "undefined: x"},
			want: "undefined: x",
		},
		{
			name: "with location",
			err:  &EvalError{Message: "undefined: x", Line: 3, Column: 7},
			want: "undefined: x (line 3, col 7)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEvalError_MatchesSentinel(t *testing.T) {
	err := &EvalError{Message: "boom"}
	if !errors.Is(err, ErrCodeExecution) {
		t.Error("EvalError does not match ErrCodeExecution")
	}
	if errors.Is(err, ErrConfiguration) {
		t.Error("EvalError matches ErrConfiguration, want no match")
	}
}

func TestEvalError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	err := &EvalError{Message: "outer", Err: inner}
	if !errors.Is(err, inner) {
		t.Error("wrapped error not reachable via errors.Is")
	}

	var target *EvalError
	wrapped := fmt.Errorf("context: %w", err)
	if !errors.As(wrapped, &target) {
		t.Error("errors.As failed to find EvalError")
	}
}
