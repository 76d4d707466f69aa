package filter

import (
	"fmt"
	"strings"
)

// FilterParseError carries every syntax issue found in one expression,
// joined into a single message. The parser never returns a partial tree
// alongside it.
type FilterParseError struct {
	Issues []string
}

func (e *FilterParseError) Error() string {
	return fmt.Sprintf("Filter parse error: %s", strings.Join(e.Issues, ", "))
}

// EvaluationError marks an internal invariant violation (an operator
// reaching a branch it never should); it signals a programming defect,
// not bad input.
type EvaluationError struct {
	Message string
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("Evaluation error: %s", e.Message)
}

// TypeMismatchError reports an ordering comparison between incompatible,
// non-missing operand types.
type TypeMismatchError struct {
	LeftKind  string
	RightKind string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("Type mismatch: cannot compare %s with %s", e.LeftKind, e.RightKind)
}
