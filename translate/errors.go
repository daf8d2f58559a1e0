package translate

import (
	"errors"
	"fmt"

	"github.com/hugr-lab/solr-pushdown/expr"
)

// Standard errors returned by the translator.
// Both are planning-time defects and are never worth retrying.
var (
	// ErrMalformedPredicate indicates a tree outside the supported grammar:
	// wrong operand count, no field/literal pair, unknown field index.
	ErrMalformedPredicate = errors.New("malformed predicate")

	// ErrUnsupportedPredicate indicates a node kind the active dialect
	// cannot render. The caller must evaluate the predicate itself.
	ErrUnsupportedPredicate = errors.New("unsupported predicate")
)

// errNotTranslatable marks a document-mode predicate that cannot be pushed
// down. It never leaves the package: Translate reports it as a nil Result.
var errNotTranslatable = errors.New("predicate not translatable")

// PredicateError describes a rejected predicate.
// It unwraps to ErrMalformedPredicate or ErrUnsupportedPredicate.
type PredicateError struct {
	Kind   error
	Mode   Mode
	Expr   string
	Reason string
}

func (e *PredicateError) Error() string {
	return fmt.Sprintf("%v (%s mode): %s: %s", e.Kind, e.Mode, e.Reason, e.Expr)
}

func (e *PredicateError) Unwrap() error { return e.Kind }

func malformed(mode Mode, e expr.Expression, format string, args ...any) error {
	return newPredicateError(ErrMalformedPredicate, mode, e, format, args...)
}

func unsupported(mode Mode, e expr.Expression, format string, args ...any) error {
	return newPredicateError(ErrUnsupportedPredicate, mode, e, format, args...)
}

func newPredicateError(kind error, mode Mode, e expr.Expression, format string, args ...any) error {
	s := "<nil>"
	if e != nil {
		s = e.String()
	}
	return &PredicateError{
		Kind:   kind,
		Mode:   mode,
		Expr:   s,
		Reason: fmt.Sprintf(format, args...),
	}
}
