package translate

import (
	"strings"

	"github.com/hugr-lab/solr-pushdown/expr"
)

// aggregateDialect renders nested function calls evaluated against
// aggregated tuples: eq(f,v), lt, lteq, gt, gteq, and(...), or(...), not(...).
// It has no notion of a match-all combinator.
type aggregateDialect struct {
	aliases expr.AliasMap
}

func (aggregateDialect) mode() Mode { return ModeAggregate }

func (d aggregateDialect) field(name string) string { return d.aliases.Resolve(name) }

func (aggregateDialect) comparison(e expr.Expression, op expr.CompareOp, field string, lit *expr.Literal) (fragment, error) {
	value := strings.TrimSpace(lit.Repr())
	switch op {
	case expr.OpEq:
		return fragment{text: fn("eq", field, value)}, nil
	case expr.OpNe:
		return fragment{text: fn("not", fn("eq", field, value))}, nil
	case expr.OpLt:
		return fragment{text: fn("lt", field, value)}, nil
	case expr.OpLe:
		return fragment{text: fn("lteq", field, value)}, nil
	case expr.OpGt:
		return fragment{text: fn("gt", field, value)}, nil
	case expr.OpGe:
		return fragment{text: fn("gteq", field, value)}, nil
	default:
		return fragment{}, malformed(ModeAggregate, e, "unknown comparison operator %q", op)
	}
}

func (aggregateDialect) between(string, *expr.Literal, *expr.Literal) (fragment, bool) {
	return fragment{}, false
}

func (aggregateDialect) like(e expr.Expression, _ string, _ *expr.Literal) (fragment, error) {
	return fragment{}, unsupported(ModeAggregate, e, "LIKE cannot filter aggregated results")
}

func (aggregateDialect) nullCheck(e expr.Expression, _ string, _ bool) (fragment, error) {
	return fragment{}, unsupported(ModeAggregate, e, "null checks cannot filter aggregated results")
}

func (aggregateDialect) not(inner fragment) fragment {
	return fragment{text: fn("not", inner.text)}
}

func (aggregateDialect) and(e expr.Expression, positive, negated []fragment) (fragment, error) {
	nots := make([]string, len(negated))
	for i, f := range negated {
		nots[i] = fn("not", f.text)
	}

	switch {
	case len(positive) == 0 && len(nots) == 0:
		return fragment{}, unsupported(ModeAggregate, e, "conjunction has no operands to render")
	case len(positive) == 0:
		return fragment{text: join("and", nots)}, nil
	}

	parts := make([]string, len(positive))
	for i, f := range positive {
		parts[i] = f.text
	}
	clause := join("and", parts)
	if len(nots) == 0 {
		return fragment{text: clause}, nil
	}
	return fragment{text: fn("and", append([]string{clause}, nots...)...)}, nil
}

func (aggregateDialect) or(disjuncts []fragment) fragment {
	parts := make([]string, len(disjuncts))
	for i, f := range disjuncts {
		parts[i] = f.text
	}
	return fragment{text: join("or", parts)}
}

func (aggregateDialect) other(e expr.Expression) (fragment, error) {
	return fragment{}, unsupported(ModeAggregate, e, "%s cannot filter aggregated results", e.Kind())
}

// join renders name(args...), collapsing a single argument to itself.
func join(name string, args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return fn(name, args...)
}

func fn(name string, args ...string) string {
	return name + "(" + strings.Join(args, ",") + ")"
}
