package translate

import (
	"errors"
	"fmt"

	"github.com/hugr-lab/solr-pushdown/expr"
)

// MatchAllQuery matches every document.
const MatchAllQuery = "*:*"

// Result is a translated predicate.
type Result struct {
	// Query is the rendered predicate.
	Query string

	// RequiresMatchAll reports that Query alone does not positively select
	// documents (e.g. a pure negation) and must be conjoined with
	// MatchAllQuery to be a valid standalone filter.
	// Always false in aggregate mode.
	RequiresMatchAll bool
}

// Standalone returns Query conjoined with MatchAllQuery when required.
func (r *Result) Standalone() string {
	if !r.RequiresMatchAll {
		return r.Query
	}
	return MatchAllQuery + " AND " + r.Query
}

// fragment is a rendered sub-predicate. matchAll is the match-all
// requirement of the fragment taken on its own.
type fragment struct {
	text     string
	matchAll bool
}

// dialect renders leaves and joins for one output grammar.
// Every node kind reaches exactly one method, so a new dialect has to
// decide on all of them.
type dialect interface {
	mode() Mode

	// field maps a catalog field name to the name used in the output.
	field(name string) string

	comparison(e expr.Expression, op expr.CompareOp, field string, lit *expr.Literal) (fragment, error)

	// between renders lo <= field <= hi as a single range.
	// Returns false if the grammar has no range form.
	between(field string, lo, hi *expr.Literal) (fragment, bool)

	like(e expr.Expression, field string, pattern *expr.Literal) (fragment, error)
	nullCheck(e expr.Expression, field string, notNull bool) (fragment, error)
	not(inner fragment) fragment
	and(e expr.Expression, positive, negated []fragment) (fragment, error)
	or(disjuncts []fragment) fragment

	// other handles node kinds with no rendering in this grammar.
	other(e expr.Expression) (fragment, error)
}

// Translator converts predicates over a fixed field catalog.
// It is stateless between calls and safe for concurrent use.
type Translator struct {
	fields  expr.Fields
	dialect dialect
}

// NewDocumentTranslator creates a translator producing document queries.
func NewDocumentTranslator(fields expr.Fields) *Translator {
	return &Translator{fields: fields, dialect: documentDialect{}}
}

// NewAggregateTranslator creates a translator producing aggregate
// predicates. Field names found in aliases are replaced by the aggregate
// expression they stand for. aliases may be nil.
func NewAggregateTranslator(fields expr.Fields, aliases expr.AliasMap) *Translator {
	return &Translator{fields: fields, dialect: aggregateDialect{aliases: aliases}}
}

// New creates a translator for the given mode.
func New(mode Mode, fields expr.Fields, aliases expr.AliasMap) (*Translator, error) {
	switch mode {
	case ModeDocument:
		return NewDocumentTranslator(fields), nil
	case ModeAggregate:
		return NewAggregateTranslator(fields, aliases), nil
	default:
		return nil, fmt.Errorf("unknown translation mode: %q", mode)
	}
}

// Translate translates a predicate with a one-off translator.
func Translate(e expr.Expression, mode Mode, fields expr.Fields, aliases expr.AliasMap) (*Result, error) {
	t, err := New(mode, fields, aliases)
	if err != nil {
		return nil, err
	}
	return t.Translate(e)
}

// Mode returns the output grammar of the translator.
func (t *Translator) Mode() Mode { return t.dialect.mode() }

// Translate renders e.
//
// Returns (nil, nil) when a document-mode predicate cannot be pushed down;
// the caller keeps evaluating it. Returns a *PredicateError for malformed
// input and for node kinds the dialect does not support.
func (t *Translator) Translate(e expr.Expression) (*Result, error) {
	f, err := t.match(e)
	if errors.Is(err, errNotTranslatable) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &Result{
		Query:            f.text,
		RequiresMatchAll: f.matchAll && t.dialect.mode() == ModeDocument,
	}, nil
}

func (t *Translator) match(e expr.Expression) (fragment, error) {
	switch n := e.(type) {
	case *expr.Comparison:
		return t.comparison(n)
	case *expr.Logical:
		switch n.Op {
		case expr.OpNot:
			return t.not(n)
		case expr.OpAnd:
			return t.and(n)
		case expr.OpOr:
			return t.or(n)
		default:
			return fragment{}, malformed(t.Mode(), n, "unknown logical operator %q", n.Op)
		}
	case *expr.Like:
		return t.like(n)
	case *expr.NullCheck:
		return t.nullCheck(n)
	case nil:
		return fragment{}, malformed(t.Mode(), nil, "missing predicate")
	default:
		return t.dialect.other(e)
	}
}

func (t *Translator) comparison(c *expr.Comparison) (fragment, error) {
	op, field, lit, err := t.normalize(c)
	if err != nil {
		return fragment{}, err
	}
	return t.dialect.comparison(c, op, field, lit)
}

func (t *Translator) not(n *expr.Logical) (fragment, error) {
	if len(n.Operands) != 1 {
		return fragment{}, malformed(t.Mode(), n, "expected 1 operand, got %d", len(n.Operands))
	}

	inner := n.Operands[0]
	if nn, ok := inner.(*expr.Logical); ok && nn.Op == expr.OpNot && len(nn.Operands) == 1 {
		return t.match(nn.Operands[0])
	}
	if eq, ok := complement(inner); ok {
		return t.match(eq)
	}

	f, err := t.match(inner)
	if err != nil {
		return fragment{}, err
	}
	return t.dialect.not(f), nil
}

func (t *Translator) and(n *expr.Logical) (fragment, error) {
	if len(n.Operands) == 0 {
		return fragment{}, malformed(t.Mode(), n, "expected at least 1 operand")
	}

	if len(n.Operands) == 2 {
		if f, ok := t.mergeRange(n.Operands[0], n.Operands[1]); ok {
			return f, nil
		}
	}

	positive, negated := expr.DecomposeConjunction(n)
	if hasNil(positive) || hasNil(negated) {
		return fragment{}, malformed(t.Mode(), n, "nil operand")
	}

	// NOT(f <> v) is a positive conjunct.
	kept := negated[:0]
	for _, op := range negated {
		if eq, ok := complement(op); ok {
			positive = append(positive, eq)
			continue
		}
		kept = append(kept, op)
	}
	negated = kept

	pos := make([]fragment, 0, len(positive))
	for _, op := range positive {
		f, err := t.match(op)
		if err != nil {
			return fragment{}, err
		}
		pos = append(pos, f)
	}

	neg := make([]fragment, 0, len(negated))
	for _, op := range negated {
		f, err := t.match(op)
		if err != nil {
			return fragment{}, err
		}
		neg = append(neg, f)
	}

	return t.dialect.and(n, pos, neg)
}

// mergeRange collapses field >= lo AND field <= hi into one range when
// both sides address the same field and lo <= hi.
func (t *Translator) mergeRange(a, b expr.Expression) (fragment, bool) {
	ca, ok := a.(*expr.Comparison)
	if !ok {
		return fragment{}, false
	}
	cb, ok := b.(*expr.Comparison)
	if !ok {
		return fragment{}, false
	}

	opA, fieldA, litA, err := t.normalize(ca)
	if err != nil {
		return fragment{}, false
	}
	opB, fieldB, litB, err := t.normalize(cb)
	if err != nil {
		return fragment{}, false
	}

	var lo, hi *expr.Literal
	switch {
	case opA == expr.OpGe && opB == expr.OpLe:
		lo, hi = litA, litB
	case opA == expr.OpLe && opB == expr.OpGe:
		lo, hi = litB, litA
	default:
		return fragment{}, false
	}

	if fieldA != fieldB {
		return fragment{}, false
	}
	if c, err := expr.CompareLiterals(lo, hi); err != nil || c > 0 {
		return fragment{}, false
	}

	return t.dialect.between(fieldA, lo, hi)
}

func (t *Translator) or(n *expr.Logical) (fragment, error) {
	if len(n.Operands) == 0 {
		return fragment{}, malformed(t.Mode(), n, "expected at least 1 operand")
	}

	disjuncts := expr.Disjunctions(n)
	if hasNil(disjuncts) {
		return fragment{}, malformed(t.Mode(), n, "nil operand")
	}
	if len(disjuncts) == 0 {
		return t.dialect.other(n)
	}

	parts := make([]fragment, 0, len(disjuncts))
	for _, d := range disjuncts {
		f, err := t.match(d)
		if err != nil {
			return fragment{}, err
		}
		parts = append(parts, f)
	}
	return t.dialect.or(parts), nil
}

func (t *Translator) like(l *expr.Like) (fragment, error) {
	field, pattern, _, err := t.fieldLiteral(l, l.Operands)
	if err != nil {
		return fragment{}, err
	}
	return t.dialect.like(l, field, pattern)
}

func (t *Translator) nullCheck(n *expr.NullCheck) (fragment, error) {
	if len(n.Operands) != 1 {
		return fragment{}, malformed(t.Mode(), n, "expected 1 operand, got %d", len(n.Operands))
	}
	ref, ok := expr.Unwrap(n.Operands[0]).(*expr.FieldRef)
	if !ok {
		return fragment{}, malformed(t.Mode(), n, "expected field reference operand")
	}
	name, err := t.fieldName(n, ref)
	if err != nil {
		return fragment{}, err
	}
	return t.dialect.nullCheck(n, name, n.NotNull)
}

// normalize extracts the field and literal of a comparison and returns the
// operator as seen from the field, so 5 < f comes back as f > 5.
func (t *Translator) normalize(c *expr.Comparison) (expr.CompareOp, string, *expr.Literal, error) {
	field, lit, reversed, err := t.fieldLiteral(c, c.Operands)
	if err != nil {
		return "", "", nil, err
	}
	op := c.Op
	if reversed {
		op = flip(op)
	}
	return op, field, lit, nil
}

// fieldLiteral finds the field/literal pair of a binary node, trying both
// operand orders. reversed is set when the literal comes first.
func (t *Translator) fieldLiteral(e expr.Expression, operands []expr.Expression) (string, *expr.Literal, bool, error) {
	if len(operands) != 2 {
		return "", nil, false, malformed(t.Mode(), e, "expected 2 operands, got %d", len(operands))
	}

	reversed := false
	ref, lit := pair(operands[0], operands[1])
	if ref == nil {
		ref, lit = pair(operands[1], operands[0])
		reversed = true
	}
	if ref == nil {
		return "", nil, false, malformed(t.Mode(), e, "expected a field reference and a literal")
	}

	name, err := t.fieldName(e, ref)
	if err != nil {
		return "", nil, false, err
	}
	return name, lit, reversed, nil
}

func (t *Translator) fieldName(e expr.Expression, ref *expr.FieldRef) (string, error) {
	name, err := t.fields.Name(ref.Index)
	if err != nil {
		return "", malformed(t.Mode(), e, "%v", err)
	}
	return t.dialect.field(name), nil
}

// pair matches (field, literal), looking through casts on both sides.
func pair(left, right expr.Expression) (*expr.FieldRef, *expr.Literal) {
	lit, ok := expr.Unwrap(right).(*expr.Literal)
	if !ok {
		return nil, nil
	}
	ref, ok := expr.Unwrap(left).(*expr.FieldRef)
	if !ok {
		return nil, nil
	}
	return ref, lit
}

// complement returns f = v for a NOT operand of the form f <> v.
func complement(e expr.Expression) (expr.Expression, bool) {
	c, ok := e.(*expr.Comparison)
	if !ok || c.Op != expr.OpNe {
		return nil, false
	}
	return &expr.Comparison{Op: expr.OpEq, Operands: c.Operands}, true
}

func hasNil(list []expr.Expression) bool {
	for _, e := range list {
		if e == nil {
			return true
		}
	}
	return false
}

func flip(op expr.CompareOp) expr.CompareOp {
	switch op {
	case expr.OpLt:
		return expr.OpGt
	case expr.OpLe:
		return expr.OpGe
	case expr.OpGt:
		return expr.OpLt
	case expr.OpGe:
		return expr.OpLe
	default:
		return op
	}
}
