package expr

import (
	"strconv"
	"strings"
)

// Kind identifies the node kind of an Expression.
type Kind string

const (
	// Comparison kinds
	KindEquals             Kind = "EQUALS"
	KindNotEquals          Kind = "NOT_EQUALS"
	KindLessThan           Kind = "LESS_THAN"
	KindLessThanOrEqual    Kind = "LESS_THAN_OR_EQUAL"
	KindGreaterThan        Kind = "GREATER_THAN"
	KindGreaterThanOrEqual Kind = "GREATER_THAN_OR_EQUAL"

	// Logical kinds
	KindAnd Kind = "AND"
	KindOr  Kind = "OR"
	KindNot Kind = "NOT"

	// Pattern and null checks
	KindLike      Kind = "LIKE"
	KindIsNull    Kind = "IS_NULL"
	KindIsNotNull Kind = "IS_NOT_NULL"

	// Operands
	KindCast     Kind = "CAST"
	KindFieldRef Kind = "INPUT_REF"
	KindLiteral  Kind = "LITERAL"

	// KindOther marks planner nodes that have no counterpart here.
	KindOther Kind = "OTHER"
)

// IsComparison returns true for the six binary comparison kinds.
func (k Kind) IsComparison() bool {
	switch k {
	case KindEquals, KindNotEquals, KindLessThan, KindLessThanOrEqual,
		KindGreaterThan, KindGreaterThanOrEqual:
		return true
	}
	return false
}

// CompareOp is the operator of a Comparison node.
type CompareOp string

const (
	OpEq CompareOp = "EQ"
	OpNe CompareOp = "NE"
	OpLt CompareOp = "LT"
	OpLe CompareOp = "LE"
	OpGt CompareOp = "GT"
	OpGe CompareOp = "GE"
)

// Kind returns the node kind for the operator.
func (op CompareOp) Kind() Kind {
	switch op {
	case OpEq:
		return KindEquals
	case OpNe:
		return KindNotEquals
	case OpLt:
		return KindLessThan
	case OpLe:
		return KindLessThanOrEqual
	case OpGt:
		return KindGreaterThan
	case OpGe:
		return KindGreaterThanOrEqual
	default:
		return KindOther
	}
}

// LogicalOp is the operator of a Logical node.
type LogicalOp string

const (
	OpAnd LogicalOp = "AND"
	OpOr  LogicalOp = "OR"
	OpNot LogicalOp = "NOT"
)

// Expression is the interface implemented by all predicate nodes.
// Use type switches to access node data.
type Expression interface {
	// Kind returns the node kind (e.g., EQUALS, AND, LIKE).
	Kind() Kind

	// String renders the node for diagnostics.
	String() string

	// expressionMarker prevents implementations outside this package.
	expressionMarker()
}

// Comparison is a binary comparison. A well-formed comparison has exactly
// two operands, one field reference (possibly under casts) and one literal,
// in either order.
type Comparison struct {
	Op       CompareOp
	Operands []Expression
}

// Logical is AND, OR or NOT. AND and OR take one or more operands,
// NOT takes exactly one.
type Logical struct {
	Op       LogicalOp
	Operands []Expression
}

// Like matches a field against a SQL pattern literal (% and _ wildcards).
type Like struct {
	Operands []Expression
}

// NullCheck is IS NULL, or IS NOT NULL when NotNull is set.
type NullCheck struct {
	Operands []Expression
	NotNull  bool
}

// Cast converts Inner to Type. Translation looks through casts.
type Cast struct {
	Inner Expression
	Type  LiteralType
}

// FieldRef references a field by its position in the Fields catalog.
type FieldRef struct {
	Index int
}

// Other is a planner node kind that is not modelled here
// (IN lists, function calls, subqueries, ...).
type Other struct {
	Name     string
	Operands []Expression
}

func (c *Comparison) Kind() Kind { return c.Op.Kind() }

func (l *Logical) Kind() Kind {
	switch l.Op {
	case OpAnd:
		return KindAnd
	case OpOr:
		return KindOr
	case OpNot:
		return KindNot
	default:
		return KindOther
	}
}

func (*Like) Kind() Kind { return KindLike }

func (n *NullCheck) Kind() Kind {
	if n.NotNull {
		return KindIsNotNull
	}
	return KindIsNull
}

func (*Cast) Kind() Kind     { return KindCast }
func (*FieldRef) Kind() Kind { return KindFieldRef }
func (*Other) Kind() Kind    { return KindOther }

func (c *Comparison) String() string { return call(string(c.Kind()), c.Operands) }
func (l *Logical) String() string    { return call(string(l.Op), l.Operands) }
func (l *Like) String() string       { return call(string(KindLike), l.Operands) }
func (n *NullCheck) String() string  { return call(string(n.Kind()), n.Operands) }
func (o *Other) String() string      { return call(o.Name, o.Operands) }

func (c *Cast) String() string {
	if c.Inner == nil {
		return "CAST(<nil>)"
	}
	return "CAST(" + c.Inner.String() + " AS " + string(c.Type) + ")"
}

func (f *FieldRef) String() string { return "$" + strconv.Itoa(f.Index) }

func (*Comparison) expressionMarker() {}
func (*Logical) expressionMarker()    {}
func (*Like) expressionMarker()       {}
func (*NullCheck) expressionMarker()  {}
func (*Cast) expressionMarker()       {}
func (*FieldRef) expressionMarker()   {}
func (*Literal) expressionMarker()    {}
func (*Other) expressionMarker()      {}

func call(name string, operands []Expression) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte('(')
	for i, op := range operands {
		if i > 0 {
			sb.WriteString(", ")
		}
		if op == nil {
			sb.WriteString("<nil>")
			continue
		}
		sb.WriteString(op.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// Compare builds a comparison node.
func Compare(op CompareOp, left, right Expression) *Comparison {
	return &Comparison{Op: op, Operands: []Expression{left, right}}
}

// Eq builds left = right.
func Eq(left, right Expression) *Comparison { return Compare(OpEq, left, right) }

// Ne builds left <> right.
func Ne(left, right Expression) *Comparison { return Compare(OpNe, left, right) }

// Lt builds left < right.
func Lt(left, right Expression) *Comparison { return Compare(OpLt, left, right) }

// Le builds left <= right.
func Le(left, right Expression) *Comparison { return Compare(OpLe, left, right) }

// Gt builds left > right.
func Gt(left, right Expression) *Comparison { return Compare(OpGt, left, right) }

// Ge builds left >= right.
func Ge(left, right Expression) *Comparison { return Compare(OpGe, left, right) }

// And builds a conjunction.
func And(operands ...Expression) *Logical { return &Logical{Op: OpAnd, Operands: operands} }

// Or builds a disjunction.
func Or(operands ...Expression) *Logical { return &Logical{Op: OpOr, Operands: operands} }

// Not builds a negation.
func Not(operand Expression) *Logical {
	return &Logical{Op: OpNot, Operands: []Expression{operand}}
}

// LikePattern builds operand LIKE pattern.
func LikePattern(operand, pattern Expression) *Like {
	return &Like{Operands: []Expression{operand, pattern}}
}

// IsNull builds operand IS NULL.
func IsNull(operand Expression) *NullCheck {
	return &NullCheck{Operands: []Expression{operand}}
}

// IsNotNull builds operand IS NOT NULL.
func IsNotNull(operand Expression) *NullCheck {
	return &NullCheck{Operands: []Expression{operand}, NotNull: true}
}

// CastTo wraps inner in a cast to t.
func CastTo(inner Expression, t LiteralType) *Cast { return &Cast{Inner: inner, Type: t} }

// Field builds a field reference.
func Field(index int) *FieldRef { return &FieldRef{Index: index} }

// Unwrap strips any casts around e.
func Unwrap(e Expression) Expression {
	for {
		c, ok := e.(*Cast)
		if !ok || c.Inner == nil {
			return e
		}
		e = c.Inner
	}
}
