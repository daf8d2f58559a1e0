package filter

import (
	"errors"
	"strconv"

	"github.com/hugr-lab/solr-pushdown/expr"
)

// ErrInvalidFilter is returned for pushdown JSON that cannot be decoded.
var ErrInvalidFilter = errors.New("filter: invalid pushdown JSON")

// ExpressionClass identifies the category of a DuckDB bound expression.
type ExpressionClass string

const (
	ClassBoundAggregate   ExpressionClass = "BOUND_AGGREGATE"
	ClassBoundBetween     ExpressionClass = "BOUND_BETWEEN"
	ClassBoundCase        ExpressionClass = "BOUND_CASE"
	ClassBoundCast        ExpressionClass = "BOUND_CAST"
	ClassBoundColumnRef   ExpressionClass = "BOUND_COLUMN_REF"
	ClassBoundComparison  ExpressionClass = "BOUND_COMPARISON"
	ClassBoundConjunction ExpressionClass = "BOUND_CONJUNCTION"
	ClassBoundConstant    ExpressionClass = "BOUND_CONSTANT"
	ClassBoundFunction    ExpressionClass = "BOUND_FUNCTION"
	ClassBoundOperator    ExpressionClass = "BOUND_OPERATOR"
	ClassBoundParameter   ExpressionClass = "BOUND_PARAMETER"
	ClassBoundWindow      ExpressionClass = "BOUND_WINDOW"
)

// ExpressionType identifies the operation of a bound expression.
type ExpressionType string

const (
	TypeCompareEqual              ExpressionType = "COMPARE_EQUAL"
	TypeCompareNotEqual           ExpressionType = "COMPARE_NOTEQUAL"
	TypeCompareLessThan           ExpressionType = "COMPARE_LESSTHAN"
	TypeCompareGreaterThan        ExpressionType = "COMPARE_GREATERTHAN"
	TypeCompareLessThanOrEqual    ExpressionType = "COMPARE_LESSTHANOREQUALTO"
	TypeCompareGreaterThanOrEqual ExpressionType = "COMPARE_GREATERTHANOREQUALTO"
	TypeCompareIn                 ExpressionType = "COMPARE_IN"
	TypeCompareNotIn              ExpressionType = "COMPARE_NOT_IN"
	TypeCompareDistinctFrom       ExpressionType = "COMPARE_DISTINCT_FROM"
	TypeCompareNotDistinctFrom    ExpressionType = "COMPARE_NOT_DISTINCT_FROM"

	TypeConjunctionAnd ExpressionType = "CONJUNCTION_AND"
	TypeConjunctionOr  ExpressionType = "CONJUNCTION_OR"

	TypeOperatorNot       ExpressionType = "OPERATOR_NOT"
	TypeOperatorIsNull    ExpressionType = "OPERATOR_IS_NULL"
	TypeOperatorIsNotNull ExpressionType = "OPERATOR_IS_NOT_NULL"
)

// comparisonOps maps the comparison types with a pushdown rendering.
var comparisonOps = map[ExpressionType]expr.CompareOp{
	TypeCompareEqual:              expr.OpEq,
	TypeCompareNotEqual:           expr.OpNe,
	TypeCompareLessThan:           expr.OpLt,
	TypeCompareLessThanOrEqual:    expr.OpLe,
	TypeCompareGreaterThan:        expr.OpGt,
	TypeCompareGreaterThanOrEqual: expr.OpGe,
}

// ColumnBinding identifies a column by table and column index.
type ColumnBinding struct {
	TableIndex  int `json:"table_index"`
	ColumnIndex int `json:"column_index"`
}

// Pushdown is a decoded filter pushdown request.
type Pushdown struct {
	// Filters contains the decoded filter predicates.
	// Multiple filters are implicitly AND'ed together.
	Filters []expr.Expression

	// Fields is the field catalog column references index into.
	Fields expr.Fields
}

// Expression returns the filters as a single predicate, or nil when there
// are none.
func (p *Pushdown) Expression() expr.Expression {
	switch len(p.Filters) {
	case 0:
		return nil
	case 1:
		return p.Filters[0]
	default:
		return expr.And(p.Filters...)
	}
}

// ParseError reports the JSON path of a node that could not be decoded.
// It unwraps to ErrInvalidFilter.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return ErrInvalidFilter.Error() + " at " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() []error { return []error{ErrInvalidFilter, e.Err} }

func childPath(path, name string) string { return path + "." + name }

func indexPath(path string, i int) string { return path + "[" + strconv.Itoa(i) + "]" }
