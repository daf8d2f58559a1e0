package filter

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hugr-lab/solr-pushdown/expr"
)

// Parse decodes filter pushdown JSON sent by the DuckDB Airport extension
// into predicate trees.
//
// Nodes without a pushdown rendering (IN lists, CASE, arbitrary functions)
// are decoded as expr.Other so the translator can leave them to the caller.
// Only structurally invalid JSON is an error.
func Parse(data []byte) (*Pushdown, error) {
	if len(data) == 0 {
		return &Pushdown{}, nil
	}

	var raw rawPushdown
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: "$", Err: err}
	}

	p := &Pushdown{
		Fields:  expr.Fields(raw.ColumnBindings),
		Filters: make([]expr.Expression, 0, len(raw.Filters)),
	}
	for i, rawExpr := range raw.Filters {
		e, err := parseExpression(rawExpr, indexPath("$.filters", i))
		if err != nil {
			return nil, err
		}
		p.Filters = append(p.Filters, e)
	}
	return p, nil
}

// rawPushdown is the top-level pushdown document.
type rawPushdown struct {
	Filters        []json.RawMessage `json:"filters"`
	ColumnBindings []string          `json:"column_binding_names_by_index"`
}

// rawExpression is the common header used to pick the node decoder.
type rawExpression struct {
	ExpressionClass string `json:"expression_class"`
	Type            string `json:"type"`
}

func parseExpression(data json.RawMessage, path string) (expr.Expression, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, &ParseError{Path: path, Err: errors.New("missing expression")}
	}

	var raw rawExpression
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	switch ExpressionClass(raw.ExpressionClass) {
	case ClassBoundComparison:
		return parseComparison(data, path)
	case ClassBoundConjunction:
		return parseConjunction(data, path)
	case ClassBoundOperator:
		return parseOperator(data, path)
	case ClassBoundFunction:
		return parseFunction(data, path)
	case ClassBoundBetween:
		return parseBetween(data, path)
	case ClassBoundCast:
		return parseCast(data, path)
	case ClassBoundColumnRef:
		return parseColumnRef(data, path)
	case ClassBoundConstant:
		return parseConstant(data, path)
	default:
		name := raw.ExpressionClass
		if raw.Type != "" {
			name = raw.Type
		}
		return &expr.Other{Name: name}, nil
	}
}

type rawComparison struct {
	Type  string          `json:"type"`
	Left  json.RawMessage `json:"left"`
	Right json.RawMessage `json:"right"`
}

func parseComparison(data json.RawMessage, path string) (expr.Expression, error) {
	var raw rawComparison
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	left, err := parseExpression(raw.Left, childPath(path, "left"))
	if err != nil {
		return nil, err
	}
	right, err := parseExpression(raw.Right, childPath(path, "right"))
	if err != nil {
		return nil, err
	}

	op, ok := comparisonOps[ExpressionType(raw.Type)]
	if !ok {
		return &expr.Other{Name: raw.Type, Operands: []expr.Expression{left, right}}, nil
	}
	return expr.Compare(op, left, right), nil
}

type rawChildren struct {
	Type     string            `json:"type"`
	Children []json.RawMessage `json:"children"`
}

func parseChildren(children []json.RawMessage, path string) ([]expr.Expression, error) {
	out := make([]expr.Expression, 0, len(children))
	for i, child := range children {
		e, err := parseExpression(child, indexPath(childPath(path, "children"), i))
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func parseConjunction(data json.RawMessage, path string) (expr.Expression, error) {
	var raw rawChildren
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	children, err := parseChildren(raw.Children, path)
	if err != nil {
		return nil, err
	}

	switch ExpressionType(raw.Type) {
	case TypeConjunctionAnd:
		return expr.And(children...), nil
	case TypeConjunctionOr:
		return expr.Or(children...), nil
	default:
		return &expr.Other{Name: raw.Type, Operands: children}, nil
	}
}

func parseOperator(data json.RawMessage, path string) (expr.Expression, error) {
	var raw rawChildren
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	children, err := parseChildren(raw.Children, path)
	if err != nil {
		return nil, err
	}

	// Operand counts are checked by the translator.
	switch ExpressionType(raw.Type) {
	case TypeOperatorNot:
		return &expr.Logical{Op: expr.OpNot, Operands: children}, nil
	case TypeOperatorIsNull:
		return &expr.NullCheck{Operands: children}, nil
	case TypeOperatorIsNotNull:
		return &expr.NullCheck{Operands: children, NotNull: true}, nil
	default:
		return &expr.Other{Name: raw.Type, Operands: children}, nil
	}
}

type rawFunction struct {
	Name     string            `json:"name"`
	Children []json.RawMessage `json:"children"`
}

func parseFunction(data json.RawMessage, path string) (expr.Expression, error) {
	var raw rawFunction
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	children, err := parseChildren(raw.Children, path)
	if err != nil {
		return nil, err
	}

	name := strings.ToLower(raw.Name)
	switch name {
	case "~~", "like":
		if len(children) == 2 {
			return expr.LikePattern(children[0], children[1]), nil
		}
	case "!~~", "not_like":
		if len(children) == 2 {
			return expr.Not(expr.LikePattern(children[0], children[1])), nil
		}
	case "prefix", "starts_with":
		if like := patternLike(children, "", "%"); like != nil {
			return like, nil
		}
	case "suffix", "ends_with":
		if like := patternLike(children, "%", ""); like != nil {
			return like, nil
		}
	case "contains":
		if like := patternLike(children, "%", "%"); like != nil {
			return like, nil
		}
	}
	return &expr.Other{Name: raw.Name, Operands: children}, nil
}

// patternLike rewrites a string search function with a constant argument
// as LIKE. Arguments that contain LIKE wildcards have no exact rewrite.
func patternLike(children []expr.Expression, before, after string) expr.Expression {
	if len(children) != 2 {
		return nil
	}
	lit, ok := expr.Unwrap(children[1]).(*expr.Literal)
	if !ok || lit.Type != expr.TypeString {
		return nil
	}
	s, ok := lit.Value.(string)
	if !ok || strings.ContainsAny(s, "%_") {
		return nil
	}
	return expr.LikePattern(children[0], expr.Str(before+s+after))
}

type rawBetween struct {
	Input          json.RawMessage `json:"input"`
	Lower          json.RawMessage `json:"lower"`
	Upper          json.RawMessage `json:"upper"`
	LowerInclusive bool            `json:"lower_inclusive"`
	UpperInclusive bool            `json:"upper_inclusive"`
}

// parseBetween decodes BETWEEN as a conjunction of two comparisons.
func parseBetween(data json.RawMessage, path string) (expr.Expression, error) {
	var raw rawBetween
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	input, err := parseExpression(raw.Input, childPath(path, "input"))
	if err != nil {
		return nil, err
	}
	lower, err := parseExpression(raw.Lower, childPath(path, "lower"))
	if err != nil {
		return nil, err
	}
	upper, err := parseExpression(raw.Upper, childPath(path, "upper"))
	if err != nil {
		return nil, err
	}

	lowerOp, upperOp := expr.OpGt, expr.OpLt
	if raw.LowerInclusive {
		lowerOp = expr.OpGe
	}
	if raw.UpperInclusive {
		upperOp = expr.OpLe
	}
	return expr.And(
		expr.Compare(lowerOp, input, lower),
		expr.Compare(upperOp, input, upper),
	), nil
}

type rawCast struct {
	Child      json.RawMessage `json:"child"`
	ReturnType json.RawMessage `json:"return_type"`
}

func parseCast(data json.RawMessage, path string) (expr.Expression, error) {
	var raw rawCast
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	child, err := parseExpression(raw.Child, childPath(path, "child"))
	if err != nil {
		return nil, err
	}
	lt, err := parseLogicalType(raw.ReturnType)
	if err != nil {
		return nil, &ParseError{Path: childPath(path, "return_type"), Err: err}
	}
	return expr.CastTo(child, lt.ID.LiteralType()), nil
}

type rawColumnRef struct {
	Binding ColumnBinding `json:"binding"`
}

func parseColumnRef(data json.RawMessage, path string) (expr.Expression, error) {
	var raw rawColumnRef
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	// Range checks against the catalog happen at translation time.
	return expr.Field(raw.Binding.ColumnIndex), nil
}

type rawConstant struct {
	Value json.RawMessage `json:"value"`
}

func parseConstant(data json.RawMessage, path string) (expr.Expression, error) {
	var raw rawConstant
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	e, err := parseValue(raw.Value)
	if err != nil {
		return nil, &ParseError{Path: childPath(path, "value"), Err: err}
	}
	return e, nil
}

// parseLogicalType decodes a logical type, keeping decimal width and scale.
func parseLogicalType(data json.RawMessage) (LogicalType, error) {
	if len(data) == 0 || string(data) == "null" {
		return LogicalType{}, nil
	}

	var raw struct {
		ID       string `json:"id"`
		TypeInfo *struct {
			Type  string `json:"type"`
			Width int    `json:"width"`
			Scale int    `json:"scale"`
		} `json:"type_info"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return LogicalType{}, fmt.Errorf("invalid logical type: %w", err)
	}

	lt := LogicalType{ID: LogicalTypeID(strings.ToUpper(raw.ID)).Normalize()}
	if raw.TypeInfo != nil && raw.TypeInfo.Type == "DECIMAL_TYPE_INFO" {
		lt.Width = raw.TypeInfo.Width
		lt.Scale = raw.TypeInfo.Scale
	}
	return lt, nil
}
