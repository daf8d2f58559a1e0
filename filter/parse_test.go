package filter

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/hugr-lab/solr-pushdown/expr"
)

// JSON builders for bound expressions as sent by DuckDB.

func col(index int, typ string) string {
	return fmt.Sprintf(`{
		"expression_class": "BOUND_COLUMN_REF",
		"type": "BOUND_COLUMN_REF",
		"alias": "",
		"return_type": {"id": %q, "type_info": null},
		"binding": {"table_index": 0, "column_index": %d},
		"depth": 0
	}`, typ, index)
}

func constant(typ, value string) string {
	return fmt.Sprintf(`{
		"expression_class": "BOUND_CONSTANT",
		"type": "VALUE_CONSTANT",
		"alias": "",
		"value": {"type": {"id": %q, "type_info": null}, "is_null": false, "value": %s}
	}`, typ, value)
}

func decimalConstant(width, scale int, value string) string {
	return fmt.Sprintf(`{
		"expression_class": "BOUND_CONSTANT",
		"type": "VALUE_CONSTANT",
		"value": {
			"type": {"id": "DECIMAL", "type_info": {"type": "DECIMAL_TYPE_INFO", "alias": "", "width": %d, "scale": %d}},
			"is_null": false,
			"value": %s
		}
	}`, width, scale, value)
}

func cmp(typ, left, right string) string {
	return fmt.Sprintf(`{"expression_class": "BOUND_COMPARISON", "type": %q, "alias": "", "left": %s, "right": %s}`, typ, left, right)
}

func withChildren(class, typ string, children ...string) string {
	return fmt.Sprintf(`{"expression_class": %q, "type": %q, "alias": "", "children": [%s]}`,
		class, typ, strings.Join(children, ","))
}

func function(name string, children ...string) string {
	return fmt.Sprintf(`{
		"expression_class": "BOUND_FUNCTION",
		"type": "BOUND_FUNCTION",
		"name": %q,
		"return_type": {"id": "BOOLEAN", "type_info": null},
		"children": [%s],
		"is_operator": false
	}`, name, strings.Join(children, ","))
}

func pushdown(filters ...string) []byte {
	return []byte(fmt.Sprintf(`{
		"filters": [%s],
		"column_binding_names_by_index": ["id", "name", "price", "created", "status"]
	}`, strings.Join(filters, ",")))
}

func TestParseEmpty(t *testing.T) {
	for _, data := range [][]byte{nil, {}} {
		p, err := Parse(data)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(p.Filters) != 0 {
			t.Errorf("expected 0 filters, got %d", len(p.Filters))
		}
		if p.Expression() != nil {
			t.Errorf("expected nil expression, got %v", p.Expression())
		}
	}
}

func TestParseFields(t *testing.T) {
	p, err := Parse(pushdown(cmp("COMPARE_EQUAL", col(0, "INTEGER"), constant("INTEGER", "42"))))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(p.Fields) != 5 {
		t.Fatalf("expected 5 fields, got %d", len(p.Fields))
	}
	name, err := p.Fields.Name(0)
	if err != nil || name != "id" {
		t.Errorf("expected field 'id', got %q (%v)", name, err)
	}
}

func TestParseExpressions(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		want   string
	}{
		{
			name:   "equality",
			filter: cmp("COMPARE_EQUAL", col(0, "INTEGER"), constant("INTEGER", "42")),
			want:   "EQUALS($0, 42)",
		},
		{
			name:   "not equal",
			filter: cmp("COMPARE_NOTEQUAL", col(1, "VARCHAR"), constant("VARCHAR", `"it's"`)),
			want:   "NOT_EQUALS($1, 'it''s')",
		},
		{
			name:   "greater than or equal",
			filter: cmp("COMPARE_GREATERTHANOREQUALTO", col(2, "DOUBLE"), constant("DOUBLE", "9.5")),
			want:   "GREATER_THAN_OR_EQUAL($2, 9.5)",
		},
		{
			name:   "literal on the left",
			filter: cmp("COMPARE_LESSTHAN", constant("BIGINT", "10"), col(0, "BIGINT")),
			want:   "LESS_THAN(10, $0)",
		},
		{
			name: "conjunction",
			filter: withChildren("BOUND_CONJUNCTION", "CONJUNCTION_AND",
				cmp("COMPARE_EQUAL", col(4, "VARCHAR"), constant("VARCHAR", `"active"`)),
				cmp("COMPARE_GREATERTHAN", col(0, "INTEGER"), constant("INTEGER", "18")),
			),
			want: "AND(EQUALS($4, 'active'), GREATER_THAN($0, 18))",
		},
		{
			name: "disjunction",
			filter: withChildren("BOUND_CONJUNCTION", "CONJUNCTION_OR",
				cmp("COMPARE_LESSTHAN", col(2, "INTEGER"), constant("INTEGER", "5")),
				cmp("COMPARE_GREATERTHAN", col(2, "INTEGER"), constant("INTEGER", "50")),
			),
			want: "OR(LESS_THAN($2, 5), GREATER_THAN($2, 50))",
		},
		{
			name:   "not",
			filter: withChildren("BOUND_OPERATOR", "OPERATOR_NOT", cmp("COMPARE_EQUAL", col(0, "INTEGER"), constant("INTEGER", "1"))),
			want:   "NOT(EQUALS($0, 1))",
		},
		{
			name:   "is null",
			filter: withChildren("BOUND_OPERATOR", "OPERATOR_IS_NULL", col(1, "VARCHAR")),
			want:   "IS_NULL($1)",
		},
		{
			name:   "is not null",
			filter: withChildren("BOUND_OPERATOR", "OPERATOR_IS_NOT_NULL", col(1, "VARCHAR")),
			want:   "IS_NOT_NULL($1)",
		},
		{
			name:   "like",
			filter: function("~~", col(1, "VARCHAR"), constant("VARCHAR", `"%foo_%"`)),
			want:   "LIKE($1, '%foo_%')",
		},
		{
			name:   "not like",
			filter: function("!~~", col(1, "VARCHAR"), constant("VARCHAR", `"a%"`)),
			want:   "NOT(LIKE($1, 'a%'))",
		},
		{
			name:   "prefix",
			filter: function("prefix", col(1, "VARCHAR"), constant("VARCHAR", `"Pro"`)),
			want:   "LIKE($1, 'Pro%')",
		},
		{
			name:   "suffix",
			filter: function("suffix", col(1, "VARCHAR"), constant("VARCHAR", `"er"`)),
			want:   "LIKE($1, '%er')",
		},
		{
			name:   "contains",
			filter: function("contains", col(1, "VARCHAR"), constant("VARCHAR", `"mid"`)),
			want:   "LIKE($1, '%mid%')",
		},
		{
			name:   "prefix with wildcard stays a function",
			filter: function("prefix", col(1, "VARCHAR"), constant("VARCHAR", `"50%"`)),
			want:   "prefix($1, '50%')",
		},
		{
			name:   "other function",
			filter: function("lower", col(1, "VARCHAR")),
			want:   "lower($1)",
		},
		{
			name:   "in list",
			filter: cmp("COMPARE_IN", col(0, "INTEGER"), constant("INTEGER", "1")),
			want:   "COMPARE_IN($0, 1)",
		},
		{
			name: "cast",
			filter: cmp("COMPARE_EQUAL",
				`{"expression_class": "BOUND_CAST", "type": "OPERATOR_CAST", "child": `+col(0, "INTEGER")+`, "return_type": {"id": "BIGINT", "type_info": null}, "try_cast": false}`,
				constant("BIGINT", "7")),
			want: "EQUALS(CAST($0 AS INTEGER), 7)",
		},
		{
			name: "between inclusive",
			filter: `{"expression_class": "BOUND_BETWEEN", "type": "COMPARE_BETWEEN", "input": ` + col(2, "INTEGER") +
				`, "lower": ` + constant("INTEGER", "1") + `, "upper": ` + constant("INTEGER", "5") +
				`, "lower_inclusive": true, "upper_inclusive": true}`,
			want: "AND(GREATER_THAN_OR_EQUAL($2, 1), LESS_THAN_OR_EQUAL($2, 5))",
		},
		{
			name: "between exclusive",
			filter: `{"expression_class": "BOUND_BETWEEN", "type": "COMPARE_BETWEEN", "input": ` + col(2, "INTEGER") +
				`, "lower": ` + constant("INTEGER", "1") + `, "upper": ` + constant("INTEGER", "5") +
				`, "lower_inclusive": false, "upper_inclusive": false}`,
			want: "AND(GREATER_THAN($2, 1), LESS_THAN($2, 5))",
		},
		{
			name:   "unknown class",
			filter: `{"expression_class": "BOUND_CASE", "type": "CASE_EXPR", "alias": ""}`,
			want:   "CASE_EXPR()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(pushdown(tt.filter))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if len(p.Filters) != 1 {
				t.Fatalf("expected 1 filter, got %d", len(p.Filters))
			}
			if got := p.Filters[0].String(); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestParseMultipleFilters(t *testing.T) {
	p, err := Parse(pushdown(
		cmp("COMPARE_EQUAL", col(0, "INTEGER"), constant("INTEGER", "1")),
		withChildren("BOUND_OPERATOR", "OPERATOR_IS_NOT_NULL", col(1, "VARCHAR")),
	))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := "AND(EQUALS($0, 1), IS_NOT_NULL($1))"
	if got := p.Expression().String(); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestParseConstants(t *testing.T) {
	tests := []struct {
		name     string
		constant string
		wantType expr.LiteralType
		wantText string
	}{
		{"boolean", constant("BOOLEAN", "true"), expr.TypeBoolean, "true"},
		{"integer alias", constant("INT8", "-3"), expr.TypeInteger, "-3"},
		{"unsigned", constant("UBIGINT", "18446744073709551615"), expr.TypeDecimal, "18446744073709551615"},
		{"hugeint", constant("HUGEINT", `{"upper": 0, "lower": 12}`), expr.TypeInteger, "12"},
		{"float", constant("FLOAT", "1.25"), expr.TypeDouble, "1.25"},
		{"decimal scaled", decimalConstant(4, 2, "1050"), expr.TypeDecimal, "10.50"},
		{"decimal small", decimalConstant(4, 2, "-5"), expr.TypeDecimal, "-0.05"},
		{"decimal string", decimalConstant(4, 2, `"3.14"`), expr.TypeDecimal, "3.14"},
		{"varchar", constant("VARCHAR", `"hello"`), expr.TypeString, "'hello'"},
		{"varchar base64", constant("VARCHAR", `{"base64": "aGk="}`), expr.TypeString, "'hi'"},
		{"date", constant("DATE", "19723"), expr.TypeDate, "2024-01-01"},
		{"timestamp", constant("TIMESTAMP", "1704067200000000"), expr.TypeTimestamp, "2024-01-01T00:00:00Z"},
		{"timestamp ms", constant("TIMESTAMP_MS", "1704067200500"), expr.TypeTimestamp, "2024-01-01T00:00:00.5Z"},
		{"timestamp tz full name", constant("TIMESTAMP WITH TIME ZONE", "1704067200000000"), expr.TypeTimestamp, "2024-01-01T00:00:00Z"},
		{"null", `{"expression_class": "BOUND_CONSTANT", "type": "VALUE_CONSTANT", "value": {"type": {"id": "INTEGER"}, "is_null": true}}`, expr.TypeNull, "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(pushdown(cmp("COMPARE_EQUAL", col(0, "INTEGER"), tt.constant)))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			c, ok := p.Filters[0].(*expr.Comparison)
			if !ok {
				t.Fatalf("expected *expr.Comparison, got %T", p.Filters[0])
			}
			lit, ok := c.Operands[1].(*expr.Literal)
			if !ok {
				t.Fatalf("expected *expr.Literal, got %T", c.Operands[1])
			}
			if lit.Type != tt.wantType {
				t.Errorf("expected type %s, got %s", tt.wantType, lit.Type)
			}
			if lit.Repr() != tt.wantText {
				t.Errorf("expected %s, got %s", tt.wantText, lit.Repr())
			}
		})
	}
}

func TestParseTemporalValue(t *testing.T) {
	p, err := Parse(pushdown(cmp("COMPARE_EQUAL", col(3, "DATE"), constant("DATE", "1"))))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	lit := p.Filters[0].(*expr.Comparison).Operands[1].(*expr.Literal)
	want := time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC)
	if v, ok := lit.Value.(time.Time); !ok || !v.Equal(want) {
		t.Errorf("expected %v, got %v", want, lit.Value)
	}
}

func TestParseUnsupportedConstant(t *testing.T) {
	p, err := Parse(pushdown(cmp("COMPARE_EQUAL", col(0, "INTERVAL"), constant("INTERVAL", `{"months": 1, "days": 0, "micros": 0}`))))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	c := p.Filters[0].(*expr.Comparison)
	if _, ok := c.Operands[1].(*expr.Other); !ok {
		t.Errorf("expected *expr.Other, got %T", c.Operands[1])
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantPath string
	}{
		{"not json", `{not json`, "$"},
		{"filters not array", `{"filters": 1}`, "$"},
		{"missing operand", `{"filters": [{"expression_class": "BOUND_COMPARISON", "type": "COMPARE_EQUAL", "left": ` + col(0, "INTEGER") + `}]}`, "$.filters[0].right"},
		{"bad nested child", `{"filters": [` + withChildren("BOUND_CONJUNCTION", "CONJUNCTION_AND", `"oops"`) + `]}`, "$.filters[0].children[0]"},
		{"bad integer", `{"filters": [` + cmp("COMPARE_EQUAL", col(0, "INTEGER"), constant("INTEGER", `"x"`)) + `]}`, "$.filters[0].right.value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, ErrInvalidFilter) {
				t.Fatalf("expected ErrInvalidFilter, got %v", err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if pe.Path != tt.wantPath {
				t.Errorf("expected path %s, got %s", tt.wantPath, pe.Path)
			}
		})
	}
}
