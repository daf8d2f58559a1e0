package expr

import (
	"strings"
	"testing"
)

func render(list []Expression) string {
	parts := make([]string, len(list))
	for i, e := range list {
		parts[i] = e.String()
	}
	return strings.Join(parts, "; ")
}

func TestDecomposeConjunction(t *testing.T) {
	a := Eq(Field(0), Int(1))
	b := Gt(Field(1), Int(2))
	c := Lt(Field(2), Int(3))

	tests := []struct {
		name    string
		in      Expression
		wantPos string
		wantNeg string
	}{
		{
			name:    "single",
			in:      a,
			wantPos: "EQUALS($0, 1)",
		},
		{
			name:    "nested ands flattened",
			in:      And(a, And(b, c)),
			wantPos: "EQUALS($0, 1); GREATER_THAN($1, 2); LESS_THAN($2, 3)",
		},
		{
			name:    "not operands split off",
			in:      And(a, Not(b), And(Not(c))),
			wantPos: "EQUALS($0, 1)",
			wantNeg: "GREATER_THAN($1, 2); LESS_THAN($2, 3)",
		},
		{
			name:    "true dropped",
			in:      And(Bool(true), a),
			wantPos: "EQUALS($0, 1)",
		},
		{
			name:    "or kept whole",
			in:      And(Or(a, b), c),
			wantPos: "OR(EQUALS($0, 1), GREATER_THAN($1, 2)); LESS_THAN($2, 3)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, neg := DecomposeConjunction(tt.in)
			if got := render(pos); got != tt.wantPos {
				t.Errorf("positive: expected %q, got %q", tt.wantPos, got)
			}
			if got := render(neg); got != tt.wantNeg {
				t.Errorf("negated: expected %q, got %q", tt.wantNeg, got)
			}
		})
	}
}

func TestDisjunctions(t *testing.T) {
	a := Eq(Field(0), Int(1))
	b := Eq(Field(0), Int(2))
	c := Eq(Field(0), Int(3))

	got := render(Disjunctions(Or(a, Or(b, Bool(false)), c)))
	want := "EQUALS($0, 1); EQUALS($0, 2); EQUALS($0, 3)"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	if got := render(Disjunctions(And(a, b))); got != "AND(EQUALS($0, 1), EQUALS($0, 2))" {
		t.Errorf("non-OR input should be returned whole, got %q", got)
	}
}

func TestFieldsAndAliases(t *testing.T) {
	fields := Fields{"id", "EXPR$1"}

	name, err := fields.Name(1)
	if err != nil || name != "EXPR$1" {
		t.Fatalf("expected EXPR$1, got %q (%v)", name, err)
	}

	if _, err := fields.Name(2); err == nil {
		t.Fatal("expected error for out of range index")
	} else if err.Error() != "invalid field index: 2 (max: 1)" {
		t.Errorf("unexpected error message: %v", err)
	}

	aliases := AliasMap{"EXPR$1": "sum(price)"}
	if got := aliases.Resolve("EXPR$1"); got != "sum(price)" {
		t.Errorf("expected sum(price), got %q", got)
	}
	if got := aliases.Resolve("id"); got != "id" {
		t.Errorf("expected id, got %q", got)
	}
	var none AliasMap
	if got := none.Resolve("id"); got != "id" {
		t.Errorf("nil map should pass names through, got %q", got)
	}
}

func TestUnwrapAndString(t *testing.T) {
	e := CastTo(CastTo(Field(3), TypeString), TypeInteger)
	if _, ok := Unwrap(e).(*FieldRef); !ok {
		t.Fatalf("expected FieldRef after unwrap, got %T", Unwrap(e))
	}
	if got := e.String(); got != "CAST(CAST($3 AS VARCHAR) AS INTEGER)" {
		t.Errorf("unexpected rendering %q", got)
	}
	if got := IsNotNull(Field(0)).Kind(); got != KindIsNotNull {
		t.Errorf("expected IS_NOT_NULL, got %s", got)
	}
	if !Ne(Field(0), Int(1)).Kind().IsComparison() {
		t.Error("NOT_EQUALS should be a comparison kind")
	}
}

func TestNilOperandsKept(t *testing.T) {
	a := Eq(Field(0), Int(1))

	pos, neg := DecomposeConjunction(And(a, And(Bool(true), nil)))
	if len(pos) != 2 || pos[1] != nil || len(neg) != 0 {
		t.Errorf("expected nil conjunct kept, got %d positive, %d negated", len(pos), len(neg))
	}

	out := Disjunctions(Or(nil, Or(a, Bool(false))))
	if len(out) != 2 || out[0] != nil {
		t.Errorf("expected nil disjunct kept, got %d disjuncts", len(out))
	}
}
