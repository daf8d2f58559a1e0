package expr

// DecomposeConjunction flattens nested ANDs of e into positive conjuncts
// and negated conjuncts. The operand of each NOT lands in negated.
// A TRUE literal conjunct is dropped; a nil conjunct is kept in positive.
func DecomposeConjunction(e Expression) (positive, negated []Expression) {
	decomposeConjunction(e, &positive, &negated)
	return positive, negated
}

func decomposeConjunction(e Expression, positive, negated *[]Expression) {
	if isBoolLiteral(e, true) {
		return
	}
	if l, ok := e.(*Logical); ok {
		switch {
		case l.Op == OpAnd:
			for _, op := range l.Operands {
				decomposeConjunction(op, positive, negated)
			}
			return
		case l.Op == OpNot && len(l.Operands) == 1:
			*negated = append(*negated, l.Operands[0])
			return
		}
	}
	*positive = append(*positive, e)
}

// Disjunctions flattens nested ORs of e into a list of disjuncts.
// A FALSE literal disjunct is dropped; a nil disjunct is kept.
func Disjunctions(e Expression) []Expression {
	var out []Expression
	var walk func(Expression)
	walk = func(e Expression) {
		if isBoolLiteral(e, false) {
			return
		}
		if l, ok := e.(*Logical); ok && l.Op == OpOr {
			for _, op := range l.Operands {
				walk(op)
			}
			return
		}
		out = append(out, e)
	}
	walk(e)
	return out
}

func isBoolLiteral(e Expression, want bool) bool {
	lit, ok := e.(*Literal)
	if !ok || lit.Type != TypeBoolean {
		return false
	}
	b, ok := lit.Value.(bool)
	return ok && b == want
}
