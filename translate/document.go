package translate

import (
	"strings"

	"github.com/hugr-lab/solr-pushdown/expr"
)

// PhraseMarker prefixes a quoted term that must be parsed as a complex
// phrase so embedded wildcards are honoured.
const PhraseMarker = "{!complexphrase}"

// documentDialect renders Lucene/Solr standard query syntax.
type documentDialect struct{}

func (documentDialect) mode() Mode { return ModeDocument }

func (documentDialect) field(name string) string { return name }

func (documentDialect) comparison(e expr.Expression, op expr.CompareOp, field string, lit *expr.Literal) (fragment, error) {
	switch op {
	case expr.OpEq:
		term, quoted := phraseTerm(lit)
		clause := field + ":" + term
		if quoted && hasWildcard(term) {
			clause = PhraseMarker + clause
		}
		return fragment{text: clause}, nil
	case expr.OpNe:
		term, _ := phraseTerm(lit)
		return fragment{text: "-(" + field + ":" + term + ")", matchAll: true}, nil
	case expr.OpLt:
		return fragment{text: "(" + field + ": [ * TO " + rangeTerm(lit) + " })"}, nil
	case expr.OpLe:
		return fragment{text: "(" + field + ": [ * TO " + rangeTerm(lit) + " ])"}, nil
	case expr.OpGt:
		return fragment{text: "(" + field + ": { " + rangeTerm(lit) + " TO * ])"}, nil
	case expr.OpGe:
		return fragment{text: "(" + field + ": [ " + rangeTerm(lit) + " TO * ])"}, nil
	default:
		return fragment{}, malformed(ModeDocument, e, "unknown comparison operator %q", op)
	}
}

func (documentDialect) between(field string, lo, hi *expr.Literal) (fragment, bool) {
	return fragment{text: field + ":[" + rangeTerm(lo) + " TO " + rangeTerm(hi) + "]"}, true
}

func (documentDialect) like(_ expr.Expression, field string, pattern *expr.Literal) (fragment, error) {
	terms := strings.NewReplacer("'", "", "%", "*", "_", "?").Replace(strings.TrimSpace(pattern.Repr()))
	if isGrouped(terms) {
		return fragment{text: field + ":" + terms}, nil
	}
	return fragment{text: PhraseMarker + field + ":" + quote(terms)}, nil
}

func (documentDialect) nullCheck(_ expr.Expression, field string, notNull bool) (fragment, error) {
	if notNull {
		return fragment{text: "+" + field + ":*"}, nil
	}
	return fragment{text: "(" + MatchAllQuery + " -" + field + ":*)"}, nil
}

func (documentDialect) not(inner fragment) fragment {
	return fragment{text: "-" + strings.TrimPrefix(inner.text, "+"), matchAll: true}
}

func (documentDialect) and(_ expr.Expression, positive, negated []fragment) (fragment, error) {
	var clause string
	matchAll := len(positive) > 0
	if len(positive) == 0 {
		clause = MatchAllQuery
	} else {
		parts := make([]string, len(positive))
		for i, f := range positive {
			parts[i] = f.text
			matchAll = matchAll && f.matchAll
		}
		clause = strings.Join(parts, " AND ")
	}

	if len(negated) == 0 {
		return fragment{text: "(" + clause + ")", matchAll: matchAll}, nil
	}

	var sb strings.Builder
	sb.WriteString("((")
	sb.WriteString(clause)
	sb.WriteByte(')')
	for _, f := range negated {
		sb.WriteString(" NOT (")
		sb.WriteString(f.text)
		sb.WriteByte(')')
	}
	sb.WriteByte(')')
	return fragment{text: sb.String(), matchAll: matchAll}, nil
}

// or anchors each purely negative disjunct to the match-all query, so a
// prohibited clause excludes documents from that disjunct only.
func (documentDialect) or(disjuncts []fragment) fragment {
	parts := make([]string, len(disjuncts))
	for i, f := range disjuncts {
		if f.matchAll {
			parts[i] = "(" + MatchAllQuery + " " + f.text + ")"
			continue
		}
		parts[i] = f.text
	}
	return fragment{text: "(" + strings.Join(parts, " OR ") + ")"}
}

func (documentDialect) other(expr.Expression) (fragment, error) {
	return fragment{}, errNotTranslatable
}

// phraseTerm returns the literal as a query term: SQL quotes removed and
// wrapped in double quotes unless it already is a grouped construct.
func phraseTerm(lit *expr.Literal) (string, bool) {
	terms := strings.ReplaceAll(strings.TrimSpace(lit.Repr()), "'", "")
	if isGrouped(terms) {
		return terms, false
	}
	return quote(terms), true
}

// rangeTerm returns the literal as a range bound. Bounds containing
// whitespace, a closing bracket or a quote are quoted.
func rangeTerm(lit *expr.Literal) string {
	terms := strings.ReplaceAll(strings.TrimSpace(lit.Repr()), "'", "")
	if strings.ContainsAny(terms, " \t\n]}\"") {
		return quote(terms)
	}
	return terms
}

// isGrouped reports whether a term already is a parenthesized, range or
// brace construct that must be passed through verbatim.
func isGrouped(terms string) bool {
	return strings.HasPrefix(terms, "(") || strings.HasPrefix(terms, "[") || strings.HasPrefix(terms, "{")
}

func hasWildcard(term string) bool {
	return strings.ContainsAny(term, "*?")
}

var phraseEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quote(terms string) string {
	return `"` + phraseEscaper.Replace(terms) + `"`
}
