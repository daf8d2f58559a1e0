// Package filter decodes DuckDB Airport filter pushdown JSON into predicate
// trees for translation.
//
// DuckDB sends the bound filter expressions of a scan together with the
// names of the columns they reference:
//
//	{"filters": [...], "column_binding_names_by_index": ["id", "name", ...]}
//
// Parse maps each bound expression onto the expr node set:
//   - BOUND_COMPARISON: =, <>, <, <=, >, >= become expr.Comparison
//   - BOUND_CONJUNCTION: AND / OR
//   - BOUND_OPERATOR: NOT, IS NULL, IS NOT NULL
//   - BOUND_FUNCTION: ~~ (LIKE), !~~ (NOT LIKE), and prefix, suffix and
//     contains with a constant argument rewritten as LIKE patterns
//   - BOUND_BETWEEN: a conjunction of two comparisons
//   - BOUND_CAST, BOUND_COLUMN_REF, BOUND_CONSTANT: operands
//
// Anything else decodes as expr.Other, which the translator refuses to push
// down. Column references keep their binding index; Pushdown.Fields resolves
// them to names.
//
// # Basic Usage
//
//	p, err := filter.Parse(data)
//	if err != nil {
//	    return err // malformed JSON
//	}
//	res, err := translate.Translate(p.Expression(), translate.ModeDocument, p.Fields, nil)
package filter
