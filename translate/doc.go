// Package translate converts planner predicates (package expr) into search
// backend query strings so they can be evaluated by the index instead of
// row by row.
//
// Two output grammars are supported:
//
//   - ModeDocument renders a Lucene/Solr query for document filtering:
//     field:"value", half-open and closed ranges, AND/OR/NOT infix, the
//     {!complexphrase} marker for quoted wildcard terms, and +field:* /
//     (*:* -field:*) for existence checks.
//   - ModeAggregate renders a nested function-call predicate for filtering
//     aggregated (streamed) results: eq, lt, lteq, gt, gteq, and, or, not.
//     Aggregate aliases are resolved through an expr.AliasMap.
//
// # Basic Usage
//
//	res, err := translate.Translate(pred, translate.ModeDocument, fields, nil)
//	if err != nil {
//	    return err // malformed or unsupported predicate, evaluate locally
//	}
//	if res == nil {
//	    // not translatable: keep the filter in the planner
//	}
//	q := res.Query
//	if res.RequiresMatchAll {
//	    q = res.Standalone()
//	}
//
// A Translator holds no per-call state and is safe for concurrent use.
package translate
