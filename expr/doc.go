// Package expr defines the predicate tree handed over by a relational planner
// for pushdown into a search backend.
//
// The tree is a closed set of node types:
//   - Comparison: EQUALS, NOT_EQUALS, LESS_THAN, LESS_THAN_OR_EQUAL,
//     GREATER_THAN, GREATER_THAN_OR_EQUAL over two operands
//   - Logical: AND, OR (one or more operands) and NOT (exactly one operand)
//   - Like: a field matched against a SQL pattern literal
//   - NullCheck: IS NULL / IS NOT NULL
//   - Cast: a type conversion wrapping another node
//   - FieldRef: an index into the Fields catalog
//   - Literal: a typed constant with its planner textual representation
//   - Other: any planner node kind outside the set above
//
// Nodes are immutable once built and are shared freely between goroutines.
// Field names are resolved through a Fields catalog and, for aggregate
// filtering, renamed through an AliasMap.
package expr
