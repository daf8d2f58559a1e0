package expr

import "strconv"

// Fields is the ordered field catalog: position i holds the name of the
// field referenced by FieldRef{Index: i}.
type Fields []string

// Name resolves a field index to its name.
// Returns a *FieldIndexError if the index is out of range.
func (f Fields) Name(index int) (string, error) {
	if index < 0 || index >= len(f) {
		return "", &FieldIndexError{Index: index, Max: len(f)}
	}
	return f[index], nil
}

// FieldIndexError indicates a FieldRef outside the catalog.
type FieldIndexError struct {
	Index int
	Max   int
}

func (e *FieldIndexError) Error() string {
	return "invalid field index: " + strconv.Itoa(e.Index) + " (max: " + strconv.Itoa(e.Max-1) + ")"
}

// AliasMap maps generated aggregate aliases to the aggregate expression
// they stand for, e.g. "EXPR$1" -> "sum(price)".
type AliasMap map[string]string

// Resolve returns the aggregate expression behind an alias,
// or name unchanged when it is not an alias.
func (m AliasMap) Resolve(name string) string {
	if target, ok := m[name]; ok {
		return target
	}
	return name
}
