package translate

import (
	"fmt"
	"strings"
)

// Mode selects the output grammar.
type Mode string

const (
	// ModeDocument renders search-engine query syntax for document filtering.
	ModeDocument Mode = "document"

	// ModeAggregate renders nested function calls for filtering aggregated results.
	ModeAggregate Mode = "aggregate"
)

// ParseMode parses a mode name (case-insensitive).
// "having" is accepted as an alias of aggregate.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "document", "query":
		return ModeDocument, nil
	case "aggregate", "having":
		return ModeAggregate, nil
	default:
		return "", fmt.Errorf("unknown translation mode: %q", s)
	}
}

func (m Mode) String() string { return string(m) }
