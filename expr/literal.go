package expr

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// LiteralType is the declared type of a literal (and the target of a cast).
type LiteralType string

const (
	TypeNull      LiteralType = "NULL"
	TypeBoolean   LiteralType = "BOOLEAN"
	TypeInteger   LiteralType = "INTEGER"
	TypeDecimal   LiteralType = "DECIMAL"
	TypeDouble    LiteralType = "DOUBLE"
	TypeString    LiteralType = "VARCHAR"
	TypeDate      LiteralType = "DATE"
	TypeTimestamp LiteralType = "TIMESTAMP"
)

// IsNumeric returns true if the type is a numeric type.
func (t LiteralType) IsNumeric() bool {
	switch t {
	case TypeInteger, TypeDecimal, TypeDouble:
		return true
	}
	return false
}

// IsTemporal returns true if the type is a date/time type.
func (t LiteralType) IsTemporal() bool {
	return t == TypeDate || t == TypeTimestamp
}

// Literal is a typed constant.
//
// Value holds the Go value: bool, int64, float64, string (VARCHAR and
// DECIMAL), time.Time (DATE, TIMESTAMP) or nil (NULL).
// Text is the textual representation produced by the planner; string
// literals are single-quoted SQL strings. Empty Text is derived from Value.
type Literal struct {
	Type  LiteralType
	Value any
	Text  string
}

func (*Literal) Kind() Kind { return KindLiteral }

func (l *Literal) String() string { return l.Repr() }

// Repr returns the planner textual representation of the literal.
func (l *Literal) Repr() string {
	if l.Text != "" {
		return l.Text
	}
	return formatLiteral(l.Type, l.Value)
}

// Str builds a VARCHAR literal.
func Str(s string) *Literal {
	return &Literal{Type: TypeString, Value: s, Text: QuoteString(s)}
}

// Int builds an INTEGER literal.
func Int(i int64) *Literal {
	return &Literal{Type: TypeInteger, Value: i, Text: strconv.FormatInt(i, 10)}
}

// Double builds a DOUBLE literal.
func Double(f float64) *Literal {
	return &Literal{Type: TypeDouble, Value: f, Text: strconv.FormatFloat(f, 'g', -1, 64)}
}

// Decimal builds a DECIMAL literal from its digits, e.g. "12.50".
func Decimal(digits string) *Literal {
	return &Literal{Type: TypeDecimal, Value: digits, Text: digits}
}

// Bool builds a BOOLEAN literal.
func Bool(b bool) *Literal {
	return &Literal{Type: TypeBoolean, Value: b, Text: strconv.FormatBool(b)}
}

// Date builds a DATE literal.
func Date(t time.Time) *Literal {
	return &Literal{Type: TypeDate, Value: t, Text: t.UTC().Format(time.DateOnly)}
}

// Timestamp builds a TIMESTAMP literal.
func Timestamp(t time.Time) *Literal {
	return &Literal{Type: TypeTimestamp, Value: t, Text: t.UTC().Format(time.RFC3339Nano)}
}

// Null builds a NULL literal.
func Null() *Literal {
	return &Literal{Type: TypeNull, Text: "null"}
}

// QuoteString returns s as a single-quoted SQL string.
func QuoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func formatLiteral(t LiteralType, v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		if t == TypeString {
			return QuoteString(val)
		}
		return val
	case bool:
		return strconv.FormatBool(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case time.Time:
		if t == TypeDate {
			return val.UTC().Format(time.DateOnly)
		}
		return val.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(val)
	}
}

// ErrIncomparable is returned by CompareLiterals for literals without a
// common ordering.
var ErrIncomparable = errors.New("literals are not comparable")

// CompareLiterals orders two literals consistently with their declared
// types: numerically for numeric types, lexicographically for strings,
// chronologically for temporal types and false < true for booleans.
// Returns -1, 0 or +1.
func CompareLiterals(a, b *Literal) (int, error) {
	if a == nil || b == nil || a.Type == TypeNull || b.Type == TypeNull {
		return 0, ErrIncomparable
	}

	switch {
	case a.Type.IsNumeric() && b.Type.IsNumeric():
		ra, okA := numericValue(a.Value)
		rb, okB := numericValue(b.Value)
		if !okA || !okB {
			return 0, fmt.Errorf("%w: %s vs %s", ErrIncomparable, a.Repr(), b.Repr())
		}
		return ra.Cmp(rb), nil

	case a.Type == TypeString && b.Type == TypeString:
		sa, okA := a.Value.(string)
		sb, okB := b.Value.(string)
		if !okA || !okB {
			return 0, fmt.Errorf("%w: %s vs %s", ErrIncomparable, a.Repr(), b.Repr())
		}
		return strings.Compare(sa, sb), nil

	case a.Type.IsTemporal() && b.Type.IsTemporal():
		ta, okA := a.Value.(time.Time)
		tb, okB := b.Value.(time.Time)
		if !okA || !okB {
			return 0, fmt.Errorf("%w: %s vs %s", ErrIncomparable, a.Repr(), b.Repr())
		}
		return ta.Compare(tb), nil

	case a.Type == TypeBoolean && b.Type == TypeBoolean:
		ba, okA := a.Value.(bool)
		bb, okB := b.Value.(bool)
		if !okA || !okB {
			return 0, fmt.Errorf("%w: %s vs %s", ErrIncomparable, a.Repr(), b.Repr())
		}
		switch {
		case ba == bb:
			return 0, nil
		case !ba:
			return -1, nil
		default:
			return 1, nil
		}
	}

	return 0, fmt.Errorf("%w: %s and %s", ErrIncomparable, a.Type, b.Type)
}

// numericValue converts a numeric literal value to an exact rational.
func numericValue(v any) (*big.Rat, bool) {
	switch n := v.(type) {
	case int64:
		return new(big.Rat).SetInt64(n), true
	case int:
		return new(big.Rat).SetInt64(int64(n)), true
	case uint64:
		return new(big.Rat).SetUint64(n), true
	case float64:
		r := new(big.Rat)
		if r.SetFloat64(n) == nil {
			return nil, false
		}
		return r, true
	case string:
		return new(big.Rat).SetString(strings.TrimSpace(n))
	default:
		return nil, false
	}
}
