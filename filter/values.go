package filter

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/hugr-lab/solr-pushdown/expr"
)

// parseValue decodes a DuckDB constant into a literal. Constants of types
// with no literal form decode as expr.Other.
func parseValue(data json.RawMessage) (expr.Expression, error) {
	if len(data) == 0 || string(data) == "null" {
		return expr.Null(), nil
	}

	var raw struct {
		Type   json.RawMessage `json:"type"`
		IsNull bool            `json:"is_null"`
		Value  json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid value: %w", err)
	}

	lt, err := parseLogicalType(raw.Type)
	if err != nil {
		return nil, err
	}

	if raw.IsNull || len(raw.Value) == 0 || string(raw.Value) == "null" {
		return expr.Null(), nil
	}
	return valueLiteral(raw.Value, lt)
}

func valueLiteral(data json.RawMessage, lt LogicalType) (expr.Expression, error) {
	switch lt.ID {
	case TypeIDBoolean:
		var v bool
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return expr.Bool(v), nil

	case TypeIDTinyInt, TypeIDSmallInt, TypeIDInteger, TypeIDBigInt:
		var v int64
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return expr.Int(v), nil

	case TypeIDUTinyInt, TypeIDUSmallInt, TypeIDUInteger, TypeIDUBigInt:
		n, err := decodeNumber(data)
		if err != nil {
			return nil, err
		}
		return integerLiteral(n)

	case TypeIDHugeInt, TypeIDUHugeInt:
		n, err := decodeHugeInt(data)
		if err != nil {
			return nil, err
		}
		return integerLiteral(n.String())

	case TypeIDFloat, TypeIDDouble:
		var v float64
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return expr.Double(v), nil

	case TypeIDDecimal:
		digits, err := decodeDecimal(data, lt.Scale)
		if err != nil {
			return nil, err
		}
		return expr.Decimal(digits), nil

	case TypeIDVarchar, TypeIDChar, TypeIDUUID:
		s, err := decodeString(data)
		if err != nil {
			return nil, err
		}
		return expr.Str(s), nil

	case TypeIDDate:
		var days int64
		if err := json.Unmarshal(data, &days); err != nil {
			return nil, err
		}
		return expr.Date(time.Unix(days*86400, 0).UTC()), nil

	case TypeIDTimestamp, TypeIDTimestampTZ, TypeIDTimestampSec, TypeIDTimestampMs, TypeIDTimestampNs:
		var v int64
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return expr.Timestamp(timestampValue(v, lt.ID)), nil

	default:
		return &expr.Other{Name: "CONSTANT_" + string(lt.ID)}, nil
	}
}

// integerLiteral keeps int64 values exact and falls back to a decimal
// literal for wider integers.
func integerLiteral(digits string) (expr.Expression, error) {
	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", digits)
	}
	if n.IsInt64() {
		return expr.Int(n.Int64()), nil
	}
	return expr.Decimal(n.String()), nil
}

func decodeNumber(data json.RawMessage) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var n json.Number
	if err := dec.Decode(&n); err != nil {
		return "", err
	}
	return n.String(), nil
}

func decodeHugeInt(data json.RawMessage) (*big.Int, error) {
	var h HugeInt
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, err
	}
	n := new(big.Int).Lsh(big.NewInt(h.Upper), 64)
	return n.Add(n, new(big.Int).SetUint64(h.Lower)), nil
}

// decodeDecimal returns the digits of a DECIMAL constant. DuckDB sends the
// unscaled integer; strings and fractional numbers are taken as written.
func decodeDecimal(data json.RawMessage, scale int) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s, nil
	}

	var unscaled *big.Int
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		n, err := decodeHugeInt(data)
		if err != nil {
			return "", err
		}
		unscaled = n
	} else {
		digits, err := decodeNumber(data)
		if err != nil {
			return "", err
		}
		n, ok := new(big.Int).SetString(digits, 10)
		if !ok {
			return digits, nil
		}
		unscaled = n
	}
	return scaleDigits(unscaled, scale), nil
}

// scaleDigits renders unscaled / 10^scale without losing precision.
func scaleDigits(unscaled *big.Int, scale int) string {
	if scale <= 0 {
		return unscaled.String()
	}
	neg := unscaled.Sign() < 0
	digits := new(big.Int).Abs(unscaled).String()
	if len(digits) <= scale {
		digits = strings.Repeat("0", scale-len(digits)+1) + digits
	}
	out := digits[:len(digits)-scale] + "." + digits[len(digits)-scale:]
	if neg {
		out = "-" + out
	}
	return out
}

func decodeString(data json.RawMessage) (string, error) {
	var b64 Base64String
	if err := json.Unmarshal(data, &b64); err == nil && b64.Base64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(b64.Base64)
		if err != nil {
			return "", fmt.Errorf("invalid base64: %w", err)
		}
		return string(decoded), nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", err
	}
	return s, nil
}

// timestampValue converts a DuckDB timestamp in its unit to a time.
func timestampValue(v int64, id LogicalTypeID) time.Time {
	switch id {
	case TypeIDTimestampSec:
		return time.Unix(v, 0).UTC()
	case TypeIDTimestampMs:
		return time.UnixMilli(v).UTC()
	case TypeIDTimestampNs:
		return time.Unix(0, v).UTC()
	default:
		return time.UnixMicro(v).UTC()
	}
}
