package validator

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Bounds on accepted numbers. Anything outside is reported as not a valid
// number before it is rescaled, since decimal expands the exponent eagerly.
const (
	maxNumberLength   = 64
	maxNumberExponent = 30
)

// Number is a payload value that may arrive as a JSON number or a numeric string.
// Null and blank strings count as not supplied. Anything else is kept verbatim
// so that rules can report it as not a valid number.
type Number struct {
	raw string
	set bool
}

// NewNumber is a supplied Number holding raw.
func NewNumber(raw string) Number {
	raw = strings.TrimSpace(raw)
	return Number{raw: raw, set: raw != ""}
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*n = Number{}
	switch {
	case bytes.Equal(data, []byte("null")):
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NewNumber(s)
	default:
		*n = NewNumber(string(data))
	}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte("null"), nil
	}
	if d, ok := n.Decimal(); ok {
		return []byte(d.String()), nil
	}
	return json.Marshal(n.raw)
}

// Present reports whether a value was supplied.
func (n Number) Present() bool {
	return n.set
}

// String returns the supplied text.
func (n Number) String() string {
	return n.raw
}

// Decimal parses the value. ok is false when absent or not numeric.
func (n Number) Decimal() (decimal.Decimal, bool) {
	if !n.set || len(n.raw) > maxNumberLength {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(n.raw)
	if err != nil {
		return decimal.Zero, false
	}
	if exp := d.Exponent(); exp > maxNumberExponent || exp < -maxNumberExponent {
		return decimal.Zero, false
	}
	return d, true
}

// Int parses the value as a whole number.
func (n Number) Int() (int64, bool) {
	d, ok := n.Decimal()
	if !ok || !d.IsInteger() {
		return 0, false
	}
	return d.IntPart(), true
}
