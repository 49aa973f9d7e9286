package validator

import (
	"context"
	"fmt"
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Lookup asks the store a yes/no question about a candidate value.
type Lookup func(ctx context.Context) (bool, error)

// Enum checks that n is supplied and one of allowed.
func (v *Violations) Enum(field string, n Number, allowed []int64, invalid string) {
	if !n.Present() {
		v.Add(field, RequiredMessage(field))
		return
	}
	value, ok := n.Int()
	if !ok || !slices.Contains(allowed, value) {
		v.Add(field, invalid)
	}
}

// Numeric flags a supplied value that is not a number.
func (v *Violations) Numeric(field string, n Number) {
	if !n.Present() {
		return
	}
	if _, ok := n.Decimal(); !ok {
		v.Add(field, fmt.Sprintf("%s must be a valid number.", Label(field)))
	}
}

// Range flags a supplied number whose magnitude reaches limit.
// Values that are not numbers are left to Numeric.
func (v *Violations) Range(field string, n Number, limit decimal.Decimal) {
	d, ok := n.Decimal()
	if !ok {
		return
	}
	if d.Abs().GreaterThanOrEqual(limit) {
		v.Add(field, fmt.Sprintf("%s must be less than %s.", Label(field), limit.String()))
	}
}

// Digits checks a supplied value for exactly length ASCII digits.
func (v *Violations) Digits(field, value string, length int) {
	if value == "" {
		return
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			v.Add(field, fmt.Sprintf("%s must contain only digits.", Label(field)))
			return
		}
	}
	if len(value) != length {
		v.Add(field, fmt.Sprintf("%s must be exactly %d digits.", Label(field), length))
	}
}

// Unique adds a violation when taken reports a collision.
func (v *Violations) Unique(ctx context.Context, field string, taken Lookup) error {
	found, err := taken(ctx)
	if err != nil {
		return err
	}
	if found {
		v.Add(field, TakenMessage(field))
	}
	return nil
}

// Exists adds a violation when the referenced record is missing.
func (v *Violations) Exists(ctx context.Context, field string, exists Lookup) error {
	found, err := exists(ctx)
	if err != nil {
		return err
	}
	if !found {
		v.Add(field, MissingMessage(field))
	}
	return nil
}

// MissingMessage is the message used for a reference to a record that does not exist.
func MissingMessage(field string) string {
	return fmt.Sprintf("%s does not exist.", Label(field))
}

// MaxPasswordBytes is the longest password bcrypt will hash.
const MaxPasswordBytes = 72

// PasswordFits reports whether s can be hashed.
func PasswordFits(s string) bool {
	return len(s) <= MaxPasswordBytes
}

// PasswordTooLongMessage is the message used for a password bcrypt cannot hash.
func PasswordTooLongMessage(field string) string {
	return fmt.Sprintf("%s may not be greater than %d bytes.", Label(field), MaxPasswordBytes)
}

// StrongPassword requires 8+ characters with a lowercase and an uppercase
// letter, a digit and a symbol (anything that is neither letter nor digit).
func StrongPassword(s string) bool {
	if utf8.RuneCountInString(s) < 8 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}
