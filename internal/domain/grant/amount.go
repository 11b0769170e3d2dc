package grant

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Amount is a dollar figure as stored in the dataset. Values that were not
// usable numbers in the source are kept verbatim so a rewrite never loses them,
// but they report Valid() == false and never count toward a sum.
type Amount struct {
	value decimal.Decimal
	raw   json.RawMessage
	set   bool
}

// Dollars returns a valid amount for v. NaN and infinities are not representable
// in the dataset and become invalid amounts.
func Dollars(v float64) Amount {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Amount{raw: json.RawMessage("null"), set: true}
	}
	return Amount{value: decimal.NewFromFloat(v), set: true}
}

// FromDecimal returns a valid amount for d.
func FromDecimal(d decimal.Decimal) Amount {
	return Amount{value: d, set: true}
}

// InvalidAmount keeps a source value that could not be parsed as dollars.
func InvalidAmount(source string) Amount {
	raw, _ := json.Marshal(source)
	return Amount{raw: raw, set: true}
}

// ParseDollars parses a spreadsheet amount such as "$12,500" or "12500.50".
func ParseDollars(s string) (Amount, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return InvalidAmount(s), fmt.Errorf("%w: empty value", ErrInvalidAmount)
	}
	v, err := decimal.NewFromString(cleaned)
	if err != nil || v.IsNegative() {
		return InvalidAmount(s), fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return FromDecimal(v), nil
}

// Valid reports whether the amount is a present, non-negative number.
func (a Amount) Valid() bool {
	return a.set && a.raw == nil && !a.value.IsNegative()
}

// Decimal returns the exact value, or zero for invalid amounts.
func (a Amount) Decimal() decimal.Decimal {
	if !a.Valid() {
		return decimal.Zero
	}
	return a.value
}

// Add returns the exact sum of a and b. Invalid operands count as zero.
func (a Amount) Add(b Amount) Amount {
	return FromDecimal(a.Decimal().Add(b.Decimal()))
}

// Source returns the verbatim source text of an invalid amount.
func (a Amount) Source() string {
	if a.raw == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(a.raw, &s); err == nil {
		return s
	}
	return string(a.raw)
}

func (a Amount) String() string {
	if !a.Valid() {
		if !a.set {
			return "<missing>"
		}
		return a.Source()
	}
	return "$" + FormatDollars(a.value)
}

// MarshalJSON writes valid amounts as plain decimal numbers and invalid ones
// verbatim.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.set {
		return []byte("null"), nil
	}
	if a.raw != nil {
		return a.raw, nil
	}
	return []byte(a.value.String()), nil
}

// UnmarshalJSON accepts numbers and numeric strings; anything else is kept as
// an invalid amount rather than failing the whole document.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*a = Amount{set: true}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := ParseDollars(s)
		if err != nil {
			a.raw = append(json.RawMessage(nil), data...)
			return nil
		}
		*a = parsed
		return nil
	}
	v, err := decimal.NewFromString(string(data))
	if err != nil || v.IsNegative() {
		a.raw = append(json.RawMessage(nil), data...)
		return nil
	}
	a.value = v
	return nil
}

var dollarPrinter = message.NewPrinter(language.English)

// FormatDollars renders d with thousands separators, dropping cents for whole
// amounts: 1500 -> "1,500", 1500.5 -> "1,500.50".
func FormatDollars(d decimal.Decimal) string {
	if d.IsInteger() {
		return dollarPrinter.Sprintf("%d", d.IntPart())
	}
	r := d.Round(2)
	whole := r.Truncate(0)
	cents := r.Sub(whole).Abs().Shift(2).IntPart()
	sign := ""
	if r.IsNegative() && whole.IsZero() {
		sign = "-"
	}
	return sign + dollarPrinter.Sprintf("%d", whole.IntPart()) + fmt.Sprintf(".%02d", cents)
}

// Equal reports whether two amounts encode the same dataset value.
func (a Amount) Equal(b Amount) bool {
	return a.set == b.set && a.value.Equal(b.value) && bytes.Equal(a.raw, b.raw)
}
