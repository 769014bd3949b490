package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PriceScale is the number of decimal places a price is displayed with
const PriceScale = 2

// ErrNegativePrice is returned when a price below zero is given
var ErrNegativePrice = errors.New("price cannot be negative")

// Price is a non-negative monetary amount in the catalog's currency.
// Prices travel as strings through the API ("12.50") to avoid float rounding.
type Price struct {
	amount decimal.Decimal
}

// NewPrice creates a price from a decimal amount
func NewPrice(amount decimal.Decimal) (Price, error) {
	if amount.IsNegative() {
		return Price{}, ErrNegativePrice
	}
	return Price{amount: amount}, nil
}

// ParsePrice parses a price string. Both "12.50" and "12,50" are accepted.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Price{}, errors.New("price cannot be empty")
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, fmt.Errorf("invalid price %q: %w", s, err)
	}
	return NewPrice(d)
}

// MustParsePrice parses a price string and panics on failure. Intended for tests and constants.
func MustParsePrice(s string) Price {
	p, err := ParsePrice(s)
	if err != nil {
		panic(err)
	}
	return p
}

// ZeroPrice returns a zero price
func ZeroPrice() Price {
	return Price{amount: decimal.Zero}
}

// Amount returns the decimal amount
func (p Price) Amount() decimal.Decimal {
	return p.amount
}

// IsZero returns true if the price is zero
func (p Price) IsZero() bool {
	return p.amount.IsZero()
}

// Equal reports whether two prices have the same amount
func (p Price) Equal(other Price) bool {
	return p.amount.Equal(other.amount)
}

// String returns the price with two decimal places
func (p Price) String() string {
	return p.amount.StringFixed(PriceScale)
}

// MarshalJSON encodes the price as a string
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts both a JSON string and a JSON number
func (p *Price) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("invalid price: %w", err)
		}
		s = n.String()
	}
	parsed, err := ParsePrice(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Value implements driver.Valuer
func (p Price) Value() (driver.Value, error) {
	return p.amount.String(), nil
}

// Scan implements sql.Scanner
func (p *Price) Scan(value any) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return fmt.Errorf("failed to scan price: %w", err)
	}
	p.amount = d
	return nil
}
