package expense

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Dash is the price the model reports for an item without one.
const Dash = "-"

// Price is either a numeric amount or the literal "-". It encodes back to
// exactly what it decoded from; "-" is never read as zero.
type Price struct {
	amount float64
	dash   bool
}

// Amount returns a numeric price.
func Amount(v float64) Price { return Price{amount: v} }

// NoPrice returns the "-" price.
func NoPrice() Price { return Price{dash: true} }

// IsDash reports whether the price is "-".
func (p Price) IsDash() bool { return p.dash }

// Value returns the amount and true, or 0 and false for "-".
func (p Price) Value() (float64, bool) {
	if p.dash {
		return 0, false
	}
	return p.amount, true
}

func (p Price) String() string {
	if p.dash {
		return Dash
	}
	return strconv.FormatFloat(p.amount, 'f', -1, 64)
}

func (p Price) MarshalJSON() ([]byte, error) {
	if p.dash {
		return []byte(`"-"`), nil
	}
	return json.Marshal(p.amount)
}

// UnmarshalJSON accepts a JSON number or the string "-". Any other string,
// null, or other type is an error.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s != Dash {
			return fmt.Errorf("price must be a number or %q, got %q", Dash, s)
		}
		*p = NoPrice()
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("price must be a number or %q, got null", Dash)
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("price must be a number or %q: %w", Dash, err)
	}
	*p = Amount(v)
	return nil
}

// Expense is one extracted item.
type Expense struct {
	Item  string `json:"item"`
	Price Price  `json:"price"`
}

// Result is the structured answer to an extraction.
type Result struct {
	Expenses []Expense `json:"expenses"`
	Total    float64   `json:"total"`
}

// NumericSum adds up every numeric price, skipping "-". Total is reported
// by the model and is not checked against it.
func (r Result) NumericSum() float64 {
	var sum float64
	for _, e := range r.Expenses {
		if v, ok := e.Price.Value(); ok {
			sum += v
		}
	}
	return sum
}
