package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"github.com/shopspring/decimal"
	"strings"
)

// Price is a product price as the backend sends it. The text is kept verbatim so that
// a price shown, searched or re-submitted is exactly the stored one. The backend does
// not guarantee the text is numeric.
type Price struct {
	raw string
}

func NewPrice(s string) Price {
	return Price{raw: strings.TrimSpace(s)}
}

func (p Price) String() string {
	return p.raw
}

func (p Price) IsZero() bool {
	return p.raw == ""
}

// Decimal parses the price. ok is false when the text is not a number.
func (p Price) Decimal() (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(p.raw)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.raw)
}

// UnmarshalJSON accepts a JSON string, a JSON number or null.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		p.raw = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = NewPrice(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("price must be a string or a number: %w", err)
		}
		p.raw = n.String()
		return nil
	}
}
