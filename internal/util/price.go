package util

import (
	"strings"

	"github.com/shopspring/decimal"
)

type PriceStatus int

const (
	PriceEmpty PriceStatus = iota
	PriceParsed
	PriceInvalid
)

func (s PriceStatus) String() string {
	switch s {
	case PriceEmpty:
		return "empty"
	case PriceParsed:
		return "parsed"
	default:
		return "invalid"
	}
}

// ParsedPrice is the outcome of reading one price cell. Value is only
// meaningful when Status is PriceParsed.
type ParsedPrice struct {
	Status PriceStatus
	Value  decimal.Decimal
}

// OrZero coerces empty and invalid prices to zero.
func (p ParsedPrice) OrZero() decimal.Decimal {
	if p.Status != PriceParsed {
		return decimal.Zero
	}
	return p.Value
}

var zeroTokens = map[string]struct{}{"": {}, "0": {}, "0.0": {}, "0,0": {}}

// ParsePrice reads an Argentine formatted price such as "$1.234,56".
// Dots are thousands separators and the comma is the decimal mark.
func ParsePrice(input string) ParsedPrice {
	raw := strings.TrimSpace(input)
	if _, ok := zeroTokens[raw]; ok {
		return ParsedPrice{Status: PriceEmpty}
	}

	clean := strings.ReplaceAll(raw, "$", "")
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")
	clean = strings.TrimSpace(clean)

	return fromToken(clean)
}

// ParseNumericPrice reads a cell the spreadsheet already stored as a number,
// so no separator rewriting is applied.
func ParseNumericPrice(input string) ParsedPrice {
	raw := strings.TrimSpace(input)
	if _, ok := zeroTokens[raw]; ok {
		return ParsedPrice{Status: PriceEmpty}
	}
	return fromToken(raw)
}

// Prices past these bounds are treated as garbage; expanding them to
// decimal text would take unbounded time and memory.
const (
	maxPriceExponent = 15
	maxPriceDigits   = 30
)

func fromToken(token string) ParsedPrice {
	value, err := decimal.NewFromString(token)
	if err != nil || value.IsNegative() {
		return ParsedPrice{Status: PriceInvalid}
	}
	exp := value.Exponent()
	if exp > maxPriceExponent || exp < -maxPriceExponent || value.NumDigits() > maxPriceDigits {
		return ParsedPrice{Status: PriceInvalid}
	}
	if value.IsZero() {
		return ParsedPrice{Status: PriceEmpty}
	}
	return ParsedPrice{Status: PriceParsed, Value: value}
}
