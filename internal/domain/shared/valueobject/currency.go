package valueobject

import (
	"fmt"
	"strings"
)

// Currency represents an ISO 4217 currency code
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	CHF Currency = "CHF"
	SGD Currency = "SGD"
	AED Currency = "AED"
)

// DefaultCurrency is used when a fee plan or commission does not name one
const DefaultCurrency = USD

var supportedCurrencies = map[Currency]struct{}{
	USD: {}, EUR: {}, GBP: {}, CHF: {}, SGD: {}, AED: {},
}

// ParseCurrency normalizes and validates a currency code. An empty code yields DefaultCurrency.
func ParseCurrency(code string) (Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency, nil
	}
	c := Currency(code)
	if !c.IsValid() {
		return "", fmt.Errorf("unsupported currency: %s", code)
	}
	return c, nil
}

// IsValid reports whether the currency is supported
func (c Currency) IsValid() bool {
	_, ok := supportedCurrencies[c]
	return ok
}

// String returns the currency code
func (c Currency) String() string {
	return string(c)
}
