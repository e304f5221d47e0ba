package invoice

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var (
	minQuantity = 1
	maxTaxRate  = decimal.NewFromInt(100)
)

// Form input is read up to the first character that cannot continue the
// number, so "2.5" is quantity 2 and "19%" is rate 19.
var (
	leadingInt     = regexp.MustCompile(`^[+-]?\d+`)
	leadingDecimal = regexp.MustCompile(`^[+-]?(\d+(\.\d+)?|\.\d+)([eE][+-]?\d+)?`)
)

func leadingNumber(re *regexp.Regexp, raw string) string {
	return re.FindString(strings.TrimLeftFunc(raw, unicode.IsSpace))
}

func parseLeadingDecimal(raw string) (decimal.Decimal, bool) {
	s := leadingNumber(leadingDecimal, raw)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// NormalizeQuantity reads the leading integer of raw. Input without one and
// values below 1 become 1.
func NormalizeQuantity(raw string) int {
	q, err := strconv.Atoi(leadingNumber(leadingInt, raw))
	if err != nil || q < minQuantity {
		return minQuantity
	}
	return q
}

// NormalizePrice reads the leading decimal number of raw. Input without one
// and negative values become 0.
func NormalizePrice(raw string) decimal.Decimal {
	p, ok := parseLeadingDecimal(raw)
	if !ok || p.IsNegative() {
		return decimal.Zero
	}
	return p
}

// NormalizeTaxRate reads the leading decimal number of raw and clamps it to
// [0, 100]. Input without one is treated as 0.
func NormalizeTaxRate(raw string) decimal.Decimal {
	r, ok := parseLeadingDecimal(raw)
	if !ok {
		return decimal.Zero
	}
	return clampTaxRate(r)
}

func clampTaxRate(r decimal.Decimal) decimal.Decimal {
	if r.IsNegative() {
		return decimal.Zero
	}
	if r.GreaterThan(maxTaxRate) {
		return maxTaxRate
	}
	return r
}
