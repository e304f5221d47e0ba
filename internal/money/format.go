// Package money renders decimal amounts as localized currency strings.
//
// Formatting is presentation only: the amount passed in is never changed,
// only rounded for display to the currency's standard number of digits.
// Separators, grouping and symbols come from the CLDR data bundled with
// github.com/bojanz/currency.
package money

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/bojanz/currency"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/language"
)

// Reference locale and currency of the generator.
const (
	DefaultLocale   = "fr-DZ"
	DefaultCurrency = "DZD"
)

var (
	// ErrInvalidLocale is returned for locale strings that are not BCP 47 tags.
	ErrInvalidLocale = errors.New("invalid locale")

	// ErrInvalidCurrency is returned for unknown ISO 4217 currency codes.
	ErrInvalidCurrency = errors.New("invalid currency code")
)

const nbsp = '\u00a0'

// Formatter formats amounts for one locale and currency.
type Formatter struct {
	locale  currency.Locale
	code    string
	digits  uint8
	fmt     *currency.Formatter
	charset *charmap.Charmap
}

// NewFormatter creates a Formatter for a BCP 47 locale (e.g. "fr-DZ") and an
// ISO 4217 currency code (e.g. "DZD").
func NewFormatter(locale, currencyCode string) (*Formatter, error) {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidLocale, locale, err)
	}
	loc := currency.NewLocale(tag.String())
	if loc.IsEmpty() {
		return nil, fmt.Errorf("%w %q", ErrInvalidLocale, locale)
	}

	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	if !currency.IsValid(code) {
		return nil, fmt.Errorf("%w %q", ErrInvalidCurrency, currencyCode)
	}
	digits, _ := currency.GetDigits(code)

	return &Formatter{
		locale: loc,
		code:   code,
		digits: digits,
		fmt:    currency.NewFormatter(loc),
	}, nil
}

// MustFormatter is like NewFormatter but panics on invalid configuration.
func MustFormatter(locale, currencyCode string) *Formatter {
	f, err := NewFormatter(locale, currencyCode)
	if err != nil {
		panic(err)
	}
	return f
}

// Charset returns a copy of f whose output is limited to the characters of
// cm. Space separators outside cm become no-break spaces, and when the
// currency symbol is outside cm the ISO code is shown instead.
func (f *Formatter) Charset(cm *charmap.Charmap) *Formatter {
	out := *f
	out.fmt = currency.NewFormatter(f.locale)
	out.charset = cm

	if symbol, ok := currency.GetSymbol(f.code, f.locale); !ok || !encodable(cm, symbol) {
		out.fmt.CurrencyDisplay = currency.DisplayCode
	}
	return &out
}

// Locale returns the locale identifier, e.g. "fr-DZ".
func (f *Formatter) Locale() string { return f.locale.String() }

// Currency returns the ISO 4217 code.
func (f *Formatter) Currency() string { return f.code }

// Scale returns the number of fraction digits amounts are shown with.
func (f *Formatter) Scale() int32 { return int32(f.digits) }

// Format renders amount, e.g. "1 234,50 DA" for fr-DZ/DZD or "$1,234.50"
// for en-US/USD. The amount is rounded half away from zero first.
func (f *Formatter) Format(amount decimal.Decimal) string {
	scale := f.Scale()
	fixed := amount.Round(scale).StringFixed(scale)
	a, err := currency.NewAmount(fixed, f.code)
	if err != nil {
		return fixed + string(nbsp) + f.code
	}

	out := f.fmt.Format(a)
	if f.charset != nil {
		out = f.restrict(out)
	}
	return out
}

func (f *Formatter) restrict(s string) string {
	return strings.Map(func(r rune) rune {
		if _, ok := f.charset.EncodeRune(r); ok {
			return r
		}
		if unicode.Is(unicode.Zs, r) {
			return nbsp
		}
		return '?'
	}, s)
}

func encodable(cm *charmap.Charmap, s string) bool {
	for _, r := range s {
		if _, ok := cm.EncodeRune(r); !ok {
			return false
		}
	}
	return true
}

// FormatCurrency is a one-shot helper around NewFormatter and Format.
func FormatCurrency(amount decimal.Decimal, locale, currencyCode string) (string, error) {
	f, err := NewFormatter(locale, currencyCode)
	if err != nil {
		return "", err
	}
	return f.Format(amount), nil
}
