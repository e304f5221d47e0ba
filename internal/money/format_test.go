package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestFormatter_ReferenceLocale(t *testing.T) {
	f, err := NewFormatter(DefaultLocale, DefaultCurrency)
	require.NoError(t, err)

	assert.Equal(t, "238,00\u00a0DA", f.Format(d("238")))
	assert.Equal(t, "1\u202f234,50\u00a0DA", f.Format(d("1234.5")))
	assert.Equal(t, "1\u202f000\u202f000,00\u00a0DA", f.Format(d("1000000")))
	assert.Equal(t, "0,00\u00a0DA", f.Format(decimal.Zero))
	assert.Equal(t, "DZD", f.Currency())
	assert.Equal(t, "fr-DZ", f.Locale())
	assert.Equal(t, int32(2), f.Scale())
}

func TestFormatter_English(t *testing.T) {
	usd, err := NewFormatter("en-US", "usd")
	require.NoError(t, err)
	assert.Equal(t, "$1,234.57", usd.Format(d("1234.567")))
	assert.Equal(t, "$1,234.57", usd.Format(d("1234.565")), "half away from zero")
	assert.Equal(t, "-$5.00", usd.Format(d("-5")))
}

func TestFormatter_German(t *testing.T) {
	f, err := NewFormatter("de-DE", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "1.234,50\u00a0€", f.Format(d("1234.5")))
}

func TestFormatter_LocaleSpecificGrouping(t *testing.T) {
	chf, err := NewFormatter("de-CH", "CHF")
	require.NoError(t, err)
	assert.Contains(t, chf.Format(d("1234567.5")), "1’234’567.50")

	inr, err := NewFormatter("en-IN", "INR")
	require.NoError(t, err)
	assert.Equal(t, "₹12,34,567.50", inr.Format(d("1234567.5")))

	mxn, err := NewFormatter("es-MX", "MXN")
	require.NoError(t, err)
	assert.Equal(t, "$1,234,567.50", mxn.Format(d("1234567.5")))
}

func TestFormatter_ZeroDigitCurrency(t *testing.T) {
	f, err := NewFormatter("en", "JPY")
	require.NoError(t, err)
	assert.Equal(t, int32(0), f.Scale())
	assert.Equal(t, "¥1,235", f.Format(d("1234.5")))
}

func TestFormatter_DoesNotChangeAmount(t *testing.T) {
	f := MustFormatter(DefaultLocale, DefaultCurrency)
	amount := d("12.345")

	_ = f.Format(amount)
	assert.True(t, amount.Equal(d("12.345")))
}

func TestFormatter_RoundingTinyNegativeIsNotSigned(t *testing.T) {
	f := MustFormatter("en", "USD")
	assert.Equal(t, "$0.00", f.Format(d("-0.001")))
}

func TestFormatter_Charset(t *testing.T) {
	cp1252 := charmap.Windows1252

	dzd := MustFormatter(DefaultLocale, DefaultCurrency).Charset(cp1252)
	assert.Equal(t, "1\u00a0234\u00a0567,50\u00a0DA", dzd.Format(d("1234567.5")))

	inr := MustFormatter("en-IN", "INR").Charset(cp1252)
	out := inr.Format(d("1234567.5"))
	assert.Contains(t, out, "INR")
	assert.Contains(t, out, "12,34,567.50")

	for _, s := range []string{dzd.Format(d("-98765.4")), out} {
		_, err := cp1252.NewEncoder().String(s)
		assert.NoError(t, err, "%q must be encodable", s)
	}

	usd := MustFormatter("en-US", "USD")
	assert.Equal(t, usd.Format(d("12")), usd.Charset(cp1252).Format(d("12")))
}

func TestNewFormatter_InvalidInput(t *testing.T) {
	_, err := NewFormatter("not a locale!", "DZD")
	assert.ErrorIs(t, err, ErrInvalidLocale)

	_, err = NewFormatter("fr-DZ", "ZZZ")
	assert.ErrorIs(t, err, ErrInvalidCurrency)

	assert.Panics(t, func() { MustFormatter("fr", "??") })
}

func TestFormatCurrency(t *testing.T) {
	s, err := FormatCurrency(d("80"), "fr-DZ", "DZD")
	require.NoError(t, err)
	assert.Equal(t, "80,00\u00a0DA", s)

	_, err = FormatCurrency(d("80"), "fr-DZ", "")
	assert.Error(t, err)
}
