// Package money converts the decimal amounts found in hand histories into
// integer minor units. Arithmetic goes through shopspring/decimal so no value
// ever passes through binary floating point; go-money supplies the number of
// fraction digits for ISO-4217 currencies.
package money

import (
	"fmt"
	"regexp"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/lox/hhconv/internal/parseerr"
	"github.com/lox/hhconv/internal/tables"
	"github.com/shopspring/decimal"
)

// Site-private currencies are all counted in hundredths.
const defaultFraction = 2

var (
	symbols        = []string{"$", "€", "£", "FPP", "FTP"}
	playBuyinRe    = regexp.MustCompile(`^[0-9+ ]*$`)
	thousandsSepRe = regexp.MustCompile(`(\d),(\d{3})`)
)

// Fraction returns the number of minor-unit digits for a currency code.
func Fraction(currency string) int {
	if c := gomoney.GetCurrency(currency); c != nil {
		return c.Fraction
	}
	return defaultFraction
}

// Clean strips currency symbols, ISO suffixes and thousands separators.
func Clean(amount string) string {
	amount = strings.TrimSpace(amount)
	for _, sym := range symbols {
		amount = strings.ReplaceAll(amount, sym, "")
	}
	for thousandsSepRe.MatchString(amount) {
		amount = thousandsSepRe.ReplaceAllString(amount, "$1$2")
	}
	return strings.TrimSpace(amount)
}

// ToMinor parses a decimal amount and returns it in minor units of currency.
// Amounts carrying more precision than the currency allows are rejected.
func ToMinor(amount, currency string) (int64, error) {
	cleaned := Clean(amount)
	if cleaned == "" {
		return 0, fmt.Errorf("money: empty amount %q", amount)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("money: invalid amount %q: %w", amount, err)
	}
	return scale(d, Fraction(currency), amount)
}

// ToMinorCents parses an amount into hundredths regardless of currency.
func ToMinorCents(amount string) (int64, error) {
	return ToMinor(amount, tables.CurrencyTourney)
}

func scale(d decimal.Decimal, fraction int, raw string) (int64, error) {
	scaled := d.Shift(int32(fraction))
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, fmt.Errorf("money: %q has more than %d fraction digits", raw, fraction)
	}
	return toInt64(scaled, raw)
}

func toInt64(d decimal.Decimal, raw string) (int64, error) {
	if !d.BigInt().IsInt64() {
		return 0, parseerr.NewParseError("parse amount", fmt.Sprintf("%q does not fit in 64 bits", raw), raw)
	}
	return d.IntPart(), nil
}

// WholeUnits parses an amount and drops any fractional part. Prize pools are
// reported this way by the summary formats.
func WholeUnits(amount string) (int64, error) {
	d, err := decimal.NewFromString(Clean(amount))
	if err != nil {
		return 0, fmt.Errorf("money: invalid amount %q: %w", amount, err)
	}
	return toInt64(d.Truncate(0), amount)
}

// FromMinor renders a minor-unit amount back into its decimal string.
func FromMinor(minor int64, currency string) string {
	fraction := Fraction(currency)
	return decimal.New(minor, -int32(fraction)).StringFixed(int32(fraction))
}

// Display formats a minor-unit amount for people, e.g. "$1,234.56".
func Display(minor int64, currency string) string {
	if gomoney.GetCurrency(currency) == nil {
		return FromMinor(minor, currency) + " " + currency
	}
	return gomoney.New(minor, currency).Display()
}

// CurrencyForSymbol maps a currency symbol to its code.
func CurrencyForSymbol(symbol string) (string, error) {
	code, ok := tables.Currency(strings.TrimSpace(symbol))
	if !ok {
		return "", &parseerr.LookupError{Table: "currency", Key: symbol}
	}
	return code, nil
}

// BuyinCurrency resolves the currency of a tournament buy-in field, which is
// decided independently from the currency used for stakes inside the hand.
// iso is the optional ISO suffix printed after the buy-in.
func BuyinCurrency(buyin, iso string) (string, error) {
	buyin = strings.TrimSpace(buyin)
	switch {
	case buyin == "Freeroll":
		return tables.CurrencyFree, nil
	case strings.Contains(buyin, "FPP") || iso == "FPP":
		return tables.CurrencyStarsFPP, nil
	case strings.Contains(buyin, "FTP"):
		return tables.CurrencyTiltPoint, nil
	case iso != "":
		return iso, nil
	case strings.Contains(buyin, "$"):
		return "USD", nil
	case strings.Contains(buyin, "£"):
		return "GBP", nil
	case strings.Contains(buyin, "€"):
		return "EUR", nil
	case playBuyinRe.MatchString(buyin):
		return tables.CurrencyPlay, nil
	}
	return "", &parseerr.LookupError{Table: "buy-in currency", Key: buyin}
}

// ForceFree returns the free sentinel when the buy-in is zero.
func ForceFree(buyin int64, currency string) string {
	if buyin == 0 {
		return tables.CurrencyFree
	}
	return currency
}
