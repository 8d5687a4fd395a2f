// Package currencyutils parses and formats the monetary cells of a bank
// statement. Amounts are kept as decimals end to end; the lenient parser is
// total and never fails, the strict parser reports what it could not read.
package currencyutils

import (
	"fmt"
	"strings"

	"fjacquet/statement-analyzer/internal/parsererror"

	"github.com/shopspring/decimal"
)

// Placeholder is the single-dash cell banks use for "no value".
const Placeholder = "-"

// MaxExponent bounds the decimal exponent of a parsed amount. Cells such as
// "1e900000000" fall outside it and are rejected.
const MaxExponent = 32

// Clean trims the value and strips thousands-separator commas.
func Clean(amountStr string) string {
	return strings.ReplaceAll(strings.TrimSpace(amountStr), ",", "")
}

// IsPlaceholder reports whether the cell carries no value: blank or a lone dash.
func IsPlaceholder(amountStr string) bool {
	v := strings.TrimSpace(amountStr)
	return v == "" || v == Placeholder
}

// ParseAmount converts a cell such as "  1,234.56" into a decimal.
// Blank cells, dashes and anything non-numeric yield zero.
func ParseAmount(amountStr string) decimal.Decimal {
	amount, err := ParseAmountStrict(amountStr)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// ParseAmountStrict behaves like ParseAmount but returns a
// *parsererror.AmountError for non-numeric content, and for values whose
// exponent lies outside [-MaxExponent, MaxExponent], instead of zero.
// Blank cells and dashes are still zero.
func ParseAmountStrict(amountStr string) (decimal.Decimal, error) {
	cleaned := Clean(amountStr)
	if cleaned == "" || cleaned == Placeholder {
		return decimal.Zero, nil
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, &parsererror.AmountError{Value: amountStr, Err: err}
	}
	if exp := amount.Exponent(); exp < -MaxExponent || exp > MaxExponent {
		return decimal.Zero, &parsererror.AmountError{
			Value: amountStr,
			Err:   fmt.Errorf("exponent %d out of range", exp),
		}
	}
	return amount, nil
}

// FormatAmount renders an amount with two decimals and thousands separators,
// e.g. 1234.5 -> "1,234.50".
func FormatAmount(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// FormatWithSymbol prefixes the formatted absolute amount with a currency symbol.
func FormatWithSymbol(amount decimal.Decimal, symbol string) string {
	return symbol + FormatAmount(amount)
}
