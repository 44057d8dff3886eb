// Package parse interprets pt-BR chat messages as transaction candidates.
// It extracts the amount, date, transaction type and category from free
// text like "gastei 37,90 no mercado ontem" or "recebi 1500 de salário".
package parse

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// "5k", "1,5k" shorthand: value times one thousand.
	kShorthandRe = regexp.MustCompile(`\b(\d+(?:[.,]\d+)?)\s*k\b`)
	// "5 mil", "1,5 mil" shorthand.
	milShorthandRe = regexp.MustCompile(`\b(\d+(?:[.,]\d+)?)\s*mil\b`)
	// Decimal token: grouped digits with optional comma cents, or a bare
	// integer. Digit adjacency is checked separately since RE2 has no
	// lookarounds.
	decimalRe = regexp.MustCompile(`[\d.]+,\d{1,2}|\d+`)
)

// ExtractAmount finds the monetary value in a message. Shorthand forms
// ("5k", "2 mil") take precedence over plain decimal tokens. The second
// return is false when no value is present; callers must not substitute
// zero.
func ExtractAmount(text string) (float64, bool) {
	t := strings.ReplaceAll(strings.ToLower(text), "r$", " ")

	if m := kShorthandRe.FindStringSubmatch(t); m != nil {
		return parseThousands(m[1])
	}
	if m := milShorthandRe.FindStringSubmatch(t); m != nil {
		return parseThousands(m[1])
	}

	for _, loc := range decimalRe.FindAllStringIndex(t, -1) {
		start, end := loc[0], loc[1]
		// Reject tokens glued to other digits.
		if start > 0 && isDigit(t[start-1]) {
			continue
		}
		if end < len(t) && isDigit(t[end]) {
			continue
		}
		return parseDecimal(t[start:end])
	}
	return 0, false
}

// parseThousands normalizes a pt-BR numeral and multiplies by 1000.
func parseThousands(raw string) (float64, bool) {
	raw = strings.ReplaceAll(raw, ".", "")
	raw = strings.ReplaceAll(raw, ",", ".")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v * 1000, true
}

// parseDecimal normalizes a decimal token. A comma marks the decimal
// separator and dots are grouping; without a comma the token is parsed
// as written.
func parseDecimal(raw string) (float64, bool) {
	if strings.Contains(raw, ",") {
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.ReplaceAll(raw, ",", ".")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
