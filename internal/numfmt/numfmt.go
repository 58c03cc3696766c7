// Package numfmt handles the number and date formats used by Argentine
// bank statements: dots for thousands, comma for decimals, DD/MM/YY dates.
package numfmt

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseArgentineNumber converts a string like "1.000.000,50" or
// "-502.685,77" to a float64. Returns 0 for empty or unparseable input;
// callers treat 0 as "absent", so a failed parse degrades to a missing
// amount rather than an error.
func ParseArgentineNumber(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}

	negative := strings.HasPrefix(cleaned, "-")
	if negative {
		cleaned = cleaned[1:]
	}

	// Dots are thousand separators, the comma is the decimal point.
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.Replace(cleaned, ",", ".", 1)

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0
	}
	if negative {
		d = d.Neg()
	}
	return d.InexactFloat64()
}

// FormatArgentineNumber renders a float64 back into Argentine format
// with two decimals, e.g. 1000000.5 -> "1.000.000,50".
func FormatArgentineNumber(value float64) string {
	d := decimal.NewFromFloat(value).Round(2)
	negative := d.IsNegative()

	parts := strings.SplitN(d.Abs().StringFixed(2), ".", 2)
	integer, frac := parts[0], parts[1]

	var groups []string
	for len(integer) > 3 {
		groups = append([]string{integer[len(integer)-3:]}, groups...)
		integer = integer[:len(integer)-3]
	}
	groups = append([]string{integer}, groups...)

	formatted := strings.Join(groups, ".") + "," + frac
	if negative {
		return "-" + formatted
	}
	return formatted
}

// FormatArgentineCurrency renders a value with a leading $ sign,
// keeping the minus sign outside: -1234.5 -> "-$1.234,50". The sign
// check runs on the rounded string, not the raw value, so a tiny
// negative that rounds to zero formats as "$0,00".
func FormatArgentineCurrency(value float64) string {
	formatted := FormatArgentineNumber(value)
	if strings.HasPrefix(formatted, "-") {
		return "-$" + formatted[1:]
	}
	return "$" + formatted
}

var (
	dateDDMMYY   = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{2})$`)
	dateDDMMYYYY = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)
)

// ParseDateDDMMYY converts "01/12/25" to ISO "2025-12-01". Two-digit
// years always expand to 20xx. Input that does not match is returned
// unchanged so the raw value stays visible downstream.
func ParseDateDDMMYY(dateStr string) string {
	m := dateDDMMYY.FindStringSubmatch(dateStr)
	if m == nil {
		return dateStr
	}
	return "20" + m[3] + "-" + m[2] + "-" + m[1]
}

// ParseDateDDMMYYYY converts "26/12/2025" to ISO "2025-12-26".
func ParseDateDDMMYYYY(dateStr string) string {
	m := dateDDMMYYYY.FindStringSubmatch(dateStr)
	if m == nil {
		return dateStr
	}
	return m[3] + "-" + m[2] + "-" + m[1]
}

// FormatDateArgentine converts an ISO date back to DD/MM/YYYY for display.
func FormatDateArgentine(isoDate string) string {
	parts := strings.Split(isoDate, "-")
	if len(parts) != 3 {
		return isoDate
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}
