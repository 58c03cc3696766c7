package parser

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/resumia/statement-analyzer/internal/extractor"
)

// ColumnLayout holds the X origin of each statement table column,
// inferred per page from its header row.
type ColumnLayout struct {
	DateX    float64
	DescX    float64
	OriginX  float64
	CreditX  float64
	DebitX   float64
	BalanceX float64
}

// fallbackLayout is used on pages without a header row. Continuation
// pages of the source format repeat the table but omit the header, so
// parsing must still proceed with known-good boundaries.
var fallbackLayout = ColumnLayout{
	DateX:    0,
	DescX:    100,
	OriginX:  300,
	CreditX:  400,
	DebitX:   500,
	BalanceX: 600,
}

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeLabel lower-cases a header label and strips accents, so
// "Descripción" matches regardless of how the PDF encodes the accent.
func normalizeLabel(s string) string {
	out, _, err := transform.String(deaccent, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// locateColumns scans the page's lines for the table header row and
// records the X position of each recognized label. Returns the fallback
// layout when no header is present on this page.
func locateColumns(lines [][]extractor.TextItem) ColumnLayout {
	for _, line := range lines {
		text := normalizeLabel(extractor.LineString(line))
		if !strings.Contains(text, "fecha") ||
			!strings.Contains(text, "descripcion") ||
			!strings.Contains(text, "saldo") {
			continue
		}

		layout := fallbackLayout
		for _, item := range line {
			label := normalizeLabel(item.Text)
			if strings.Contains(label, "fecha") {
				layout.DateX = item.X
			}
			if strings.Contains(label, "descripcion") {
				layout.DescX = item.X
			}
			if strings.Contains(label, "origen") {
				layout.OriginX = item.X
			}
			if strings.Contains(label, "credito") {
				layout.CreditX = item.X
			}
			if strings.Contains(label, "debito") {
				layout.DebitX = item.X
			}
			if strings.Contains(label, "saldo") && !strings.Contains(label, "inicial") {
				layout.BalanceX = item.X
			}
		}
		return layout
	}

	return fallbackLayout
}
