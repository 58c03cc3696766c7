package parser

import (
	"regexp"
	"strings"

	"github.com/resumia/statement-analyzer/internal/models"
	"github.com/resumia/statement-analyzer/internal/numfmt"
)

// Classification is the classifier's verdict for one transaction block.
type Classification struct {
	Type     models.TransactionType
	Merchant string
	Metadata models.TransactionMetadata
}

var (
	cuitPattern   = regexp.MustCompile(`\b(\d{11})\b`)
	cardPattern   = regexp.MustCompile(`\b(\d{16})\b`)
	fxRatePattern = regexp.MustCompile(`(?i)Cotizacion:\s*([\d.,]+)`)
)

// classifyRule pairs a first-line predicate with an extractor that
// fills in type, merchant and metadata. Rules are evaluated top to
// bottom and the first match wins, so keyword order matters: narrower
// labels must be checked before labels they contain.
type classifyRule struct {
	match func(firstLine string) bool
	apply func(c *Classification, lines []string, rawText string)
}

func anyOf(keywords ...string) func(string) bool {
	return func(firstLine string) bool {
		for _, kw := range keywords {
			if strings.Contains(firstLine, kw) {
				return true
			}
		}
		return false
	}
}

var classifyRules = []classifyRule{
	{
		match: anyOf("TRANSFERENCIA A TERCEROS"),
		apply: func(c *Classification, lines []string, rawText string) {
			c.Type = models.TypeTransferSent
			c.Merchant = secondLine(lines)
			extractTransferMetadata(c, lines, rawText)
		},
	},
	{
		match: anyOf("TRANSFERENCIA DE TERCEROS"),
		apply: func(c *Classification, lines []string, rawText string) {
			c.Type = models.TypeTransferReceived
			c.Merchant = secondLine(lines)
			extractTransferMetadata(c, lines, rawText)
		},
	},
	{
		match: anyOf("COMPRA DEBITO"),
		apply: func(c *Classification, lines []string, rawText string) {
			c.Type = models.TypePurchase
			c.Merchant = secondLine(lines)
			if m := cardPattern.FindStringSubmatch(rawText); m != nil {
				c.Metadata.CardNumber = m[1]
			}
		},
	},
	{
		match: anyOf("PAGO TARJETA"),
		apply: func(c *Classification, lines []string, _ string) {
			c.Type = models.TypeCardPayment
			c.Merchant = "Pago Tarjeta"
			if strings.Contains(strings.ToUpper(lines[0]), "VISA") {
				c.Merchant = "Pago Tarjeta Visa"
			}
		},
	},
	{
		match: anyOf("EXTRACCION", "EXTRACC"),
		apply: func(c *Classification, _ []string, _ string) {
			c.Type = models.TypeATMWithdrawal
			c.Merchant = "Extracción ATM"
		},
	},
	{
		match: anyOf("PERCEPCION RG"),
		apply: func(c *Classification, _ []string, _ string) {
			c.Type = models.TypeTax
			c.Merchant = "Percepción RG 5617/24"
		},
	},
	{
		match: anyOf("ANULACION PERCEPCION"),
		apply: func(c *Classification, _ []string, _ string) {
			c.Type = models.TypeTaxReversal
			c.Merchant = "Anulación Percepción"
		},
	},
	{
		match: anyOf("DEV.COMPRA", "DEVOLUCION"),
		apply: func(c *Classification, _ []string, rawText string) {
			c.Type = models.TypeRefund
			c.Merchant = "Devolución"
			if m := cardPattern.FindStringSubmatch(rawText); m != nil {
				c.Metadata.CardNumber = m[1]
			}
		},
	},
	{
		match: anyOf("REINTEGRO PROMO"),
		apply: func(c *Classification, _ []string, _ string) {
			c.Type = models.TypeCashback
			c.Merchant = "Reintegro Promoción Galicia"
		},
	},
	{
		match: anyOf("INTERES CAPITALIZADO"),
		apply: func(c *Classification, _ []string, _ string) {
			c.Type = models.TypeInterest
			c.Merchant = "Intereses"
		},
	},
	{
		match: anyOf("G.DE ECHEQ", "ECHEQ"),
		apply: func(c *Classification, _ []string, _ string) {
			c.Type = models.TypeEcheq
			c.Merchant = "E-Cheque"
		},
	},
	{
		match: anyOf("DEBIN"),
		apply: func(c *Classification, lines []string, _ string) {
			c.Type = models.TypeDebin
			if m := secondLine(lines); m != "" {
				c.Merchant = m
			} else {
				c.Merchant = "Débito DEBIN"
			}
		},
	},
	{
		match: anyOf("COMPRA VENTA DE DOLARES", "COMPRA MONEDA"),
		apply: func(c *Classification, _ []string, rawText string) {
			c.Type = models.TypeFXPurchase
			c.Merchant = "Compra de Dólares"
			if m := fxRatePattern.FindStringSubmatch(rawText); m != nil {
				c.Metadata.FXRate = numfmt.ParseArgentineNumber(m[1])
			}
		},
	},
	{
		match: func(firstLine string) bool {
			return strings.Contains(firstLine, "IMP.") && strings.Contains(firstLine, "LEY 25413")
		},
		apply: func(c *Classification, _ []string, _ string) {
			c.Type = models.TypeTax
			c.Merchant = "Impuesto al Cheque (Ley 25.413)"
		},
	},
	{
		match: anyOf("ANULACION REINTEGRO"),
		apply: func(c *Classification, _ []string, _ string) {
			c.Type = models.TypeRefund
			c.Merchant = "Anulación Reintegro"
		},
	},
}

// Classify maps a raw multi-line description to a transaction type and
// extracts the counterparty plus any secondary fields. The credit and
// debit amounts are part of the contract for future rules but no
// current rule needs them.
func Classify(rawText string, credit, debit *float64) Classification {
	_ = credit
	_ = debit

	lines := splitTrimmedLines(rawText)
	firstLine := ""
	if len(lines) > 0 {
		firstLine = strings.ToUpper(lines[0])
	}

	c := Classification{Type: models.TypeUnknown}
	for _, rule := range classifyRules {
		if rule.match(firstLine) {
			rule.apply(&c, lines, rawText)
			break
		}
	}

	c.Merchant = collapseWhitespace(c.Merchant)
	return c
}

func extractTransferMetadata(c *Classification, lines []string, rawText string) {
	if m := cuitPattern.FindStringSubmatch(rawText); m != nil {
		c.Metadata.CUIT = m[1]
	}
	for _, line := range lines {
		if strings.Contains(line, "BANCO") || strings.Contains(line, "MERCADO LIBRE") {
			c.Metadata.Bank = line
			break
		}
	}
}

func splitTrimmedLines(rawText string) []string {
	lines := strings.Split(rawText, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return lines
}

func secondLine(lines []string) string {
	if len(lines) > 1 {
		return lines[1]
	}
	return ""
}

var whitespaceRun = regexp.MustCompile(`\s+`)

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}
