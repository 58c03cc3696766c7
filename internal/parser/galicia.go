package parser

import (
	"math"
	"regexp"
	"strings"

	"github.com/resumia/statement-analyzer/internal/extractor"
	"github.com/resumia/statement-analyzer/internal/models"
	"github.com/resumia/statement-analyzer/internal/numfmt"
)

// IsGaliciaStatement probes the full document text for the markers of a
// Galicia account statement.
func IsGaliciaStatement(fullText string) bool {
	return strings.Contains(fullText, "Galicia") &&
		(strings.Contains(fullText, "Resumen de Cuenta Sueldo") ||
			strings.Contains(fullText, "Caja de Ahorro"))
}

// ParseGalicia parses an extracted Galicia statement into its structured
// form: metadata, the transaction list with cancellation pairs marked,
// recomputed totals and the tax consolidation table.
func ParseGalicia(doc *extractor.Document) *models.ParsedStatement {
	metadata := extractMetadata(doc)
	transactions := extractTransactions(doc)
	printedTotals := extractPrintedTotals(doc)
	taxConsolidation := extractTaxConsolidation(doc)

	markCancelledPairs(transactions)

	// Totals are recomputed from the parsed transactions rather than
	// copied from the printed total row; that keeps the balance
	// reconciliation check meaningful. Debits are stored negative on
	// the transaction, positive in the total.
	var credits, debits float64
	for i := range transactions {
		if transactions[i].Credit != nil {
			credits += *transactions[i].Credit
		}
		if transactions[i].Debit != nil {
			debits += math.Abs(*transactions[i].Debit)
		}
	}

	finalBalance := printedTotals.FinalBalance
	if finalBalance == 0 {
		finalBalance = metadata.ClosingBalance
	}

	return &models.ParsedStatement{
		Metadata:     metadata,
		Transactions: transactions,
		Totals: models.Totals{
			Credits:      credits,
			Debits:       debits,
			FinalBalance: finalBalance,
		},
		TaxConsolidation: taxConsolidation,
	}
}

var (
	holderPattern     = regexp.MustCompile(`Consumidor Final\s+([A-ZÁÉÍÓÚÑ][A-ZÁÉÍÓÚÑ\s]+?)\s+Resumen`)
	holderAltPattern  = regexp.MustCompile(`IVA[:\s]+Consumidor Final\s+([A-ZÁÉÍÓÚÑ][A-ZÁÉÍÓÚÑ\s]+)`)
	cuitHolderPattern = regexp.MustCompile(`CUIT del Responsable Impositivo\s*:\s*([\d-]+)`)
	accountPattern    = regexp.MustCompile(`N°\s*([\d-]+\s+[\d-]+)`)
	cbuPattern        = regexp.MustCompile(`CBU\s*(\d{22})`)

	// The period dates often print before their label, sometimes after.
	periodPattern    = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})\s+(\d{2}/\d{2}/\d{4})\s+Período de movimientos`)
	periodAltPattern = regexp.MustCompile(`Período de movimientos\s+(\d{2}/\d{2}/\d{4})\s+(\d{2}/\d{2}/\d{4})`)

	// "$1.235.117,39 $96.908,52 Saldos" prints closing first, opening second.
	balancesPattern = regexp.MustCompile(`\$?([\d.,]+)\s+\$?([\d.,]+)\s+Saldos`)
	openingPattern  = regexp.MustCompile(`(?i)Saldo inicial\s*\$?([\d.,]+)`)
	closingPattern  = regexp.MustCompile(`(?i)Saldo final\s*\$?([\d.,]+)`)
)

// extractMetadata pulls account-level data out of the full document
// text. The layout interleaves labels and values unpredictably, so this
// is regex-driven rather than positional.
func extractMetadata(doc *extractor.Document) models.StatementMetadata {
	fullText := doc.FullText

	var accountHolder string
	if m := holderPattern.FindStringSubmatch(fullText); m != nil {
		accountHolder = strings.TrimSpace(m[1])
	} else if m := holderAltPattern.FindStringSubmatch(fullText); m != nil {
		accountHolder = strings.TrimSpace(m[1])
	}

	var cuit string
	if m := cuitHolderPattern.FindStringSubmatch(fullText); m != nil {
		cuit = m[1]
	}

	var accountNumber string
	if m := accountPattern.FindStringSubmatch(fullText); m != nil {
		accountNumber = strings.TrimSpace(m[1])
	}

	var cbu string
	if m := cbuPattern.FindStringSubmatch(fullText); m != nil {
		cbu = m[1]
	}

	var periodFrom, periodTo string
	m := periodPattern.FindStringSubmatch(fullText)
	if m == nil {
		m = periodAltPattern.FindStringSubmatch(fullText)
	}
	if m != nil {
		// The printed order varies; normalize so from <= to. ISO dates
		// compare correctly as strings.
		date1 := numfmt.ParseDateDDMMYYYY(m[1])
		date2 := numfmt.ParseDateDDMMYYYY(m[2])
		if date1 < date2 {
			periodFrom, periodTo = date1, date2
		} else {
			periodFrom, periodTo = date2, date1
		}
	}

	var openingBalance, closingBalance float64
	if m := balancesPattern.FindStringSubmatch(fullText); m != nil {
		closingBalance = numfmt.ParseArgentineNumber(m[1])
		openingBalance = numfmt.ParseArgentineNumber(m[2])
	} else {
		if m := openingPattern.FindStringSubmatch(fullText); m != nil {
			openingBalance = numfmt.ParseArgentineNumber(m[1])
		}
		if m := closingPattern.FindStringSubmatch(fullText); m != nil {
			closingBalance = numfmt.ParseArgentineNumber(m[1])
		}
	}

	accountType := "Cuenta Sueldo"
	if strings.Contains(fullText, "Caja de Ahorro") {
		accountType = "Caja de Ahorro"
	}

	return models.StatementMetadata{
		Bank:           "Banco Galicia",
		AccountType:    accountType,
		AccountNumber:  accountNumber,
		CBU:            cbu,
		AccountHolder:  accountHolder,
		CUIT:           cuit,
		PeriodFrom:     periodFrom,
		PeriodTo:       periodTo,
		OpeningBalance: openingBalance,
		ClosingBalance: closingBalance,
	}
}

// extractTransactions walks every page, preserving page and line order.
func extractTransactions(doc *extractor.Document) []models.Transaction {
	var transactions []models.Transaction
	for _, page := range doc.Pages {
		transactions = append(transactions, extractPageTransactions(page.Items)...)
	}
	return transactions
}

var totalsAmountPattern = regexp.MustCompile(`\$?\s*([\d.,]+)`)

// extractPrintedTotals finds the printed totals row (any line with both
// "Total" and "$") and takes its first three numbers as credits, debits
// and final balance. Used only as a cross-check and balance fallback.
func extractPrintedTotals(doc *extractor.Document) models.Totals {
	var totals models.Totals

	for _, page := range doc.Pages {
		lines := extractor.GroupLines(page.Items, extractor.DefaultLineTolerance)
		for _, line := range lines {
			lineText := extractor.LineString(line)
			if !strings.Contains(lineText, "Total") || !strings.Contains(lineText, "$") {
				continue
			}

			amounts := totalsAmountPattern.FindAllStringSubmatch(lineText, -1)
			if len(amounts) >= 3 {
				totals.Credits = numfmt.ParseArgentineNumber(amounts[0][1])
				totals.Debits = numfmt.ParseArgentineNumber(amounts[1][1])
				totals.FinalBalance = numfmt.ParseArgentineNumber(amounts[2][1])
			}
		}
	}

	return totals
}

var (
	consolidationPeriodPattern = regexp.MustCompile(`(?i)PERIODO COMPRENDIDO ENTRE EL ([\d-]+) Y EL ([\d-]+)`)
	lineEndAmountPattern       = regexp.MustCompile(`([\d.,]+)$`)
	lineStartAmountPattern     = regexp.MustCompile(`^([\d.,]+)`)
)

// extractTaxConsolidation reads the withholding-tax summary sub-table
// that follows the movements. The section starts at "Consolidado de
// retención" and ends at the boilerplate that follows it.
func extractTaxConsolidation(doc *extractor.Document) []models.TaxConsolidation {
	var consolidations []models.TaxConsolidation
	inSection := false

	for _, page := range doc.Pages {
		lines := extractor.GroupLines(page.Items, extractor.DefaultLineTolerance)

		for i := 0; i < len(lines); i++ {
			lineText := extractor.LineString(lines[i])

			if strings.Contains(lineText, "Consolidado de retención") {
				inSection = true
				continue
			}
			if !inSection {
				continue
			}

			if strings.Contains(lineText, "TOTAL") && strings.Contains(lineText, "LEY 25.413") {
				periodMatch := consolidationPeriodPattern.FindStringSubmatch(lineText)

				// The amount prints either at the end of the row or at
				// the start of the next line.
				var amount float64
				if m := lineEndAmountPattern.FindStringSubmatch(lineText); m != nil {
					amount = numfmt.ParseArgentineNumber(m[1])
				} else if i+1 < len(lines) {
					nextText := extractor.LineString(lines[i+1])
					if m := lineStartAmountPattern.FindStringSubmatch(nextText); m != nil {
						amount = numfmt.ParseArgentineNumber(m[1])
					}
				}

				if amount > 0 {
					entry := models.TaxConsolidation{
						Description: lineText,
						Amount:      amount,
					}
					if periodMatch != nil {
						entry.PeriodFrom = periodMatch[1]
						entry.PeriodTo = periodMatch[2]
					}
					consolidations = append(consolidations, entry)
				}
			}

			if strings.Contains(lineText, "Los depósitos en pesos") ||
				strings.Contains(lineText, "Canales de atención") {
				inSection = false
			}
		}
	}

	return consolidations
}
