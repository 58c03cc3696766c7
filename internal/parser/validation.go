package parser

import (
	"fmt"
	"math"
	"strings"

	"github.com/resumia/statement-analyzer/internal/models"
	"github.com/resumia/statement-analyzer/internal/numfmt"
)

// Validation issue codes. Error-level issues block analysis; warnings
// are informational and travel with the result for display.
const (
	CodeParseFailed          = "PARSE_FAILED"
	CodeNoTransactions       = "NO_TRANSACTIONS"
	CodeMissingPeriod        = "MISSING_PERIOD"
	CodeMissingAccountHolder = "MISSING_ACCOUNT_HOLDER"
	CodeMissingBalance       = "MISSING_BALANCE"
	CodeBalanceMismatch      = "BALANCE_MISMATCH"
	CodeZeroAmounts          = "ZERO_AMOUNTS"
	CodeInvalidPDF           = "INVALID_PDF"
	CodeUnsupportedBank      = "UNSUPPORTED_BANK"
	CodeUnexpectedError      = "UNEXPECTED_ERROR"
)

// balanceSlack is the tolerated reconciliation difference in pesos.
// Rounding inside the statement itself accounts for up to a peso.
const balanceSlack = 1.0

// ValidateStatement cross-checks a parsed statement and returns the
// issues found, blocking errors first by construction.
func ValidateStatement(statement *models.ParsedStatement) []models.ValidationIssue {
	var issues []models.ValidationIssue

	if statement == nil {
		return append(issues, models.ValidationIssue{
			Code:       CodeParseFailed,
			Severity:   models.SeverityError,
			Message:    "No pudimos leer el contenido del PDF",
			Suggestion: "Verificá que sea un extracto de cuenta descargado del homebanking",
		})
	}

	if len(statement.Transactions) == 0 {
		issues = append(issues, models.ValidationIssue{
			Code:       CodeNoTransactions,
			Severity:   models.SeverityError,
			Message:    "No encontramos movimientos en este extracto",
			Suggestion: "¿Es un resumen de tarjeta de crédito? Por ahora solo soportamos extractos de cuenta",
		})
	}

	if statement.Metadata.PeriodFrom == "" || statement.Metadata.PeriodTo == "" {
		issues = append(issues, models.ValidationIssue{
			Code:     CodeMissingPeriod,
			Severity: models.SeverityWarning,
			Message:  "No pudimos detectar el período del extracto",
			Field:    "period",
		})
	}

	if strings.TrimSpace(statement.Metadata.AccountHolder) == "" {
		issues = append(issues, models.ValidationIssue{
			Code:     CodeMissingAccountHolder,
			Severity: models.SeverityWarning,
			Message:  "No encontramos el nombre del titular",
			Field:    "accountHolder",
		})
	}

	if statement.Metadata.OpeningBalance == 0 && statement.Metadata.ClosingBalance == 0 {
		issues = append(issues, models.ValidationIssue{
			Code:     CodeMissingBalance,
			Severity: models.SeverityWarning,
			Message:  "No pudimos extraer los saldos de la cuenta",
			Field:    "balance",
		})
	}

	// Reconciliation: opening + credits - debits should land on the
	// closing balance. A closing balance of exactly 0 means it was not
	// extracted, which the MISSING_BALANCE warning already covers.
	calculated := statement.Metadata.OpeningBalance +
		statement.Totals.Credits -
		statement.Totals.Debits
	diff := math.Abs(calculated - statement.Metadata.ClosingBalance)
	if diff > balanceSlack && statement.Metadata.ClosingBalance != 0 {
		issues = append(issues, models.ValidationIssue{
			Code:     CodeBalanceMismatch,
			Severity: models.SeverityWarning,
			Message: fmt.Sprintf("Diferencia de %s entre el saldo calculado y el del extracto",
				numfmt.FormatArgentineCurrency(diff)),
			Suggestion: "Esto puede deberse a movimientos en otras monedas o comisiones no detalladas",
		})
	}

	// An explicit zero on one side with the other side absent means an
	// amount fragment was found but could not be read. The parser
	// records unreadable amounts as nil, so this combination only
	// appears when something upstream went wrong.
	suspiciousZeros := 0
	for i := range statement.Transactions {
		t := &statement.Transactions[i]
		if (t.Credit != nil && *t.Credit == 0 && t.Debit == nil) ||
			(t.Debit != nil && *t.Debit == 0 && t.Credit == nil) {
			suspiciousZeros++
		}
	}
	if suspiciousZeros > 0 {
		issues = append(issues, models.ValidationIssue{
			Code:       CodeZeroAmounts,
			Severity:   models.SeverityWarning,
			Message:    fmt.Sprintf("%d movimiento(s) tienen monto $0", suspiciousZeros),
			Suggestion: "Algunos montos no se pudieron leer correctamente",
		})
	}

	return issues
}

// HasBlockingErrors reports whether any issue is error-level.
func HasBlockingErrors(issues []models.ValidationIssue) bool {
	for _, issue := range issues {
		if issue.Severity == models.SeverityError {
			return true
		}
	}
	return false
}

// Warnings filters the warning-level issues.
func Warnings(issues []models.ValidationIssue) []models.ValidationIssue {
	var warnings []models.ValidationIssue
	for _, issue := range issues {
		if issue.Severity == models.SeverityWarning {
			warnings = append(warnings, issue)
		}
	}
	return warnings
}
