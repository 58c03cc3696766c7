package models

// StatementMetadata holds account-level data extracted once from the
// first page of the statement. Never mutated after extraction.
type StatementMetadata struct {
	Bank           string  `json:"bank"`
	AccountType    string  `json:"accountType"`
	AccountNumber  string  `json:"accountNumber"`
	CBU            string  `json:"cbu"`
	AccountHolder  string  `json:"accountHolder"`
	CUIT           string  `json:"cuit"`
	PeriodFrom     string  `json:"periodFrom"` // ISO YYYY-MM-DD
	PeriodTo       string  `json:"periodTo"`
	OpeningBalance float64 `json:"openingBalance"`
	ClosingBalance float64 `json:"closingBalance"`
}

// TaxConsolidation is one row of the withholding-tax summary sub-table
// printed after the movements.
type TaxConsolidation struct {
	PeriodFrom  string  `json:"periodFrom"`
	PeriodTo    string  `json:"periodTo"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// Totals are the statement-level sums. Credits and Debits are recomputed
// from the parsed transactions, not copied from the printed total row;
// the printed values only feed the validation cross-check.
type Totals struct {
	Credits      float64 `json:"credits"`
	Debits       float64 `json:"debits"`
	FinalBalance float64 `json:"finalBalance"`
}

// ParsedStatement is the parser's sole output artifact and the
// analyzer's sole input.
type ParsedStatement struct {
	Metadata         StatementMetadata  `json:"metadata"`
	Transactions     []Transaction      `json:"transactions"`
	Totals           Totals             `json:"totals"`
	TaxConsolidation []TaxConsolidation `json:"taxConsolidation"`
}

// ValidationSeverity separates blocking errors from informational warnings.
type ValidationSeverity string

const (
	SeverityError   ValidationSeverity = "error"
	SeverityWarning ValidationSeverity = "warning"
)

// ValidationIssue describes one problem found while validating a parse.
type ValidationIssue struct {
	Code       string             `json:"code"`
	Severity   ValidationSeverity `json:"severity"`
	Message    string             `json:"message"`
	Suggestion string             `json:"suggestion,omitempty"`
	Field      string             `json:"field,omitempty"`
}

// ParseResult is the structured outcome of parsing one document.
// Failures are values, never exceptions crossing the parser boundary.
type ParseResult struct {
	Success          bool              `json:"success"`
	Statement        *ParsedStatement  `json:"statement,omitempty"`
	Bank             string            `json:"bank,omitempty"`
	Error            string            `json:"error,omitempty"`
	ValidationIssues []ValidationIssue `json:"validationIssues,omitempty"`
}
