package parser

import (
	"regexp"
	"strings"

	"github.com/resumia/statement-analyzer/internal/extractor"
	"github.com/resumia/statement-analyzer/internal/models"
	"github.com/resumia/statement-analyzer/internal/numfmt"
)

// Column boundary buffers. Fragment X positions drift a few units
// between export renders, so each boundary is compared with slack.
const (
	// blockLineTolerance is tighter than the extractor default so
	// adjacent but distinct table rows do not merge into one line.
	blockLineTolerance = 3.0

	originBuffer          = 20.0
	amountBuffer          = 30.0
	continuationDescLimit = 50.0
)

var (
	txnDatePattern   = regexp.MustCompile(`^\d{2}/\d{2}/\d{2}$`)
	originCodeDigits = regexp.MustCompile(`^\d{4}$`)
)

// extractPageTransactions rebuilds all transaction blocks on one page.
// Lines are regrouped with the tighter block tolerance and column
// boundaries are located per page, since continuation pages omit the
// header row.
func extractPageTransactions(items []extractor.TextItem) []models.Transaction {
	lines := extractor.GroupLines(items, blockLineTolerance)
	columns := locateColumns(lines)

	var transactions []models.Transaction
	i := 0
	for i < len(lines) {
		line := lines[i]
		if len(line) > 0 && txnDatePattern.MatchString(line[0].Text) {
			txn, next := parseTransactionBlock(lines, i, columns)
			if txn != nil {
				transactions = append(transactions, *txn)
				i = next
				continue
			}
		}
		i++
	}

	return transactions
}

// parseTransactionBlock parses one transaction starting at lines[start],
// consuming any trailing continuation lines. Returns the transaction and
// the index of the first unconsumed line, or (nil, start) for footer
// lines that merely look like transaction starts.
func parseTransactionBlock(lines [][]extractor.TextItem, start int, columns ColumnLayout) (*models.Transaction, int) {
	firstLine := lines[start]
	date := firstLine[0].Text

	// "Total" rows are page footers, not transactions.
	if strings.Contains(extractor.LineString(firstLine), "Total") {
		return nil, start
	}

	var description string
	var originCode string
	var credit, debit *float64
	var balance float64

	for _, item := range firstLine[1:] {
		switch {
		case item.X < columns.OriginX-originBuffer:
			if description != "" {
				description += " "
			}
			description += item.Text
		case item.X < columns.CreditX-amountBuffer:
			// Origin column: a 4-digit code, anything else is
			// description text that overflowed.
			if originCodeDigits.MatchString(item.Text) {
				originCode = item.Text
			} else {
				description += " " + item.Text
			}
		case item.X < columns.DebitX-amountBuffer:
			if parsed := numfmt.ParseArgentineNumber(item.Text); parsed != 0 {
				credit = models.Float(parsed)
			}
		case item.X < columns.BalanceX-amountBuffer:
			if parsed := numfmt.ParseArgentineNumber(item.Text); parsed != 0 {
				debit = models.Float(parsed)
			}
		default:
			if parsed := numfmt.ParseArgentineNumber(item.Text); parsed != 0 {
				balance = parsed
			}
		}
	}

	// Greedily consume continuation lines until the next dated line or a
	// totals/consolidation footer.
	next := start + 1
	var extraDescLines []string

	for next < len(lines) {
		line := lines[next]
		if len(line) > 0 && txnDatePattern.MatchString(line[0].Text) {
			break
		}

		lineText := extractor.LineString(line)
		if strings.Contains(lineText, "Total") || strings.Contains(lineText, "Consolidado") {
			break
		}

		var descParts []string
		for _, item := range line {
			if item.X < columns.OriginX+continuationDescLimit {
				descParts = append(descParts, item.Text)
			}
		}

		if len(descParts) > 0 {
			extraDescLines = append(extraDescLines, strings.Join(descParts, " "))

			// Amounts on continuation lines fill gaps only; a value
			// already found on an earlier line is never overridden.
			for _, item := range line {
				switch {
				case item.X >= columns.OriginX-originBuffer && item.X < columns.CreditX-amountBuffer:
					if originCodeDigits.MatchString(item.Text) {
						originCode = item.Text
					}
				case item.X >= columns.CreditX-amountBuffer && item.X < columns.DebitX-amountBuffer:
					if parsed := numfmt.ParseArgentineNumber(item.Text); parsed != 0 && credit == nil {
						credit = models.Float(parsed)
					}
				case item.X >= columns.DebitX-amountBuffer && item.X < columns.BalanceX-amountBuffer:
					if parsed := numfmt.ParseArgentineNumber(item.Text); parsed != 0 && debit == nil {
						debit = models.Float(parsed)
					}
				case item.X >= columns.BalanceX-amountBuffer:
					if parsed := numfmt.ParseArgentineNumber(item.Text); parsed != 0 && balance == 0 {
						balance = parsed
					}
				}
			}
		}

		next++
	}

	rawText := strings.Join(append([]string{description}, extraDescLines...), "\n")
	cls := Classify(rawText, credit, debit)

	txn := &models.Transaction{
		Date:        numfmt.ParseDateDDMMYY(date),
		Type:        cls.Type,
		Description: strings.TrimSpace(description),
		Merchant:    cls.Merchant,
		OriginCode:  originCode,
		Credit:      credit,
		Debit:       debit,
		Balance:     balance,
		RawText:     rawText,
		Metadata:    cls.Metadata,
	}

	return txn, next
}
