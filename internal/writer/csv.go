// Package writer exports parsed statements to CSV and XLSX.
package writer

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/resumia/statement-analyzer/internal/models"
	"github.com/resumia/statement-analyzer/internal/numfmt"
)

// CSVWriter writes a parsed statement to CSV format.
type CSVWriter struct {
	IncludeMetadata bool
}

// WriteToFile writes the statement to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, statement *models.ParsedStatement) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating output file %q", path)
	}
	defer f.Close()

	return w.Write(f, statement)
}

// Write writes the statement in CSV format to the given writer. Metadata
// rows go first as commented lines when enabled, then the column header
// and one row per transaction, cancelled ones included.
func (w *CSVWriter) Write(out io.Writer, statement *models.ParsedStatement) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	if w.IncludeMetadata {
		meta := statement.Metadata
		if meta.Bank != "" {
			writer.Write([]string{"# Banco", meta.Bank})
		}
		if meta.AccountHolder != "" {
			writer.Write([]string{"# Titular", meta.AccountHolder})
		}
		if meta.AccountNumber != "" {
			writer.Write([]string{"# Cuenta", meta.AccountNumber})
		}
		if meta.CBU != "" {
			writer.Write([]string{"# CBU", meta.CBU})
		}
		if meta.PeriodFrom != "" && meta.PeriodTo != "" {
			writer.Write([]string{"# Período", meta.PeriodFrom + " a " + meta.PeriodTo})
		}
	}

	header := []string{"Fecha", "Tipo", "Descripción", "Comercio", "Crédito", "Débito", "Saldo", "Anulado"}
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "writing CSV header")
	}

	for _, txn := range statement.Transactions {
		cancelled := ""
		if txn.IsCancelled {
			cancelled = "sí"
		}
		row := []string{
			txn.Date,
			string(txn.Type),
			txn.Description,
			txn.Merchant,
			formatOptionalAmount(txn.Credit),
			formatOptionalAmount(txn.Debit),
			numfmt.FormatArgentineNumber(txn.Balance),
			cancelled,
		}
		if err := writer.Write(row); err != nil {
			return errors.Wrap(err, "writing CSV row")
		}
	}

	return writer.Error()
}

// formatOptionalAmount renders a nullable amount, empty when absent.
func formatOptionalAmount(amount *float64) string {
	if amount == nil {
		return ""
	}
	return numfmt.FormatArgentineNumber(*amount)
}
