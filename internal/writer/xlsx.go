package writer

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/resumia/statement-analyzer/internal/models"
)

// XLSXWriter writes a parsed statement, and optionally its analysis, to
// an Excel workbook: one sheet with the movements, one with the derived
// category and subscription summaries.
type XLSXWriter struct {
	Analysis *models.AnalysisResult
}

const (
	transactionsSheet = "Movimientos"
	analysisSheet     = "Análisis"
)

// WriteToFile writes the workbook to the given path.
func (w *XLSXWriter) WriteToFile(path string, statement *models.ParsedStatement) error {
	f, err := w.build(statement)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "saving workbook %q", path)
	}
	return nil
}

// Write writes the workbook to the given writer.
func (w *XLSXWriter) Write(out io.Writer, statement *models.ParsedStatement) error {
	f, err := w.build(statement)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(out); err != nil {
		return errors.Wrap(err, "writing workbook")
	}
	return nil
}

func (w *XLSXWriter) build(statement *models.ParsedStatement) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", transactionsSheet)

	if err := w.writeTransactions(f, statement); err != nil {
		f.Close()
		return nil, err
	}
	if w.Analysis != nil {
		if err := w.writeAnalysis(f, w.Analysis); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

func (w *XLSXWriter) writeTransactions(f *excelize.File, statement *models.ParsedStatement) error {
	headers := []string{"Fecha", "Tipo", "Descripción", "Comercio", "Crédito", "Débito", "Saldo", "Anulado"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(transactionsSheet, cell, header); err != nil {
			return errors.Wrap(err, "writing transaction header")
		}
	}

	for i, txn := range statement.Transactions {
		row := i + 2
		values := []interface{}{
			txn.Date,
			string(txn.Type),
			txn.Description,
			txn.Merchant,
			optionalAmountValue(txn.Credit),
			optionalAmountValue(txn.Debit),
			txn.Balance,
			txn.IsCancelled,
		}
		for col, value := range values {
			if value == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(transactionsSheet, cell, value); err != nil {
				return errors.Wrapf(err, "writing transaction row %d", row)
			}
		}
	}

	return nil
}

func (w *XLSXWriter) writeAnalysis(f *excelize.File, analysis *models.AnalysisResult) error {
	if _, err := f.NewSheet(analysisSheet); err != nil {
		return errors.Wrap(err, "creating analysis sheet")
	}

	row := 1
	setRow := func(values ...interface{}) error {
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(analysisSheet, cell, value); err != nil {
				return errors.Wrapf(err, "writing analysis row %d", row)
			}
		}
		row++
		return nil
	}

	if err := setRow("Categoría", "Total", "Porcentaje", "Movimientos"); err != nil {
		return err
	}
	for _, category := range analysis.Categories {
		if err := setRow(category.Name, category.Total,
			fmt.Sprintf("%.1f%%", category.Percentage), category.TransactionCount); err != nil {
			return err
		}
	}

	row++
	if err := setRow("Suscripción", "Monto", "Tipo"); err != nil {
		return err
	}
	for _, sub := range analysis.Subscriptions {
		if err := setRow(sub.Name, sub.Amount, string(sub.Type)); err != nil {
			return err
		}
	}

	row++
	if err := setRow("Impuestos totales", analysis.Taxes.TotalTaxes); err != nil {
		return err
	}
	if analysis.Taxes.CreditableAmount > 0 {
		if err := setRow("Crédito computable", analysis.Taxes.CreditableAmount); err != nil {
			return err
		}
	}

	return nil
}

// optionalAmountValue keeps absent amounts as empty cells rather than
// zeros.
func optionalAmountValue(amount *float64) interface{} {
	if amount == nil {
		return nil
	}
	return *amount
}
