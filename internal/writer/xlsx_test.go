package writer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/resumia/statement-analyzer/internal/models"
)

func TestXLSXWriterTransactionsSheet(t *testing.T) {
	var buf bytes.Buffer
	w := &XLSXWriter{}
	if err := w.Write(&buf, sampleStatement()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reading workbook back: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Movimientos")
	if err != nil {
		t.Fatalf("reading sheet: %v", err)
	}
	// Header plus three transactions.
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[0][0] != "Fecha" || rows[0][3] != "Comercio" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][3] != "COTO CICSA" {
		t.Errorf("first row merchant = %q", rows[1][3])
	}

	// Absent credit stays an empty cell, not a zero.
	credit, err := f.GetCellValue("Movimientos", "E2")
	if err != nil {
		t.Fatal(err)
	}
	if credit != "" {
		t.Errorf("absent credit = %q, want empty", credit)
	}
}

func TestXLSXWriterAnalysisSheet(t *testing.T) {
	analysis := &models.AnalysisResult{
		Categories: []models.CategorySummary{
			{Name: "Supermercado", Total: 40000, Percentage: 40, TransactionCount: 2},
		},
		Subscriptions: []models.Subscription{
			{Name: "NETFLIX", Amount: 8000, Type: models.SubscriptionKnownService},
		},
		Taxes: models.TaxSummary{TotalTaxes: 4800, CreditableAmount: 400},
	}

	var buf bytes.Buffer
	w := &XLSXWriter{Analysis: analysis}
	if err := w.Write(&buf, sampleStatement()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reading workbook back: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Análisis")
	if err != nil {
		t.Fatalf("reading analysis sheet: %v", err)
	}
	if len(rows) == 0 || rows[0][0] != "Categoría" {
		t.Fatalf("rows = %v", rows)
	}

	flat := ""
	for _, row := range rows {
		for _, cell := range row {
			flat += cell + "|"
		}
	}
	for _, want := range []string{"Supermercado", "NETFLIX", "Impuestos totales", "Crédito computable"} {
		if !strings.Contains(flat, want) {
			t.Errorf("analysis sheet missing %q", want)
		}
	}
}

func TestXLSXWriterNoAnalysisSheet(t *testing.T) {
	var buf bytes.Buffer
	w := &XLSXWriter{}
	if err := w.Write(&buf, sampleStatement()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex("Análisis"); idx != -1 {
		t.Error("analysis sheet must not exist without analysis data")
	}
}
