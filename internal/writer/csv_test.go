package writer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/resumia/statement-analyzer/internal/models"
)

func sampleStatement() *models.ParsedStatement {
	return &models.ParsedStatement{
		Metadata: models.StatementMetadata{
			Bank:          "Banco Galicia",
			AccountHolder: "JUAN MARTIN RIGADA",
			AccountNumber: "4021576-4 077-8",
			CBU:           "0070077430004021576486",
			PeriodFrom:    "2025-12-26",
			PeriodTo:      "2026-01-30",
		},
		Transactions: []models.Transaction{
			{Date: "2025-12-27", Type: models.TypePurchase, Description: "COMPRA DEBITO",
				Merchant: "COTO CICSA", Debit: models.Float(-25999.50), Balance: 123456.78},
			{Date: "2025-12-28", Type: models.TypeTransferReceived, Description: "TRANSFERENCIA DE TERCEROS",
				Merchant: "MARIA GOMEZ", Credit: models.Float(250000), Balance: 373456.28},
			{Date: "2025-12-29", Type: models.TypeTax, Description: "PERCEPCION RG 5617/24",
				Merchant: "Percepción RG 5617/24", Debit: models.Float(-1000), IsCancelled: true},
		},
	}
}

func TestCSVWriterWrite(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeMetadata: true}
	if err := w.Write(&buf, sampleStatement()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "# Banco,Banco Galicia") {
		t.Error("expected bank metadata row")
	}
	if !strings.Contains(output, "# Período,2025-12-26 a 2026-01-30") {
		t.Error("expected period metadata row")
	}
	if !strings.Contains(output, "Fecha,Tipo,Descripción,Comercio,Crédito,Débito,Saldo,Anulado") {
		t.Error("expected column headers")
	}
	if !strings.Contains(output, "COTO CICSA") {
		t.Error("expected merchant in row")
	}
	// Amounts render in Argentine format, nulls stay empty.
	if !strings.Contains(output, "-25.999,50") {
		t.Error("expected formatted debit")
	}
	if !strings.Contains(output, "250.000,00") {
		t.Error("expected formatted credit")
	}
	if !strings.Contains(output, "sí") {
		t.Error("expected cancelled marker")
	}

	lines := strings.Split(strings.TrimSpace(output), "\n")
	// 5 metadata + 1 header + 3 transactions
	if len(lines) != 9 {
		t.Errorf("expected 9 lines, got %d", len(lines))
	}
}

func TestCSVWriterWriteNoMetadata(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeMetadata: false}
	if err := w.Write(&buf, sampleStatement()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	if strings.Contains(output, "# Banco") {
		t.Error("should not have metadata rows when disabled")
	}
	if !strings.Contains(output, "Fecha,Tipo,Descripción") {
		t.Error("expected column headers even without metadata")
	}
}

func TestFormatOptionalAmount(t *testing.T) {
	tests := []struct {
		input    *float64
		expected string
	}{
		{nil, ""},
		{models.Float(25999.5), "25.999,50"},
		{models.Float(-1000), "-1.000,00"},
		{models.Float(0), "0,00"},
	}

	for _, tt := range tests {
		if got := formatOptionalAmount(tt.input); got != tt.expected {
			t.Errorf("formatOptionalAmount(%v): got %q, want %q", tt.input, got, tt.expected)
		}
	}
}
