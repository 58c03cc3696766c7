package parser

import (
	"math"
	"testing"

	"github.com/resumia/statement-analyzer/internal/extractor"
	"github.com/resumia/statement-analyzer/internal/models"
)

// Fragment positions below use the fallback column layout:
// desc < 280, origin [280,370), credit [370,470), debit [470,570),
// balance >= 570.
func frag(text string, x, y float64) extractor.TextItem {
	return extractor.TextItem{Text: text, X: x, Y: y, Width: 20, Height: 8}
}

func TestExtractPageTransactionsDebit(t *testing.T) {
	items := []extractor.TextItem{
		frag("01/12/25", 10, 100),
		frag("COMPRA DEBITO", 110, 100),
		frag("-502.685,77", 480, 100),
		frag("1.000.000,00", 600, 100),
		frag("RAPPI PEDIDOS", 110, 110),
	}

	txns := extractPageTransactions(items)
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}

	txn := txns[0]
	if txn.Date != "2025-12-01" {
		t.Errorf("date = %q, want 2025-12-01", txn.Date)
	}
	if txn.Debit == nil || math.Abs(*txn.Debit-(-502685.77)) > 0.001 {
		t.Errorf("debit = %v, want -502685.77", txn.Debit)
	}
	if txn.Credit != nil {
		t.Errorf("credit = %v, want nil", *txn.Credit)
	}
	if txn.Balance != 1000000.00 {
		t.Errorf("balance = %v, want 1000000.00", txn.Balance)
	}
	if txn.Description != "COMPRA DEBITO" {
		t.Errorf("description = %q", txn.Description)
	}
	if txn.RawText != "COMPRA DEBITO\nRAPPI PEDIDOS" {
		t.Errorf("rawText = %q", txn.RawText)
	}
	if txn.Type != models.TypePurchase {
		t.Errorf("type = %q, want purchase", txn.Type)
	}
	if txn.Merchant != "RAPPI PEDIDOS" {
		t.Errorf("merchant = %q, want RAPPI PEDIDOS", txn.Merchant)
	}
}

func TestExtractPageTransactionsCredit(t *testing.T) {
	items := []extractor.TextItem{
		frag("05/12/25", 10, 100),
		frag("TRANSFERENCIA DE TERCEROS", 110, 100),
		frag("150.000,00", 380, 100),
		frag("1.150.000,00", 600, 100),
		frag("MARIA GOMEZ", 110, 110),
	}

	txns := extractPageTransactions(items)
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}

	txn := txns[0]
	if txn.Credit == nil || *txn.Credit != 150000.00 {
		t.Errorf("credit = %v, want 150000.00", txn.Credit)
	}
	if txn.Debit != nil {
		t.Errorf("debit = %v, want nil", *txn.Debit)
	}
	if txn.Type != models.TypeTransferReceived {
		t.Errorf("type = %q", txn.Type)
	}
	if txn.Merchant != "MARIA GOMEZ" {
		t.Errorf("merchant = %q", txn.Merchant)
	}
}

func TestExtractPageTransactionsOriginCode(t *testing.T) {
	items := []extractor.TextItem{
		frag("01/12/25", 10, 100),
		frag("EXTRACCION CAJERO", 110, 100),
		frag("1234", 310, 100),
		frag("-50.000,00", 480, 100),
		frag("950.000,00", 600, 100),
	}

	txns := extractPageTransactions(items)
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}
	if txns[0].OriginCode != "1234" {
		t.Errorf("originCode = %q, want 1234", txns[0].OriginCode)
	}
}

// Non-numeric text in the origin column overflows into the description.
func TestExtractPageTransactionsOriginOverflow(t *testing.T) {
	items := []extractor.TextItem{
		frag("01/12/25", 10, 100),
		frag("COMPRA", 110, 100),
		frag("DEBITO", 310, 100),
		frag("-1.000,00", 480, 100),
	}

	txns := extractPageTransactions(items)
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}
	if txns[0].Description != "COMPRA DEBITO" {
		t.Errorf("description = %q, want COMPRA DEBITO", txns[0].Description)
	}
}

func TestExtractPageTransactionsSkipsTotalRows(t *testing.T) {
	items := []extractor.TextItem{
		frag("01/12/25", 10, 100),
		frag("Total", 110, 100),
		frag("$1.000,00", 380, 100),
		frag("05/12/25", 10, 120),
		frag("PAGO TARJETA VISA", 110, 120),
		frag("-20.000,00", 480, 120),
	}

	txns := extractPageTransactions(items)
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction after skipping Total, got %d", len(txns))
	}
	if txns[0].Type != models.TypeCardPayment {
		t.Errorf("type = %q", txns[0].Type)
	}
}

func TestContinuationStopsAtNextDate(t *testing.T) {
	items := []extractor.TextItem{
		frag("01/12/25", 10, 100),
		frag("COMPRA DEBITO", 110, 100),
		frag("-1.000,00", 480, 100),
		frag("COTO CICSA", 110, 110),
		frag("02/12/25", 10, 124),
		frag("COMPRA DEBITO", 110, 124),
		frag("-2.000,00", 480, 124),
		frag("JUMBO RETIRO", 110, 134),
	}

	txns := extractPageTransactions(items)
	if len(txns) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txns))
	}
	if txns[0].Merchant != "COTO CICSA" || txns[1].Merchant != "JUMBO RETIRO" {
		t.Errorf("merchants = %q, %q", txns[0].Merchant, txns[1].Merchant)
	}
}

// Amounts already found on the first line are never overridden by
// continuation lines; the first non-zero value wins.
func TestContinuationFirstAmountWins(t *testing.T) {
	items := []extractor.TextItem{
		frag("01/12/25", 10, 100),
		frag("COMPRA DEBITO", 110, 100),
		frag("-1.000,00", 480, 100),
		frag("COTO CICSA", 110, 110),
		frag("-9.999,99", 480, 110),
	}

	txns := extractPageTransactions(items)
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}
	if txns[0].Debit == nil || *txns[0].Debit != -1000.00 {
		t.Errorf("debit = %v, want -1000.00 (first value)", txns[0].Debit)
	}
}

// A continuation line can supply an amount the start line was missing.
func TestContinuationFillsMissingAmount(t *testing.T) {
	items := []extractor.TextItem{
		frag("01/12/25", 10, 100),
		frag("COMPRA DEBITO", 110, 100),
		frag("COTO CICSA", 110, 110),
		frag("-3.500,00", 480, 110),
		frag("996.500,00", 600, 110),
	}

	txns := extractPageTransactions(items)
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}
	if txns[0].Debit == nil || *txns[0].Debit != -3500.00 {
		t.Errorf("debit = %v, want -3500.00", txns[0].Debit)
	}
	if txns[0].Balance != 996500.00 {
		t.Errorf("balance = %v, want 996500.00", txns[0].Balance)
	}
}

// A parsed zero in an amount column means "absent", not a real zero.
func TestZeroAmountIsAbsent(t *testing.T) {
	items := []extractor.TextItem{
		frag("01/12/25", 10, 100),
		frag("COMPRA DEBITO", 110, 100),
		frag("0,00", 380, 100),
		frag("-1.000,00", 480, 100),
	}

	txns := extractPageTransactions(items)
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}
	if txns[0].Credit != nil {
		t.Errorf("credit = %v, want nil for explicit zero", *txns[0].Credit)
	}
	if txns[0].Debit == nil || *txns[0].Debit != -1000.00 {
		t.Errorf("debit = %v, want -1000.00", txns[0].Debit)
	}
}

func TestContinuationStopsAtConsolidado(t *testing.T) {
	items := []extractor.TextItem{
		frag("01/12/25", 10, 100),
		frag("COMPRA DEBITO", 110, 100),
		frag("-1.000,00", 480, 100),
		frag("COTO CICSA", 110, 110),
		frag("Consolidado de retención", 110, 120),
	}

	txns := extractPageTransactions(items)
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}
	if txns[0].RawText != "COMPRA DEBITO\nCOTO CICSA" {
		t.Errorf("rawText = %q", txns[0].RawText)
	}
}
