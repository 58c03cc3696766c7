package models

// TransactionType classifies a statement movement by its operation label.
type TransactionType string

const (
	TypePurchase         TransactionType = "purchase"
	TypeTransferSent     TransactionType = "transfer_sent"
	TypeTransferReceived TransactionType = "transfer_received"
	TypeCardPayment      TransactionType = "card_payment"
	TypeATMWithdrawal    TransactionType = "atm_withdrawal"
	TypeTax              TransactionType = "tax"
	TypeTaxReversal      TransactionType = "tax_reversal"
	TypeRefund           TransactionType = "refund"
	TypeCashback         TransactionType = "cashback"
	TypeInterest         TransactionType = "interest"
	TypeEcheq            TransactionType = "echeq"
	TypeDebin            TransactionType = "debin"
	TypeFXPurchase       TransactionType = "fx_purchase"
	TypeUnknown          TransactionType = "unknown"
)

// TransactionMetadata holds secondary fields extracted from the
// free-form description block.
type TransactionMetadata struct {
	CardNumber   string  `json:"cardNumber,omitempty"`
	CUIT         string  `json:"cuit,omitempty"`
	CBU          string  `json:"cbu,omitempty"`
	Bank         string  `json:"bank,omitempty"`
	OperationRef string  `json:"operationRef,omitempty"`
	FXRate       float64 `json:"fxRate,omitempty"`
}

// Transaction is one movement reconstructed from the statement table.
// Credit and Debit are pointers so a missing amount (nil) can be told
// apart from an explicit zero; debits are stored negative. Exactly one
// of the two is expected to be set for a well-parsed transaction.
type Transaction struct {
	Date        string              `json:"date"` // ISO YYYY-MM-DD
	Type        TransactionType     `json:"type"`
	Description string              `json:"description"`
	Merchant    string              `json:"merchant"`
	OriginCode  string              `json:"originCode,omitempty"`
	Credit      *float64            `json:"credit"`
	Debit       *float64            `json:"debit"`
	Balance     float64             `json:"balance"`
	RawText     string              `json:"rawText"`
	Metadata    TransactionMetadata `json:"metadata"`
	IsCancelled bool                `json:"isCancelled,omitempty"`
	CancelledBy *int                `json:"cancelledBy,omitempty"` // index of the pairing transaction, set iff IsCancelled
}

// Amount returns the signed amount of the transaction: the debit if
// present, otherwise the credit, otherwise 0.
func (t *Transaction) Amount() float64 {
	if t.Debit != nil {
		return *t.Debit
	}
	if t.Credit != nil {
		return *t.Credit
	}
	return 0
}

// Float returns a pointer to v. Convenience for building transactions
// with optional amounts.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v. Used for cancellation pair indices, where
// 0 is a valid index and must survive serialization.
func Int(v int) *int {
	return &v
}
