package models

// CategoryTransaction is the slim per-transaction view kept inside a
// category breakdown.
type CategoryTransaction struct {
	Date     string  `json:"date"`
	Merchant string  `json:"merchant"`
	Amount   float64 `json:"amount"` // absolute value
}

// CategorySummary aggregates purchase spending for one category.
type CategorySummary struct {
	Name             string                `json:"name"`
	Color            string                `json:"color"`
	Total            float64               `json:"total"`
	Percentage       float64               `json:"percentage"` // of total categorized spend
	TransactionCount int                   `json:"transactionCount"`
	Transactions     []CategoryTransaction `json:"transactions"`
}

// SubscriptionType tells how a subscription was detected.
type SubscriptionType string

const (
	SubscriptionKnownService SubscriptionType = "known_service"
	SubscriptionDebin        SubscriptionType = "debin"
)

// Subscription is a recurring charge detected in the statement.
type Subscription struct {
	Name         string           `json:"name"`
	Amount       float64          `json:"amount"`
	Frequency    string           `json:"frequency"` // "monthly" or "unknown"
	IsHighAmount bool             `json:"isHighAmount"`
	Type         SubscriptionType `json:"type"`
}

// TaxItem is one grouped tax line in the tax summary.
type TaxItem struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// TaxSummary aggregates bank taxes and perceptions.
type TaxSummary struct {
	TotalTaxes       float64   `json:"totalTaxes"`
	Items            []TaxItem `json:"items"`
	CreditableAmount float64   `json:"creditableAmount"`
}

// TransferSummary groups transfers with one counterparty.
type TransferSummary struct {
	Name          string        `json:"name"`
	CUIT          string        `json:"cuit,omitempty"`
	Bank          string        `json:"bank,omitempty"`
	TotalSent     float64       `json:"totalSent"`
	TotalReceived float64       `json:"totalReceived"`
	Net           float64       `json:"net"` // received - sent
	Transactions  []Transaction `json:"transactions"`
}

// AlertSeverity is the display severity of an alert.
type AlertSeverity string

const (
	AlertInfo    AlertSeverity = "info"
	AlertWarning AlertSeverity = "warning"
)

// Alert is an actionable observation derived from the analysis.
type Alert struct {
	Type        string        `json:"type"`
	Severity    AlertSeverity `json:"severity"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
}

// Period is the statement date range.
type Period struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// AnalysisResult is the full derived view of one statement. It is
// recomputed from scratch on every analysis call.
type AnalysisResult struct {
	Period         Period            `json:"period"`
	AccountHolder  string            `json:"accountHolder"`
	OpeningBalance float64           `json:"openingBalance"`
	ClosingBalance float64           `json:"closingBalance"`
	TotalCredits   float64           `json:"totalCredits"`
	TotalDebits    float64           `json:"totalDebits"` // absolute value
	Transactions   []Transaction     `json:"transactions"`
	Categories     []CategorySummary `json:"categories"`
	Subscriptions  []Subscription    `json:"subscriptions"`
	Taxes          TaxSummary        `json:"taxes"`
	Transfers      []TransferSummary `json:"transfers"`
	Alerts         []Alert           `json:"alerts"`
}
