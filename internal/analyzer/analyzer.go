// Package analyzer derives spending insights from a parsed statement:
// category breakdown, subscriptions, tax burden, transfer counterparties
// and alerts. Everything is recomputed from scratch on each call; the
// analyzer holds no state.
package analyzer

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/resumia/statement-analyzer/internal/merchants"
	"github.com/resumia/statement-analyzer/internal/models"
	"github.com/resumia/statement-analyzer/internal/numfmt"
)

// highAmountThreshold flags subscriptions and DEBINs above this monthly
// amount, in pesos.
const highAmountThreshold = 50000

// Analyze computes the full derived view of one statement. Cancelled
// transaction pairs are excluded from every aggregate, but the complete
// transaction list still travels in the result for display.
func Analyze(statement *models.ParsedStatement) *models.AnalysisResult {
	var active []models.Transaction
	for _, t := range statement.Transactions {
		if !t.IsCancelled {
			active = append(active, t)
		}
	}

	categories := calculateCategories(active)
	subscriptions := detectSubscriptions(active)
	taxes := summarizeTaxes(active, statement.TaxConsolidation)
	transfers := groupTransfers(active)
	alerts := generateAlerts(active, subscriptions, taxes, categories)

	return &models.AnalysisResult{
		Period: models.Period{
			From: statement.Metadata.PeriodFrom,
			To:   statement.Metadata.PeriodTo,
		},
		AccountHolder:  statement.Metadata.AccountHolder,
		OpeningBalance: statement.Metadata.OpeningBalance,
		ClosingBalance: statement.Metadata.ClosingBalance,
		TotalCredits:   statement.Totals.Credits,
		TotalDebits:    math.Abs(statement.Totals.Debits),
		Transactions:   statement.Transactions,
		Categories:     categories,
		Subscriptions:  subscriptions,
		Taxes:          taxes,
		Transfers:      transfers,
		Alerts:         alerts,
	}
}

type categoryAccumulator struct {
	name         string
	color        string
	total        float64
	count        int
	transactions []models.CategoryTransaction
}

// calculateCategories buckets purchase spending by merchant category.
// Only purchases with a real negative debit count as spending; card
// payments, transfers and taxes have their own summaries.
func calculateCategories(transactions []models.Transaction) []models.CategorySummary {
	// The Otros bucket goes first so it exists even when only
	// uncategorized spend shows up.
	accumulators := []*categoryAccumulator{
		{name: merchants.OtherCategory, color: merchants.OtherColor},
	}
	index := map[string]*categoryAccumulator{
		merchants.OtherCategory: accumulators[0],
	}

	for _, t := range transactions {
		if t.Type != models.TypePurchase || t.Debit == nil || *t.Debit >= 0 {
			continue
		}

		amount := math.Abs(*t.Debit)
		name := merchants.OtherCategory
		color := merchants.OtherColor
		if category := merchants.Categorize(t.Merchant); category != nil {
			name = category.Name
			color = category.Color
		}

		acc := index[name]
		if acc == nil {
			acc = &categoryAccumulator{name: name, color: color}
			accumulators = append(accumulators, acc)
			index[name] = acc
		}
		acc.total += amount
		acc.count++
		acc.transactions = append(acc.transactions, models.CategoryTransaction{
			Date:     t.Date,
			Merchant: t.Merchant,
			Amount:   amount,
		})
	}

	var totalSpending float64
	for _, acc := range accumulators {
		totalSpending += acc.total
	}

	var categories []models.CategorySummary
	for _, acc := range accumulators {
		if acc.total <= 0 {
			continue
		}

		var percentage float64
		if totalSpending > 0 {
			percentage = acc.total / totalSpending * 100
		}

		sort.SliceStable(acc.transactions, func(i, j int) bool {
			return acc.transactions[i].Amount > acc.transactions[j].Amount
		})

		categories = append(categories, models.CategorySummary{
			Name:             acc.name,
			Color:            acc.color,
			Total:            acc.total,
			Percentage:       percentage,
			TransactionCount: acc.count,
			Transactions:     acc.transactions,
		})
	}

	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Total > categories[j].Total
	})

	return categories
}

// detectSubscriptions finds recurring charges: DEBIN debits and debits
// against known subscription services. Deduplicated by name, so a
// service billed twice in one period shows up once.
func detectSubscriptions(transactions []models.Transaction) []models.Subscription {
	var subscriptions []models.Subscription
	seen := map[string]bool{}

	for _, t := range transactions {
		if t.Debit == nil || *t.Debit >= 0 {
			continue
		}

		amount := math.Abs(*t.Debit)
		isSubscription := false
		subscriptionType := models.SubscriptionKnownService
		name := t.Merchant

		if t.Type == models.TypeDebin {
			isSubscription = true
			subscriptionType = models.SubscriptionDebin
			if name == "" {
				name = "Débito Automático DEBIN"
			}
		}

		if merchants.IsKnownSubscription(t.Merchant) {
			isSubscription = true
			subscriptionType = models.SubscriptionKnownService
		}

		key := strings.ToUpper(name)
		if !isSubscription || seen[key] {
			continue
		}
		seen[key] = true

		subscriptions = append(subscriptions, models.Subscription{
			Name:         name,
			Amount:       amount,
			Frequency:    "monthly",
			IsHighAmount: amount > highAmountThreshold,
			Type:         subscriptionType,
		})
	}

	sort.SliceStable(subscriptions, func(i, j int) bool {
		return subscriptions[i].Amount > subscriptions[j].Amount
	})

	return subscriptions
}

// summarizeTaxes totals the tax debits and pulls the creditable amount
// out of the withholding consolidation table.
func summarizeTaxes(transactions []models.Transaction, consolidation []models.TaxConsolidation) models.TaxSummary {
	summary := models.TaxSummary{}

	for _, t := range transactions {
		if t.Type != models.TypeTax || t.IsCancelled || t.Debit == nil {
			continue
		}

		amount := math.Abs(*t.Debit)
		summary.TotalTaxes += amount

		grouped := false
		for i := range summary.Items {
			if strings.Contains(summary.Items[i].Description, t.Merchant) {
				summary.Items[i].Amount += amount
				grouped = true
				break
			}
		}
		if !grouped {
			summary.Items = append(summary.Items, models.TaxItem{
				Description: t.Merchant,
				Amount:      amount,
			})
		}
	}

	for _, entry := range consolidation {
		if strings.Contains(entry.Description, "CREDITO COMPUTABLE") {
			summary.CreditableAmount = entry.Amount
		}
	}

	return summary
}

// groupTransfers aggregates transfers per counterparty. The CUIT is the
// grouping key when present; otherwise the normalized name. The longest
// merchant string seen for a key becomes the display name.
func groupTransfers(transactions []models.Transaction) []models.TransferSummary {
	var order []string
	groups := map[string]*models.TransferSummary{}

	for _, t := range transactions {
		if t.Type != models.TypeTransferSent && t.Type != models.TypeTransferReceived {
			continue
		}

		key := t.Metadata.CUIT
		if key == "" {
			key = collapseWhitespace(strings.ToUpper(t.Merchant))
		}

		group := groups[key]
		if group == nil {
			group = &models.TransferSummary{
				Name: t.Merchant,
				CUIT: t.Metadata.CUIT,
				Bank: t.Metadata.Bank,
			}
			groups[key] = group
			order = append(order, key)
		}

		if t.Type == models.TypeTransferSent && t.Debit != nil {
			group.TotalSent += math.Abs(*t.Debit)
		} else if t.Type == models.TypeTransferReceived && t.Credit != nil {
			group.TotalReceived += *t.Credit
		}
		group.Net = group.TotalReceived - group.TotalSent
		group.Transactions = append(group.Transactions, t)

		if len(t.Merchant) > len(group.Name) {
			group.Name = t.Merchant
		}
	}

	var transfers []models.TransferSummary
	for _, key := range order {
		group := groups[key]
		if group.TotalSent > 0 || group.TotalReceived > 0 {
			transfers = append(transfers, *group)
		}
	}

	sort.SliceStable(transfers, func(i, j int) bool {
		return math.Abs(transfers[i].Net) > math.Abs(transfers[j].Net)
	})

	return transfers
}

// generateAlerts produces the fixed set of observations, always in the
// same order: high subscriptions, card payment note, tax burden, top
// category concentration.
func generateAlerts(
	transactions []models.Transaction,
	subscriptions []models.Subscription,
	taxes models.TaxSummary,
	categories []models.CategorySummary,
) []models.Alert {
	var alerts []models.Alert

	highCount := 0
	for _, s := range subscriptions {
		if s.IsHighAmount {
			highCount++
		}
	}
	if highCount > 0 {
		alerts = append(alerts, models.Alert{
			Type:     "subscription",
			Severity: models.AlertWarning,
			Title:    "Suscripciones de monto alto",
			Description: fmt.Sprintf("Tenés %d suscripción(es) de más de %s/mes",
				highCount, numfmt.FormatArgentineCurrency(highAmountThreshold)),
		})
	}

	var cardPayments float64
	cardPaymentCount := 0
	for _, t := range transactions {
		if t.Type == models.TypeCardPayment {
			cardPaymentCount++
			if t.Debit != nil {
				cardPayments += math.Abs(*t.Debit)
			}
		}
	}
	if cardPaymentCount > 0 {
		alerts = append(alerts, models.Alert{
			Type:     "credit_card_note",
			Severity: models.AlertInfo,
			Title:    "Pagos de tarjeta de crédito",
			Description: fmt.Sprintf("Pagaste %s en tarjeta. Los gastos detallados de la tarjeta no aparecen en este extracto.",
				numfmt.FormatArgentineCurrency(cardPayments)),
		})
	}

	if taxes.TotalTaxes > 30000 {
		alerts = append(alerts, models.Alert{
			Type:     "high_tax",
			Severity: models.AlertInfo,
			Title:    "Impuestos y percepciones",
			Description: fmt.Sprintf("Este mes pagaste %s en impuestos bancarios.",
				numfmt.FormatArgentineCurrency(taxes.TotalTaxes)),
		})
	}

	if len(categories) > 0 && categories[0].Percentage > 40 {
		top := categories[0]
		alerts = append(alerts, models.Alert{
			Type:        "high_amount",
			Severity:    models.AlertInfo,
			Title:       fmt.Sprintf("%s es tu mayor gasto", top.Name),
			Description: fmt.Sprintf("Representa el %.0f%% de tus compras este período.", top.Percentage),
		})
	}

	return alerts
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
