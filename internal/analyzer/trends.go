package analyzer

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/resumia/statement-analyzer/internal/models"
)

// StoredAnalysis pairs an analyzed statement with the period it covers.
// Callers keep one per uploaded statement, sorted newest first.
type StoredAnalysis struct {
	PeriodTo string                 `json:"periodTo"` // ISO date
	Analysis *models.AnalysisResult `json:"analysis"`
}

// TrendDirection is the movement of one category between periods.
type TrendDirection string

const (
	TrendUp   TrendDirection = "up"
	TrendDown TrendDirection = "down"
	TrendSame TrendDirection = "same"
)

// TrendItem compares one category's spend against the previous period.
type TrendItem struct {
	Category       string         `json:"category"`
	Color          string         `json:"color"`
	CurrentAmount  float64        `json:"currentAmount"`
	PreviousAmount float64        `json:"previousAmount"`
	PercentChange  float64        `json:"percentChange"`
	Direction      TrendDirection `json:"direction"`
}

// MonthlyData is one point of the credit/debit series, oldest first.
type MonthlyData struct {
	Period  string  `json:"period"`
	Credits float64 `json:"credits"`
	Debits  float64 `json:"debits"`
}

// ComparisonMeta names the two periods a trend comparison covers.
type ComparisonMeta struct {
	CurrentPeriod  string `json:"currentPeriod"`
	PreviousPeriod string `json:"previousPeriod"`
}

// TrendsSummary is the cross-statement view built from two or more
// analyzed statements.
type TrendsSummary struct {
	CategoryTrends     []TrendItem    `json:"categoryTrends"`
	TotalSubscriptions float64        `json:"totalSubscriptions"`
	SubscriptionMonths int            `json:"subscriptionMonths"`
	MonthlyData        []MonthlyData  `json:"monthlyData"`
	ComparisonMeta     ComparisonMeta `json:"comparisonMeta"`
}

// directionThreshold is the percent change below which a category counts
// as flat.
const directionThreshold = 5.0

// CalculateTrends compares the newest statement against the previous one
// and builds the monthly series across all of them. Statements must be
// sorted newest first. Returns nil with fewer than two statements, since
// there is nothing to compare.
func CalculateTrends(statements []StoredAnalysis) *TrendsSummary {
	if len(statements) < 2 {
		return nil
	}

	current := statements[0]
	previous := statements[1]

	categoryTrends := calculateCategoryTrends(
		current.Analysis.Categories,
		previous.Analysis.Categories,
	)

	var totalSubscriptions float64
	for _, statement := range statements {
		for _, sub := range statement.Analysis.Subscriptions {
			totalSubscriptions += sub.Amount
		}
	}

	// Oldest first for charting.
	monthlyData := make([]MonthlyData, 0, len(statements))
	for i := len(statements) - 1; i >= 0; i-- {
		monthlyData = append(monthlyData, MonthlyData{
			Period:  formatPeriodShort(statements[i].PeriodTo),
			Credits: statements[i].Analysis.TotalCredits,
			Debits:  statements[i].Analysis.TotalDebits,
		})
	}

	return &TrendsSummary{
		CategoryTrends:     categoryTrends,
		TotalSubscriptions: totalSubscriptions,
		SubscriptionMonths: len(statements),
		MonthlyData:        monthlyData,
		ComparisonMeta: ComparisonMeta{
			CurrentPeriod:  formatPeriodShort(current.PeriodTo),
			PreviousPeriod: formatPeriodShort(previous.PeriodTo),
		},
	}
}

// calculateCategoryTrends keeps the three most significant movements. A
// category absent last period counts as a +100% increase.
func calculateCategoryTrends(current, previous []models.CategorySummary) []TrendItem {
	previousByName := map[string]models.CategorySummary{}
	for _, category := range previous {
		previousByName[category.Name] = category
	}

	var trends []TrendItem
	for _, category := range current {
		previousAmount := previousByName[category.Name].Total
		currentAmount := category.Total
		if currentAmount == 0 && previousAmount == 0 {
			continue
		}

		percentChange := 0.0
		direction := TrendSame
		if previousAmount == 0 && currentAmount > 0 {
			percentChange = 100
			direction = TrendUp
		} else if previousAmount > 0 {
			percentChange = (currentAmount - previousAmount) / previousAmount * 100
			if percentChange > directionThreshold {
				direction = TrendUp
			} else if percentChange < -directionThreshold {
				direction = TrendDown
			}
		}

		trends = append(trends, TrendItem{
			Category:       category.Name,
			Color:          category.Color,
			CurrentAmount:  currentAmount,
			PreviousAmount: previousAmount,
			PercentChange:  percentChange,
			Direction:      direction,
		})
	}

	sort.SliceStable(trends, func(i, j int) bool {
		return math.Abs(trends[i].PercentChange) > math.Abs(trends[j].PercentChange)
	})

	if len(trends) > 3 {
		trends = trends[:3]
	}
	return trends
}

var shortMonths = []string{
	"Ene", "Feb", "Mar", "Abr", "May", "Jun",
	"Jul", "Ago", "Sep", "Oct", "Nov", "Dic",
}

// formatPeriodShort renders an ISO date as its Spanish month
// abbreviation, e.g. "2025-12-30" -> "Dic".
func formatPeriodShort(periodTo string) string {
	parts := strings.Split(periodTo, "-")
	if len(parts) < 2 {
		return periodTo
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return periodTo
	}
	return shortMonths[month-1]
}

// GetDateRangeText renders the covered range as "Oct 2025 - Ene 2026".
// Statements are sorted newest first, so the last one is the oldest.
func GetDateRangeText(statements []StoredAnalysis) string {
	if len(statements) == 0 {
		return ""
	}

	oldest := statements[len(statements)-1]
	newest := statements[0]
	return formatMonthYear(oldest.PeriodTo) + " - " + formatMonthYear(newest.PeriodTo)
}

func formatMonthYear(isoDate string) string {
	parts := strings.Split(isoDate, "-")
	if len(parts) < 2 {
		return isoDate
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return isoDate
	}
	return shortMonths[month-1] + " " + parts[0]
}
