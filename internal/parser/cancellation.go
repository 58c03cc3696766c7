package parser

import (
	"math"
	"strings"

	"github.com/resumia/statement-analyzer/internal/models"
)

// amountEpsilon is the slack when checking that two amounts net to zero.
const amountEpsilon = 0.01

// markCancelledPairs finds transaction pairs that cancel each other out
// and flags both. A pair needs the same date, amounts that sum to zero
// and one of the known reversal patterns. Each transaction joins at most
// one pair; the first match forward wins. The pass mutates the slice it
// exclusively owns, before any reader sees the transactions.
func markCancelledPairs(transactions []models.Transaction) {
	for i := range transactions {
		t1 := &transactions[i]
		if t1.IsCancelled {
			continue
		}

		for j := i + 1; j < len(transactions); j++ {
			t2 := &transactions[j]
			if t2.IsCancelled {
				continue
			}
			if t1.Date != t2.Date {
				continue
			}
			if math.Abs(t1.Amount()+t2.Amount()) >= amountEpsilon {
				continue
			}
			if !isCancellationPair(t1, t2) {
				continue
			}

			t1.IsCancelled = true
			t1.CancelledBy = models.Int(j)
			t2.IsCancelled = true
			t2.CancelledBy = models.Int(i)
			break
		}
	}
}

// isCancellationPair checks the known reversal patterns, in either order:
// UBER SHOPPER purchases refunded the same day, tax perceptions paired
// with their reversal, and DLOCAL charges refunded the same day.
func isCancellationPair(t1, t2 *models.Transaction) bool {
	if strings.Contains(t1.Merchant, "UBER SHOPPER") && t2.Type == models.TypeRefund {
		return true
	}
	if strings.Contains(t2.Merchant, "UBER SHOPPER") && t1.Type == models.TypeRefund {
		return true
	}
	if t1.Type == models.TypeTax && t2.Type == models.TypeTaxReversal {
		return true
	}
	if t2.Type == models.TypeTax && t1.Type == models.TypeTaxReversal {
		return true
	}
	if strings.Contains(t1.Merchant, "DLOCAL") && t2.Type == models.TypeRefund {
		return true
	}
	if strings.Contains(t2.Merchant, "DLOCAL") && t1.Type == models.TypeRefund {
		return true
	}
	return false
}
