package projections

import (
	"context"
	"sort"
	"time"

	"gymdesk/internal/domain/paymentlog"
)

// MonthOption is one entry of the month dropdown with its collected total.
type MonthOption struct {
	Key   string // YYYY-MM
	Total int
}

// PaymentRow is one settled payment in the history view.
type PaymentRow struct {
	ID          string
	StudentID   string
	StudentName string
	Amount      int
	Date        time.Time
}

// GetPaymentHistoryQuery carries query parameters.
type GetPaymentHistoryQuery struct {
	// MonthKey selects the month to detail; empty means the current month.
	MonthKey string
}

// GetPaymentHistoryResult carries the query result.
type GetPaymentHistoryResult struct {
	MonthKey     string
	Total        int
	Count        int
	Payments     []PaymentRow
	MonthOptions []MonthOption // months present in the log, newest first
}

// GetPaymentHistoryDeps holds dependencies for GetPaymentHistory.
type GetPaymentHistoryDeps struct {
	PaymentLogStore PaymentLogStore
	Now             func() time.Time
}

// QueryGetPaymentHistory retrieves the settled payments of one month plus
// the totals backing the month dropdown.
// POST: Payments are newest-first within the selected month; a month with
// no payments yields Total 0 and an empty row list; MonthOptions holds one
// entry per distinct month key found in the log, newest first
func QueryGetPaymentHistory(ctx context.Context, query GetPaymentHistoryQuery, deps GetPaymentHistoryDeps) (GetPaymentHistoryResult, error) {
	monthKey := query.MonthKey
	if monthKey == "" {
		monthKey = paymentlog.MonthKey(deps.Now())
	}

	logs, err := deps.PaymentLogStore.List(ctx)
	if err != nil {
		return GetPaymentHistoryResult{}, err
	}

	totals := make(map[string]int)
	result := GetPaymentHistoryResult{MonthKey: monthKey}
	for _, log := range logs {
		totals[log.MonthKey] += log.Amount
		if log.MonthKey != monthKey {
			continue
		}
		result.Total += log.Amount
		result.Count++
		result.Payments = append(result.Payments, PaymentRow{
			ID:          log.ID,
			StudentID:   log.StudentID,
			StudentName: log.StudentName,
			Amount:      log.Amount,
			Date:        log.Date,
		})
	}

	keys := make([]string, 0, len(totals))
	for key := range totals {
		keys = append(keys, key)
	}
	// YYYY-MM keys sort lexically, so reverse order is newest first.
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	for _, key := range keys {
		result.MonthOptions = append(result.MonthOptions, MonthOption{Key: key, Total: totals[key]})
	}

	return result, nil
}
