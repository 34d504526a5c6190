package model

import "time"

// DateLayout is the key format for daily balance maps.
const DateLayout = "2006-01-02"

// DateKey normalizes a time to its calendar-day key.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// EnvelopeAllocation is one (envelope, amount) pair of a paycheck allocation.
// Allocations are kept as an ordered slice so rounding rebalance always folds
// into the same entry.
type EnvelopeAllocation struct {
	EnvelopeID string  `json:"envelope_id"`
	Amount     float64 `json:"amount"`
}

// PaycheckAllocation is the result of allocating one net paycheck.
type PaycheckAllocation struct {
	ID              string               `json:"id,omitempty"`
	Date            time.Time            `json:"date"`
	GrossAmount     float64              `json:"gross_amount"`
	NetAmount       float64              `json:"net_amount"`
	Allocations     []EnvelopeAllocation `json:"allocations"`
	RemainingAmount float64              `json:"remaining_amount"`
}

// Amount returns the amount allocated to the given envelope, 0 if none.
func (a PaycheckAllocation) Amount(envelopeID string) float64 {
	for _, ea := range a.Allocations {
		if ea.EnvelopeID == envelopeID {
			return ea.Amount
		}
	}
	return 0
}

// Total sums every envelope allocation.
func (a PaycheckAllocation) Total() float64 {
	var total float64
	for _, ea := range a.Allocations {
		total += ea.Amount
	}
	return total
}

// TransactionType tags forecast ledger entries.
type TransactionType string

const (
	TxPaycheck    TransactionType = "paycheck"
	TxBillPayment TransactionType = "bill_payment"
)

// ForecastTransaction is one simulated ledger entry. Amounts are signed:
// credits positive, debits negative.
type ForecastTransaction struct {
	Date        time.Time       `json:"date"`
	Type        TransactionType `json:"type"`
	Amount      float64         `json:"amount"`
	Description string          `json:"description"`
	EnvelopeID  string          `json:"envelope_id,omitempty"`
}

// CashflowForecast is a day-by-day balance projection. Built incrementally
// by the forecaster, immutable once returned.
type CashflowForecast struct {
	StartDate       time.Time             `json:"start_date"`
	EndDate         time.Time             `json:"end_date"`
	StartingBalance float64               `json:"starting_balance"`
	DailyBalances   map[string]float64    `json:"daily_balances"` // keyed by DateKey
	Transactions    []ForecastTransaction `json:"transactions"`
	Alerts          []string              `json:"alerts"`
}

// MinBalance returns the lowest daily balance, or the starting balance for an
// empty forecast.
func (f CashflowForecast) MinBalance() float64 {
	min := f.StartingBalance
	first := true
	for _, b := range f.DailyBalances {
		if first || b < min {
			min = b
			first = false
		}
	}
	return min
}

// MaxBalance returns the highest daily balance, or the starting balance for
// an empty forecast.
func (f CashflowForecast) MaxBalance() float64 {
	max := f.StartingBalance
	first := true
	for _, b := range f.DailyBalances {
		if first || b > max {
			max = b
			first = false
		}
	}
	return max
}

// ActualTransaction is an externally recorded spend against an envelope.
type ActualTransaction struct {
	EnvelopeID  string    `json:"envelope_id"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date,omitempty"`
	Description string    `json:"description,omitempty"`
}

// OverUnder classifies actual spending against the plan.
type OverUnder string

const (
	OverBudget  OverUnder = "over"
	UnderBudget OverUnder = "under"
	OnBudget    OverUnder = "on"
)

// ReconciliationResult compares planned and actual spending for one envelope.
type ReconciliationResult struct {
	EnvelopeID    string    `json:"envelope_id"`
	EnvelopeName  string    `json:"envelope_name"`
	PlannedAmount float64   `json:"planned_amount"`
	ActualAmount  float64   `json:"actual_amount"`
	Difference    float64   `json:"difference"`
	OverUnder     OverUnder `json:"over_under"`
	Percentage    float64   `json:"percentage"`
}
