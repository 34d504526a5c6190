package budget

import (
	"fmt"
	"sort"
	"time"

	"payfold/internal/model"
)

// Forecast replays each day in [start, end] inclusive, applying paycheck
// credits and bill debits against the checking balance and per-envelope
// balances, and recording alerts.
//
// A bill is paid only when its envelope fully covers the amount; otherwise an
// insufficient-funds alert is appended and nothing is debited. Cost is linear
// in the number of days, so callers should bound the date range.
func Forecast(profile *model.BudgetProfile, start, end time.Time, startingBalance float64, allocations []model.PaycheckAllocation) model.CashflowForecast {
	forecast := model.CashflowForecast{
		StartDate:       start,
		EndDate:         end,
		StartingBalance: startingBalance,
		DailyBalances:   make(map[string]float64),
	}

	paychecksByDay := make(map[string][]model.PaycheckAllocation)
	for _, alloc := range allocations {
		key := model.DateKey(alloc.Date)
		paychecksByDay[key] = append(paychecksByDay[key], alloc)
	}

	var bills []model.Bill
	for _, b := range profile.Bills {
		if !b.Paid {
			bills = append(bills, b)
		}
	}
	sort.SliceStable(bills, func(i, j int) bool {
		return bills[i].DueDate.Before(bills[j].DueDate)
	})

	envelopeBalances := make(map[string]float64, len(profile.Envelopes))
	for _, e := range profile.Envelopes {
		envelopeBalances[e.ID] = e.CurrentBalance
	}

	balance := startingBalance
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := model.DateKey(day)

		for _, paycheck := range paychecksByDay[key] {
			balance += paycheck.NetAmount
			for _, ea := range paycheck.Allocations {
				if _, ok := envelopeBalances[ea.EnvelopeID]; ok {
					envelopeBalances[ea.EnvelopeID] += ea.Amount
				}
			}
			forecast.Transactions = append(forecast.Transactions, model.ForecastTransaction{
				Date:        day,
				Type:        model.TxPaycheck,
				Amount:      paycheck.NetAmount,
				Description: "Paycheck received",
			})
		}

		for _, bill := range bills {
			if model.DateKey(bill.DueDate) != key {
				continue
			}
			envelope, ok := profile.Envelope(bill.EnvelopeID)
			if !ok {
				continue
			}
			if envelopeBalances[bill.EnvelopeID] >= bill.Amount {
				envelopeBalances[bill.EnvelopeID] -= bill.Amount
				balance -= bill.Amount
				forecast.Transactions = append(forecast.Transactions, model.ForecastTransaction{
					Date:        day,
					Type:        model.TxBillPayment,
					Amount:      -bill.Amount,
					Description: "Paid " + bill.Name,
					EnvelopeID:  bill.EnvelopeID,
				})
			} else {
				forecast.Alerts = append(forecast.Alerts, fmt.Sprintf(
					"Insufficient funds in envelope %q to pay bill %q on %s",
					envelope.Name, bill.Name, key))
			}
		}

		forecast.DailyBalances[key] = balance

		// Both alerts can fire on the same day.
		if balance < profile.Settings.CheckingBuffer {
			forecast.Alerts = append(forecast.Alerts, fmt.Sprintf(
				"Low balance warning: $%.2f on %s (below buffer of $%.2f)",
				balance, key, profile.Settings.CheckingBuffer))
		}
		if balance < 0 {
			forecast.Alerts = append(forecast.Alerts, fmt.Sprintf(
				"Negative balance: $%.2f on %s", balance, key))
		}
	}

	return forecast
}
