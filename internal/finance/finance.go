// Package finance totals the monetary fields of task collections.
package finance

import (
	"github.com/dori/kairo/internal/model"
	"github.com/dori/kairo/internal/money"
)

// Overview is the revenue breakdown of a task collection.
// All amounts share one currency; no conversion is performed.
type Overview struct {
	Currency         string
	TotalRevenue     money.Amount
	TotalPaid        money.Amount
	TotalOutstanding money.Amount
	PricedTasks      int
}

// Aggregate totals the tasks that carry a total amount.
//
// Paid is derived as total minus outstanding for each task rather than read
// from the amount-paid field, so a stale paid value does not skew the totals.
func Aggregate(tasks []model.Task) Overview {
	var revenue, paid int64
	currency := ""
	priced := 0

	for i := range tasks {
		t := &tasks[i]
		if !t.HasPayment() {
			continue
		}
		total := t.Total()
		outstanding := t.Outstanding()
		if currency == "" {
			currency = total.Currency
		}
		revenue += total.Minor
		paid += total.Minor - outstanding.Minor
		priced++
	}

	if currency == "" {
		currency = money.DefaultCurrency
	}
	return Overview{
		Currency:         currency,
		TotalRevenue:     money.Amount{Currency: currency, Minor: revenue},
		TotalPaid:        money.Amount{Currency: currency, Minor: paid},
		TotalOutstanding: money.Amount{Currency: currency, Minor: revenue - paid},
		PricedTasks:      priced,
	}
}

// AggregateKind totals only the tasks of one kind
func AggregateKind(tasks []model.Task, kind model.Kind) Overview {
	var subset []model.Task
	for _, t := range tasks {
		if t.Kind == kind {
			subset = append(subset, t)
		}
	}
	return Aggregate(subset)
}

// PaidPercent returns the share of revenue already paid, 0 to 100
func (o Overview) PaidPercent() int {
	return money.Progress(o.TotalRevenue, o.TotalPaid)
}
