package engine

import "github.com/shopspring/decimal"

// AdSpendEntry is one day's ad spend record. Date is a store-local calendar
// date key (DateLayout); several entries on the same date are summed.
type AdSpendEntry struct {
	Date   string
	Amount decimal.Decimal
}

// AdSpendIndex is the per-date amortization result shared by every order
// created on the same store-local date.
type AdSpendIndex struct {
	SpendByDate      map[string]decimal.Decimal
	OrderCountByDate map[string]int
	// PerOrderCost holds spend ÷ order count for dates with at least one
	// order. Dates with spend but no orders are absent here; they surface in
	// the daily aggregates as pure loss instead of being dropped.
	PerOrderCost map[string]decimal.Decimal
	Clamped      int
}

// AmortizeAdSpend buckets spend entries and order counts by store-local date
// and derives the ad cost each order on a date carries. Cancelled orders are
// skipped; negative spend amounts are clamped to zero and counted.
func AmortizeAdSpend(entries []AdSpendEntry, orders []Order) AdSpendIndex {
	idx := AdSpendIndex{
		SpendByDate:      make(map[string]decimal.Decimal),
		OrderCountByDate: make(map[string]int),
		PerOrderCost:     make(map[string]decimal.Decimal),
	}

	for _, e := range entries {
		amount := e.Amount
		if amount.IsNegative() {
			amount = decimal.Zero
			idx.Clamped++
		}
		idx.SpendByDate[e.Date] = idx.SpendByDate[e.Date].Add(amount)
	}

	for _, o := range orders {
		if o.Cancelled {
			continue
		}
		idx.OrderCountByDate[StoreDate(o.PlacedAt)]++
	}

	for date, total := range idx.SpendByDate {
		if count := idx.OrderCountByDate[date]; count > 0 {
			idx.PerOrderCost[date] = total.Div(decimal.NewFromInt(int64(count))).Round(2)
		}
	}

	return idx
}

// CostFor returns the ad cost allocated to each order on a date (zero when no
// spend was recorded for that date).
func (idx AdSpendIndex) CostFor(date string) decimal.Decimal {
	return idx.PerOrderCost[date]
}
