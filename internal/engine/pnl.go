package engine

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Input is everything one report run needs. The engine holds no state between
// calls; callers supply all collections fresh each time.
type Input struct {
	Orders     []Order
	CostFields []CostField
	AdSpend    []AdSpendEntry
	RTOSet     map[string]bool // order ids forced to FAILED
	DiscardSet map[string]bool // order ids hidden from sales-facing aggregates
}

// OrderPnL is the per-order result row.
type OrderPnL struct {
	OrderID       string
	Date          string // store-local calendar date
	Status        string
	Variant       string
	PaymentMethod string
	Revenue       decimal.Decimal
	AllocatedCost decimal.Decimal
	AdCost        decimal.Decimal
	ShippingCost  decimal.Decimal
	Profit        decimal.Decimal
	CostItems     []CostItem
	Counted       bool // participates in day/month P&L totals
	Discarded     bool
}

// DayAggregate is one store-local calendar day of the report. Days exist for
// every date that has counted orders, pending orders or ad spend — a date
// with spend and no orders at all shows up as pure loss.
type DayAggregate struct {
	Date            string
	Revenue         decimal.Decimal
	AdSpend         decimal.Decimal
	Profit          decimal.Decimal
	CountedOrders   int
	PendingOrders   int
	ExpectedNDR     int // ceil(pending × global NDR rate)
	EstimatedProfit decimal.Decimal
}

// MonthAggregate mirrors DayAggregate at month granularity.
type MonthAggregate struct {
	Month           string // YYYY-MM
	Revenue         decimal.Decimal
	AdSpend         decimal.Decimal
	Profit          decimal.Decimal
	CountedOrders   int
	PendingOrders   int
	ExpectedNDR     int
	EstimatedProfit decimal.Decimal
}

// GlobalStats are computed over the full order population, discarded orders
// included — the estimation baselines intentionally see everything.
type GlobalStats struct {
	DeliveredCount int
	FailedCount    int
	PendingCount   int
	// NDRRate is failed ÷ (delivered + failed) × 100. Defined is false when
	// there are no final-status orders; the rate is then 0 but must be
	// rendered as "—", not as a real zero.
	NDRRate        decimal.Decimal
	NDRRateDefined bool
	// Averages over final-status orders, used for pending-order estimation
	// and profit projection.
	AvgProfitPerOrder  decimal.Decimal
	AvgRevenuePerOrder decimal.Decimal
	AveragesDefined    bool
	TotalRevenue       decimal.Decimal
	TotalAdSpend       decimal.Decimal
	ROAS               decimal.Decimal
	ROASDefined        bool
}

// Report is the full result of one engine run.
type Report struct {
	Orders []OrderPnL
	Days   []DayAggregate
	Months []MonthAggregate
	Stats  GlobalStats
	// Degradation flags. A true NoCostModel means every AllocatedCost is zero
	// because nothing is configured — the profit numbers are not real.
	NoCostModel   bool
	NoAdSpendData bool
	ClampedInputs int
}

// Compute runs the full pipeline: classify → allocate → amortize → aggregate.
// Single synchronous pass; the amortization index must be complete before any
// per-order ad cost is read, so orders are walked only after it is built.
func Compute(in Input) Report {
	report := Report{
		NoCostModel:   len(in.CostFields) == 0,
		NoAdSpendData: len(in.AdSpend) == 0,
	}

	live := make([]Order, 0, len(in.Orders))
	for _, o := range in.Orders {
		if !o.Cancelled {
			live = append(live, o)
		}
	}

	idx := AmortizeAdSpend(in.AdSpend, live)
	report.ClampedInputs += idx.Clamped

	var (
		finalProfitSum  = decimal.Zero
		finalRevenueSum = decimal.Zero
	)

	for _, o := range live {
		status := Classify(o, in.RTOSet)
		variant := DetectVariant(o.Items)
		payment := NormalizePayment(o.PaymentMethod)
		date := StoreDate(o.PlacedAt)

		alloc := AllocateCost(o, status, variant, in.CostFields)
		report.ClampedInputs += alloc.Clamped

		adCost := idx.CostFor(date)
		shipping := shippingCost(o, status, payment)

		revenue := decimal.Zero
		if status == StatusDelivered {
			revenue = o.TotalPrice
			if revenue.IsNegative() {
				revenue = decimal.Zero
				report.ClampedInputs++
			}
		}

		profit := revenue.Sub(alloc.Total).Sub(adCost).Sub(shipping)

		row := OrderPnL{
			OrderID:       o.ID,
			Date:          date,
			Status:        status,
			Variant:       variant,
			PaymentMethod: payment,
			Revenue:       revenue,
			AllocatedCost: alloc.Total,
			AdCost:        adCost,
			ShippingCost:  shipping,
			Profit:        profit,
			CostItems:     alloc.Items,
			Counted:       IsFinal(status) || payment == PaymentPrepaid,
			Discarded:     in.DiscardSet[o.ID],
		}
		report.Orders = append(report.Orders, row)

		switch status {
		case StatusDelivered:
			report.Stats.DeliveredCount++
		case StatusFailed:
			report.Stats.FailedCount++
		default:
			report.Stats.PendingCount++
		}
		if IsFinal(status) {
			finalProfitSum = finalProfitSum.Add(profit)
			finalRevenueSum = finalRevenueSum.Add(revenue)
		}
		report.Stats.TotalRevenue = report.Stats.TotalRevenue.Add(revenue)
	}

	finalCount := report.Stats.DeliveredCount + report.Stats.FailedCount
	if finalCount > 0 {
		n := decimal.NewFromInt(int64(finalCount))
		report.Stats.NDRRate = decimal.NewFromInt(int64(report.Stats.FailedCount)).
			Mul(oneHundred).Div(n).Round(2)
		report.Stats.NDRRateDefined = true
		report.Stats.AvgProfitPerOrder = finalProfitSum.Div(n).Round(2)
		report.Stats.AvgRevenuePerOrder = finalRevenueSum.Div(n).Round(2)
		report.Stats.AveragesDefined = true
	}

	for _, total := range idx.SpendByDate {
		report.Stats.TotalAdSpend = report.Stats.TotalAdSpend.Add(total)
	}
	if report.Stats.TotalAdSpend.IsPositive() {
		report.Stats.ROAS = report.Stats.TotalRevenue.Div(report.Stats.TotalAdSpend).Round(2)
		report.Stats.ROASDefined = true
	}

	report.Days = aggregateDays(report.Orders, idx, report.Stats)
	report.Months = aggregateMonths(report.Days, report.Stats)

	return report
}

// shippingCost totals the courier breakdown, excluding COD freight for failed
// COD orders (charged then reversed, net zero). Falls back to the flat
// shipping charge when no breakdown exists.
func shippingCost(o Order, status, payment string) decimal.Decimal {
	if o.Shipping == nil {
		if o.FlatShippingCharge.IsNegative() {
			return decimal.Zero
		}
		return o.FlatShippingCharge
	}

	total := o.Shipping.ForwardFreight.
		Add(o.Shipping.RTOFreight).
		Add(o.Shipping.MessagingCharges).
		Add(o.Shipping.OtherCharges)
	if !(status == StatusFailed && payment == PaymentCOD) {
		total = total.Add(o.Shipping.CODFreight)
	}
	return total
}

func aggregateDays(rows []OrderPnL, idx AdSpendIndex, stats GlobalStats) []DayAggregate {
	days := make(map[string]*DayAggregate)

	get := func(date string) *DayAggregate {
		if d, ok := days[date]; ok {
			return d
		}
		d := &DayAggregate{
			Date:    date,
			Revenue: decimal.Zero, AdSpend: decimal.Zero,
			Profit: decimal.Zero, EstimatedProfit: decimal.Zero,
		}
		days[date] = d
		return d
	}

	// Sales-facing rows exclude discarded orders.
	for _, row := range rows {
		if row.Discarded {
			continue
		}
		day := get(row.Date)
		if row.Status == StatusPending {
			day.PendingOrders++
		}
		if row.Counted {
			day.Revenue = day.Revenue.Add(row.Revenue)
			day.Profit = day.Profit.Add(row.Profit)
			day.CountedOrders++
		}
	}

	// Every date with spend gets a row; spend on a date with no orders at all
	// is pure loss for that day.
	for date, spend := range idx.SpendByDate {
		day := get(date)
		day.AdSpend = spend
		if idx.OrderCountByDate[date] == 0 {
			day.Profit = day.Profit.Sub(spend)
		}
	}

	for _, day := range days {
		day.ExpectedNDR = expectedNDR(day.PendingOrders, stats)
		day.EstimatedProfit = estimatedProfit(day.Profit, day.PendingOrders, stats)
	}

	out := make([]DayAggregate, 0, len(days))
	for _, day := range days {
		out = append(out, *day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func aggregateMonths(days []DayAggregate, stats GlobalStats) []MonthAggregate {
	months := make(map[string]*MonthAggregate)

	for _, day := range days {
		key := MonthOf(day.Date)
		m, ok := months[key]
		if !ok {
			m = &MonthAggregate{
				Month:   key,
				Revenue: decimal.Zero, AdSpend: decimal.Zero,
				Profit: decimal.Zero, EstimatedProfit: decimal.Zero,
			}
			months[key] = m
		}
		m.Revenue = m.Revenue.Add(day.Revenue)
		m.AdSpend = m.AdSpend.Add(day.AdSpend)
		m.Profit = m.Profit.Add(day.Profit)
		m.CountedOrders += day.CountedOrders
		m.PendingOrders += day.PendingOrders
	}

	out := make([]MonthAggregate, 0, len(months))
	for _, m := range months {
		m.ExpectedNDR = expectedNDR(m.PendingOrders, stats)
		m.EstimatedProfit = estimatedProfit(m.Profit, m.PendingOrders, stats)
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// expectedNDR estimates how many of a bucket's pending orders will fail, from
// the global NDR rate.
func expectedNDR(pending int, stats GlobalStats) int {
	if pending == 0 || !stats.NDRRateDefined {
		return 0
	}
	return int(decimal.NewFromInt(int64(pending)).
		Mul(stats.NDRRate).Div(oneHundred).Ceil().IntPart())
}

// estimatedProfit projects a bucket's final P&L by pricing each pending order
// at the global average per final order. An estimator, not a guarantee.
func estimatedProfit(actual decimal.Decimal, pending int, stats GlobalStats) decimal.Decimal {
	if pending == 0 || !stats.AveragesDefined {
		return actual
	}
	return actual.Add(stats.AvgProfitPerOrder.Mul(decimal.NewFromInt(int64(pending))))
}
