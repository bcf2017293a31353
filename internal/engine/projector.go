package engine

import "github.com/shopspring/decimal"

// DefaultWorkingDays is the month length used when the caller passes none.
const DefaultWorkingDays = 30

// ProjectionParams feed the target-profit inversion. The averages and ROAS
// come from a Report over whatever trailing window the caller chose.
type ProjectionParams struct {
	TargetMonthlyProfit decimal.Decimal
	AvgProfitPerOrder   decimal.Decimal
	AvgRevenuePerOrder  decimal.Decimal
	ROAS                decimal.Decimal
	WorkingDays         int
}

// Projection answers "what volume, revenue and ad spend hit the target".
// Feasible is false when the average profit per order is non-positive — there
// is no order count that reaches a positive target on losing orders, and the
// division is left undone rather than reported as a number.
type Projection struct {
	Feasible       bool
	WorkingDays    int
	MonthlyOrders  decimal.Decimal
	MonthlyRevenue decimal.Decimal
	MonthlyAdSpend decimal.Decimal
	DailyOrders    decimal.Decimal
	DailyRevenue   decimal.Decimal
	DailyAdSpend   decimal.Decimal
	DailyProfit    decimal.Decimal
}

// Project inverts the historical per-order averages. Derivation order matters
// for reproducibility: orders ← target ÷ avg profit, revenue ← orders × avg
// revenue, ad spend ← revenue ÷ ROAS (zero when ROAS is non-positive), then
// each monthly figure ÷ working days. Every result is rounded to 2 places.
func Project(p ProjectionParams) Projection {
	days := p.WorkingDays
	if days <= 0 {
		days = DefaultWorkingDays
	}
	out := Projection{WorkingDays: days}

	if !p.AvgProfitPerOrder.IsPositive() {
		return out
	}
	out.Feasible = true

	daysDec := decimal.NewFromInt(int64(days))

	out.MonthlyOrders = p.TargetMonthlyProfit.Div(p.AvgProfitPerOrder).Round(2)
	out.MonthlyRevenue = out.MonthlyOrders.Mul(p.AvgRevenuePerOrder).Round(2)
	if p.ROAS.IsPositive() {
		out.MonthlyAdSpend = out.MonthlyRevenue.Div(p.ROAS).Round(2)
	} else {
		out.MonthlyAdSpend = decimal.Zero
	}

	out.DailyOrders = out.MonthlyOrders.Div(daysDec).Round(2)
	out.DailyRevenue = out.MonthlyRevenue.Div(daysDec).Round(2)
	out.DailyAdSpend = out.MonthlyAdSpend.Div(daysDec).Round(2)
	out.DailyProfit = p.TargetMonthlyProfit.Div(daysDec).Round(2)

	return out
}
