package engine_test

import (
	"testing"

	"podboard/internal/engine"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deliveredOrder(id, date, price string) engine.Order {
	o := orderOn(id, date)
	o.DeliveryStatus = "delivered"
	o.TotalPrice = dec(price)
	return o
}

func failedOrder(id, date, price string) engine.Order {
	o := orderOn(id, date)
	o.DeliveryStatus = "failure"
	o.TotalPrice = dec(price)
	return o
}

func pendingOrder(id, date, price string) engine.Order {
	o := orderOn(id, date)
	o.DeliveryStatus = "in transit"
	o.TotalPrice = dec(price)
	return o
}

func findDay(t *testing.T, report engine.Report, date string) engine.DayAggregate {
	t.Helper()
	for _, d := range report.Days {
		if d.Date == date {
			return d
		}
	}
	t.Fatalf("no day aggregate for %s", date)
	return engine.DayAggregate{}
}

func TestCompute_DeliveredOrderEconomics(t *testing.T) {
	order := deliveredOrder("1001", "2024-05-01", "100")
	order.FlatShippingCharge = dec("20")

	in := engine.Input{
		Orders: []engine.Order{order},
		CostFields: []engine.CostField{{
			ID: "f1", Name: "gateway fee",
			Type:           engine.CostTypeCOGS,
			Calculation:    engine.CalcPercentage,
			PercentageType: engine.PercentageExcluded,
			Values:         uniformValues("12"),
		}},
		AdSpend: []engine.AdSpendEntry{{Date: "2024-05-01", Amount: dec("50")}},
	}

	report := engine.Compute(in)

	require.Len(t, report.Orders, 1)
	row := report.Orders[0]
	assert.Equal(t, engine.StatusDelivered, row.Status)
	assert.True(t, row.Revenue.Equal(dec("100")), "revenue = %s", row.Revenue)
	assert.True(t, row.AllocatedCost.Equal(dec("12.00")), "allocated = %s", row.AllocatedCost)
	assert.True(t, row.AdCost.Equal(dec("50.00")), "ad = %s", row.AdCost)
	assert.True(t, row.ShippingCost.Equal(dec("20")), "shipping = %s", row.ShippingCost)
	// 100 − 12 − 50 − 20
	assert.True(t, row.Profit.Equal(dec("18.00")), "profit = %s", row.Profit)
	assert.True(t, row.Counted)
}

func TestCompute_CODFreightReversedOnFailedCOD(t *testing.T) {
	breakdown := &engine.ShippingBreakdown{
		ForwardFreight:   dec("30"),
		CODFreight:       dec("20"),
		RTOFreight:       dec("10"),
		MessagingCharges: dec("5"),
		OtherCharges:     dec("5"),
	}

	failed := failedOrder("f", "2024-05-01", "100")
	failed.PaymentMethod = "cod"
	failed.Shipping = breakdown

	delivered := deliveredOrder("d", "2024-05-01", "100")
	delivered.PaymentMethod = "cod"
	delivered.Shipping = breakdown

	failedPrepaid := failedOrder("fp", "2024-05-01", "100")
	failedPrepaid.PaymentMethod = "prepaid"
	failedPrepaid.Shipping = breakdown

	report := engine.Compute(engine.Input{Orders: []engine.Order{failed, delivered, failedPrepaid}})

	byID := map[string]engine.OrderPnL{}
	for _, row := range report.Orders {
		byID[row.OrderID] = row
	}

	// COD freight is charged then reversed on a failed COD delivery.
	assert.True(t, byID["f"].ShippingCost.Equal(dec("50")), "failed cod shipping = %s", byID["f"].ShippingCost)
	assert.True(t, byID["d"].ShippingCost.Equal(dec("70")), "delivered cod shipping = %s", byID["d"].ShippingCost)
	assert.True(t, byID["fp"].ShippingCost.Equal(dec("70")), "failed prepaid shipping = %s", byID["fp"].ShippingCost)
}

func TestCompute_CancelledOrdersInvisible(t *testing.T) {
	cancelled := deliveredOrder("c", "2024-05-01", "100")
	cancelled.Cancelled = true
	live := deliveredOrder("d", "2024-05-01", "100")

	report := engine.Compute(engine.Input{
		Orders:  []engine.Order{cancelled, live},
		AdSpend: []engine.AdSpendEntry{{Date: "2024-05-01", Amount: dec("100")}},
	})

	require.Len(t, report.Orders, 1)
	// The cancelled order is not in the amortization denominator either: the
	// live order carries the full 100, not 50.
	assert.True(t, report.Orders[0].AdCost.Equal(dec("100.00")), "ad = %s", report.Orders[0].AdCost)
	assert.Equal(t, 1, report.Stats.DeliveredCount)
}

func TestCompute_DiscardAsymmetry(t *testing.T) {
	kept := deliveredOrder("keep", "2024-05-01", "100")
	hidden := deliveredOrder("hide", "2024-05-01", "100")

	report := engine.Compute(engine.Input{
		Orders:     []engine.Order{kept, hidden},
		DiscardSet: map[string]bool{"hide": true},
	})

	// Sales-facing day totals exclude the discarded order.
	day := findDay(t, report, "2024-05-01")
	assert.Equal(t, 1, day.CountedOrders)
	assert.True(t, day.Revenue.Equal(dec("100")), "day revenue = %s", day.Revenue)

	// Global baselines still see it.
	assert.Equal(t, 2, report.Stats.DeliveredCount)
	assert.True(t, report.Stats.TotalRevenue.Equal(dec("200")), "total revenue = %s", report.Stats.TotalRevenue)
	assert.True(t, report.Stats.AvgRevenuePerOrder.Equal(dec("100.00")))
}

func TestCompute_NDRRate(t *testing.T) {
	report := engine.Compute(engine.Input{Orders: []engine.Order{
		deliveredOrder("d1", "2024-05-01", "100"),
		deliveredOrder("d2", "2024-05-01", "100"),
		failedOrder("f1", "2024-05-01", "100"),
	}})

	require.True(t, report.Stats.NDRRateDefined)
	// 1 failed of 3 final: 33.33.
	assert.True(t, report.Stats.NDRRate.Equal(dec("33.33")), "ndr = %s", report.Stats.NDRRate)
	assert.True(t, report.Stats.NDRRate.GreaterThanOrEqual(decimal.Zero))
	assert.True(t, report.Stats.NDRRate.LessThanOrEqual(dec("100")))
}

func TestCompute_NDRRateUndefinedWithoutFinalOrders(t *testing.T) {
	report := engine.Compute(engine.Input{Orders: []engine.Order{
		pendingOrder("p1", "2024-05-01", "100"),
		pendingOrder("p2", "2024-05-01", "100"),
	}})

	assert.False(t, report.Stats.NDRRateDefined)
	assert.False(t, report.Stats.AveragesDefined)
	assert.Equal(t, 2, report.Stats.PendingCount)
}

func TestCompute_PendingEstimates(t *testing.T) {
	report := engine.Compute(engine.Input{Orders: []engine.Order{
		deliveredOrder("d", "2024-05-01", "100"),
		failedOrder("f", "2024-05-01", "0"),
		pendingOrder("p1", "2024-05-01", "100"),
		pendingOrder("p2", "2024-05-01", "100"),
	}})

	// NDR rate 50.00; avg profit over finals = (100 + 0) / 2 = 50.00.
	require.True(t, report.Stats.NDRRateDefined)
	assert.True(t, report.Stats.NDRRate.Equal(dec("50.00")))
	assert.True(t, report.Stats.AvgProfitPerOrder.Equal(dec("50.00")))

	day := findDay(t, report, "2024-05-01")
	assert.Equal(t, 2, day.PendingOrders)
	// ceil(2 × 50 / 100) = 1 expected failure.
	assert.Equal(t, 1, day.ExpectedNDR)
	// Actual 100 plus 2 pending priced at the 50.00 average.
	assert.True(t, day.EstimatedProfit.Equal(dec("200.00")), "estimated = %s", day.EstimatedProfit)

	require.Len(t, report.Months, 1)
	assert.Equal(t, "2024-05", report.Months[0].Month)
	assert.Equal(t, 1, report.Months[0].ExpectedNDR)
}

func TestCompute_SpendDateWithoutOrdersIsPureLoss(t *testing.T) {
	report := engine.Compute(engine.Input{
		Orders:  []engine.Order{deliveredOrder("d", "2024-05-02", "100")},
		AdSpend: []engine.AdSpendEntry{{Date: "2024-05-01", Amount: dec("500")}},
	})

	day := findDay(t, report, "2024-05-01")
	assert.Equal(t, 0, day.CountedOrders)
	assert.True(t, day.AdSpend.Equal(dec("500")))
	assert.True(t, day.Profit.Equal(dec("-500")), "profit = %s", day.Profit)
}

func TestCompute_NegativeRevenueClamped(t *testing.T) {
	report := engine.Compute(engine.Input{
		Orders: []engine.Order{deliveredOrder("d", "2024-05-01", "-100")},
	})

	require.Len(t, report.Orders, 1)
	assert.True(t, report.Orders[0].Revenue.IsZero())
	assert.GreaterOrEqual(t, report.ClampedInputs, 1)
}

func TestCompute_DegradationFlags(t *testing.T) {
	report := engine.Compute(engine.Input{
		Orders: []engine.Order{deliveredOrder("d", "2024-05-01", "100")},
	})
	assert.True(t, report.NoCostModel)
	assert.True(t, report.NoAdSpendData)

	report = engine.Compute(engine.Input{
		Orders: []engine.Order{deliveredOrder("d", "2024-05-01", "100")},
		CostFields: []engine.CostField{{
			ID: "f1", Name: "x", Type: engine.CostTypeCOGS,
			Calculation: engine.CalcFixed, Values: uniformValues("1"),
		}},
		AdSpend: []engine.AdSpendEntry{{Date: "2024-05-01", Amount: dec("1")}},
	})
	assert.False(t, report.NoCostModel)
	assert.False(t, report.NoAdSpendData)
}

func TestCompute_Deterministic(t *testing.T) {
	in := engine.Input{
		Orders: []engine.Order{
			deliveredOrder("d1", "2024-05-01", "100"),
			failedOrder("f1", "2024-05-01", "80"),
			pendingOrder("p1", "2024-05-02", "120"),
			deliveredOrder("d2", "2024-05-03", "90"),
		},
		CostFields: []engine.CostField{
			{ID: "f1", Name: "product", Type: engine.CostTypeCOGS,
				Calculation: engine.CalcFixed, Values: uniformValues("30")},
			{ID: "f2", Name: "gst", Type: engine.CostTypeBoth, Calculation: engine.CalcPercentage,
				PercentageType: engine.PercentageIncluded, Values: uniformValues("18")},
		},
		AdSpend: []engine.AdSpendEntry{
			{Date: "2024-05-01", Amount: dec("150")},
			{Date: "2024-05-02", Amount: dec("90")},
		},
		RTOSet: map[string]bool{"d2": true},
	}

	first := engine.Compute(in)
	second := engine.Compute(in)

	require.Equal(t, len(first.Orders), len(second.Orders))
	for i := range first.Orders {
		assert.Equal(t, first.Orders[i].OrderID, second.Orders[i].OrderID)
		assert.True(t, first.Orders[i].Profit.Equal(second.Orders[i].Profit))
	}
	require.Equal(t, len(first.Days), len(second.Days))
	for i := range first.Days {
		assert.Equal(t, first.Days[i].Date, second.Days[i].Date)
		assert.True(t, first.Days[i].Profit.Equal(second.Days[i].Profit))
		assert.True(t, first.Days[i].EstimatedProfit.Equal(second.Days[i].EstimatedProfit))
	}
	assert.True(t, first.Stats.NDRRate.Equal(second.Stats.NDRRate))
}

func TestCompute_DaysAndMonthsSorted(t *testing.T) {
	report := engine.Compute(engine.Input{Orders: []engine.Order{
		deliveredOrder("c", "2024-06-03", "10"),
		deliveredOrder("a", "2024-05-01", "10"),
		deliveredOrder("b", "2024-05-20", "10"),
	}})

	require.Len(t, report.Days, 3)
	assert.Equal(t, "2024-05-01", report.Days[0].Date)
	assert.Equal(t, "2024-05-20", report.Days[1].Date)
	assert.Equal(t, "2024-06-03", report.Days[2].Date)

	require.Len(t, report.Months, 2)
	assert.Equal(t, "2024-05", report.Months[0].Month)
	assert.Equal(t, "2024-06", report.Months[1].Month)
}
