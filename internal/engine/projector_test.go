package engine_test

import (
	"testing"

	"podboard/internal/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_TargetInversion(t *testing.T) {
	// Target 100,000/month on 250 profit and 800 revenue per order at 2.5 ROAS
	// over 30 working days.
	p := engine.ProjectionParams{
		TargetMonthlyProfit: dec("100000"),
		AvgProfitPerOrder:   dec("250"),
		AvgRevenuePerOrder:  dec("800"),
		ROAS:                dec("2.5"),
		WorkingDays:         30,
	}

	out := engine.Project(p)

	require.True(t, out.Feasible)
	assert.True(t, out.MonthlyOrders.Equal(dec("400.00")), "orders = %s", out.MonthlyOrders)
	assert.True(t, out.MonthlyRevenue.Equal(dec("320000.00")), "revenue = %s", out.MonthlyRevenue)
	assert.True(t, out.MonthlyAdSpend.Equal(dec("128000.00")), "ad spend = %s", out.MonthlyAdSpend)
	assert.True(t, out.DailyOrders.Equal(dec("13.33")), "daily orders = %s", out.DailyOrders)
	assert.True(t, out.DailyRevenue.Equal(dec("10666.67")), "daily revenue = %s", out.DailyRevenue)
	assert.True(t, out.DailyAdSpend.Equal(dec("4266.67")), "daily ad spend = %s", out.DailyAdSpend)
	assert.True(t, out.DailyProfit.Equal(dec("3333.33")), "daily profit = %s", out.DailyProfit)
}

func TestProject_InfeasibleOnNonPositiveAvgProfit(t *testing.T) {
	zero := engine.Project(engine.ProjectionParams{
		TargetMonthlyProfit: dec("100000"),
		AvgProfitPerOrder:   dec("0"),
	})
	assert.False(t, zero.Feasible)
	assert.True(t, zero.MonthlyOrders.IsZero())

	negative := engine.Project(engine.ProjectionParams{
		TargetMonthlyProfit: dec("100000"),
		AvgProfitPerOrder:   dec("-40"),
	})
	assert.False(t, negative.Feasible)
}

func TestProject_DefaultWorkingDays(t *testing.T) {
	out := engine.Project(engine.ProjectionParams{
		TargetMonthlyProfit: dec("30000"),
		AvgProfitPerOrder:   dec("100"),
		AvgRevenuePerOrder:  dec("400"),
	})

	assert.Equal(t, engine.DefaultWorkingDays, out.WorkingDays)
	assert.True(t, out.DailyProfit.Equal(dec("1000.00")), "daily profit = %s", out.DailyProfit)
}

func TestProject_ZeroROASMeansNoAdBudget(t *testing.T) {
	out := engine.Project(engine.ProjectionParams{
		TargetMonthlyProfit: dec("10000"),
		AvgProfitPerOrder:   dec("100"),
		AvgRevenuePerOrder:  dec("500"),
		ROAS:                dec("0"),
		WorkingDays:         25,
	})

	require.True(t, out.Feasible)
	assert.True(t, out.MonthlyAdSpend.IsZero())
	assert.True(t, out.DailyAdSpend.IsZero())
}
