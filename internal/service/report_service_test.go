package service

import (
	"testing"
	"time"

	"podboard/internal/engine"
	"podboard/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToGlobalStatsDTO_UndefinedRatiosAreNull(t *testing.T) {
	dto := toGlobalStatsDTO(engine.GlobalStats{PendingCount: 3})

	assert.Nil(t, dto.NDRRate)
	assert.Nil(t, dto.AvgProfitPerOrder)
	assert.Nil(t, dto.AvgRevenuePerOrder)
	assert.Nil(t, dto.ROAS)
	assert.Equal(t, "0.00", dto.TotalRevenue)
}

func TestToGlobalStatsDTO_DefinedRatiosFormatted(t *testing.T) {
	stats := engine.GlobalStats{
		DeliveredCount:     4,
		FailedCount:        1,
		NDRRate:            decimal.RequireFromString("20"),
		NDRRateDefined:     true,
		AvgProfitPerOrder:  decimal.RequireFromString("52.5"),
		AvgRevenuePerOrder: decimal.RequireFromString("410"),
		AveragesDefined:    true,
		TotalRevenue:       decimal.RequireFromString("2050"),
		TotalAdSpend:       decimal.RequireFromString("820"),
		ROAS:               decimal.RequireFromString("2.5"),
		ROASDefined:        true,
	}

	dto := toGlobalStatsDTO(stats)

	require.NotNil(t, dto.NDRRate)
	assert.Equal(t, "20.00", *dto.NDRRate)
	require.NotNil(t, dto.AvgProfitPerOrder)
	assert.Equal(t, "52.50", *dto.AvgProfitPerOrder)
	require.NotNil(t, dto.ROAS)
	assert.Equal(t, "2.50", *dto.ROAS)
}

func TestToEngineOrder_NilBreakdownAndStatuses(t *testing.T) {
	eo := toEngineOrder(model.Order{
		ID:            "1001",
		PlacedAt:      time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		PaymentMethod: "cod",
		TotalPrice:    decimal.RequireFromString("499"),
	})

	assert.Equal(t, "", eo.DeliveryStatus)
	assert.Nil(t, eo.Shipping)
	assert.False(t, eo.Cancelled)
	assert.True(t, eo.TotalPrice.Equal(decimal.RequireFromString("499")))
}

func TestToEngineOrder_CancelledWhenCancelledAtSet(t *testing.T) {
	cancelledAt := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	eo := toEngineOrder(model.Order{
		ID:          "1002",
		PlacedAt:    time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		CancelledAt: &cancelledAt,
	})

	assert.True(t, eo.Cancelled)
}
