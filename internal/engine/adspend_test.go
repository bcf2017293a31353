package engine_test

import (
	"testing"
	"time"

	"podboard/internal/engine"

	"github.com/stretchr/testify/assert"
)

func orderOn(id, date string) engine.Order {
	t, err := time.ParseInLocation(engine.DateLayout, date, engine.StoreLocation)
	if err != nil {
		panic(err)
	}
	// Noon store time keeps the order safely inside the date bucket.
	return engine.Order{ID: id, PlacedAt: t.Add(12 * time.Hour), PaymentMethod: "cod"}
}

func TestAmortizeAdSpend_EvenSplit(t *testing.T) {
	// ₹200 spent on a day with two orders lands ₹100 on each.
	entries := []engine.AdSpendEntry{{Date: "2024-05-01", Amount: dec("200")}}
	orders := []engine.Order{orderOn("a", "2024-05-01"), orderOn("b", "2024-05-01")}

	idx := engine.AmortizeAdSpend(entries, orders)

	assert.True(t, idx.CostFor("2024-05-01").Equal(dec("100.00")), "per-order = %s", idx.CostFor("2024-05-01"))
}

func TestAmortizeAdSpend_SameDateEntriesSummed(t *testing.T) {
	entries := []engine.AdSpendEntry{
		{Date: "2024-05-01", Amount: dec("120")},
		{Date: "2024-05-01", Amount: dec("80")},
	}
	orders := []engine.Order{orderOn("a", "2024-05-01")}

	idx := engine.AmortizeAdSpend(entries, orders)

	assert.True(t, idx.SpendByDate["2024-05-01"].Equal(dec("200")))
	assert.True(t, idx.CostFor("2024-05-01").Equal(dec("200.00")))
}

func TestAmortizeAdSpend_Conservation(t *testing.T) {
	// Per-order cost × order count reproduces total spend when it divides
	// evenly, and stays within count × half-a-paisa otherwise.
	entries := []engine.AdSpendEntry{{Date: "2024-05-01", Amount: dec("1000")}}
	orders := []engine.Order{
		orderOn("a", "2024-05-01"), orderOn("b", "2024-05-01"), orderOn("c", "2024-05-01"),
	}

	idx := engine.AmortizeAdSpend(entries, orders)

	per := idx.CostFor("2024-05-01")
	reassembled := per.Mul(dec("3"))
	diff := reassembled.Sub(dec("1000")).Abs()
	assert.True(t, diff.LessThanOrEqual(dec("0.015")), "reassembled %s", reassembled)
}

func TestAmortizeAdSpend_CancelledOrdersNotCounted(t *testing.T) {
	entries := []engine.AdSpendEntry{{Date: "2024-05-01", Amount: dec("300")}}
	cancelled := orderOn("x", "2024-05-01")
	cancelled.Cancelled = true
	orders := []engine.Order{orderOn("a", "2024-05-01"), cancelled}

	idx := engine.AmortizeAdSpend(entries, orders)

	assert.Equal(t, 1, idx.OrderCountByDate["2024-05-01"])
	assert.True(t, idx.CostFor("2024-05-01").Equal(dec("300.00")))
}

func TestAmortizeAdSpend_SpendWithNoOrders(t *testing.T) {
	// The date keeps its spend but produces no per-order cost; the daily
	// aggregates surface it as pure loss.
	entries := []engine.AdSpendEntry{{Date: "2024-05-01", Amount: dec("500")}}

	idx := engine.AmortizeAdSpend(entries, nil)

	assert.True(t, idx.SpendByDate["2024-05-01"].Equal(dec("500")))
	_, ok := idx.PerOrderCost["2024-05-01"]
	assert.False(t, ok)
	assert.True(t, idx.CostFor("2024-05-01").IsZero())
}

func TestAmortizeAdSpend_NegativeAmountClamped(t *testing.T) {
	entries := []engine.AdSpendEntry{
		{Date: "2024-05-01", Amount: dec("-100")},
		{Date: "2024-05-01", Amount: dec("250")},
	}
	orders := []engine.Order{orderOn("a", "2024-05-01")}

	idx := engine.AmortizeAdSpend(entries, orders)

	assert.Equal(t, 1, idx.Clamped)
	assert.True(t, idx.SpendByDate["2024-05-01"].Equal(dec("250")))
}

func TestAmortizeAdSpend_OrdersOnOtherDatesNotCharged(t *testing.T) {
	entries := []engine.AdSpendEntry{{Date: "2024-05-01", Amount: dec("200")}}
	orders := []engine.Order{orderOn("a", "2024-05-02")}

	idx := engine.AmortizeAdSpend(entries, orders)

	assert.True(t, idx.CostFor("2024-05-02").IsZero())
}
