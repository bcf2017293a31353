package engine_test

import (
	"testing"

	"podboard/internal/engine"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func uniformValues(s string) engine.CostValues {
	v := dec(s)
	return engine.CostValues{SmallPrepaid: v, SmallCOD: v, LargePrepaid: v, LargeCOD: v}
}

func TestAllocateCost_PercentageExcluded(t *testing.T) {
	// A 12% fee on top of a 100.00 order is exactly 12.00.
	order := engine.Order{ID: "o", TotalPrice: dec("100"), PaymentMethod: "cod"}
	fields := []engine.CostField{{
		ID: "f1", Name: "payment gateway",
		Type:           engine.CostTypeCOGS,
		Calculation:    engine.CalcPercentage,
		PercentageType: engine.PercentageExcluded,
		Values:         uniformValues("12"),
	}}

	alloc := engine.AllocateCost(order, engine.StatusDelivered, engine.VariantSmall, fields)

	require.Len(t, alloc.Items, 1)
	assert.True(t, alloc.Total.Equal(dec("12.00")), "total = %s", alloc.Total)
}

func TestAllocateCost_PercentageIncluded(t *testing.T) {
	// 12% GST embedded in a 100.00 total extracts 10.71, not 12:
	// 100 × 12 / 112 = 10.714... → 10.71.
	order := engine.Order{ID: "o", TotalPrice: dec("100"), PaymentMethod: "cod"}
	fields := []engine.CostField{{
		ID: "f1", Name: "gst",
		Type:           engine.CostTypeBoth,
		Calculation:    engine.CalcPercentage,
		PercentageType: engine.PercentageIncluded,
		Values:         uniformValues("12"),
	}}

	alloc := engine.AllocateCost(order, engine.StatusDelivered, engine.VariantSmall, fields)

	require.Len(t, alloc.Items, 1)
	assert.True(t, alloc.Total.Equal(dec("10.71")), "total = %s", alloc.Total)
}

func TestAllocateCost_IncludedRecombination(t *testing.T) {
	// Extracting an included fee and adding it back onto the net recovers the
	// gross price to within rounding.
	price := dec("1499")
	rate := dec("18")

	order := engine.Order{ID: "o", TotalPrice: price, PaymentMethod: "prepaid"}
	fields := []engine.CostField{{
		ID: "f1", Name: "gst",
		Type:           engine.CostTypeCOGS,
		Calculation:    engine.CalcPercentage,
		PercentageType: engine.PercentageIncluded,
		Values:         uniformValues(rate.String()),
	}}

	alloc := engine.AllocateCost(order, engine.StatusDelivered, engine.VariantSmall, fields)

	net := price.Sub(alloc.Total)
	recombined := net.Add(net.Mul(rate).Div(dec("100")))
	diff := recombined.Sub(price).Abs()
	assert.True(t, diff.LessThanOrEqual(dec("0.02")), "recombined %s vs price %s", recombined, price)
}

func TestAllocateCost_FixedGridSelection(t *testing.T) {
	values := engine.CostValues{
		SmallPrepaid: dec("50"),
		SmallCOD:     dec("60"),
		LargePrepaid: dec("80"),
		LargeCOD:     dec("90"),
	}
	field := engine.CostField{
		ID: "f1", Name: "product cost",
		Type:        engine.CostTypeCOGS,
		Calculation: engine.CalcFixed,
		Values:      values,
	}

	tests := []struct {
		variant string
		payment string
		want    string
	}{
		{engine.VariantSmall, "prepaid", "50"},
		{engine.VariantSmall, "cod", "60"},
		{engine.VariantLarge, "prepaid", "80"},
		{engine.VariantLarge, "cod", "90"},
	}

	for _, tt := range tests {
		order := engine.Order{ID: "o", TotalPrice: dec("500"), PaymentMethod: tt.payment}
		alloc := engine.AllocateCost(order, engine.StatusDelivered, tt.variant, []engine.CostField{field})
		assert.True(t, alloc.Total.Equal(dec(tt.want)), "%s/%s: total = %s", tt.variant, tt.payment, alloc.Total)
	}
}

func TestAllocateCost_TypeFiltering(t *testing.T) {
	fields := []engine.CostField{
		{ID: "cogs", Name: "product", Type: engine.CostTypeCOGS, Calculation: engine.CalcFixed, Values: uniformValues("100")},
		{ID: "ndr", Name: "return fee", Type: engine.CostTypeNDR, Calculation: engine.CalcFixed, Values: uniformValues("40")},
		{ID: "both", Name: "packaging", Type: engine.CostTypeBoth, Calculation: engine.CalcFixed, Values: uniformValues("10")},
	}
	order := engine.Order{ID: "o", TotalPrice: dec("500"), PaymentMethod: "cod"}

	delivered := engine.AllocateCost(order, engine.StatusDelivered, engine.VariantSmall, fields)
	assert.True(t, delivered.Total.Equal(dec("110")), "delivered total = %s", delivered.Total)

	failed := engine.AllocateCost(order, engine.StatusFailed, engine.VariantSmall, fields)
	assert.True(t, failed.Total.Equal(dec("50")), "failed total = %s", failed.Total)

	// Pending orders carry COGS fields, same as delivered.
	pending := engine.AllocateCost(order, engine.StatusPending, engine.VariantSmall, fields)
	assert.True(t, pending.Total.Equal(dec("110")), "pending total = %s", pending.Total)
}

func TestAllocateCost_NegativeInputsClamped(t *testing.T) {
	order := engine.Order{ID: "o", TotalPrice: dec("-250"), PaymentMethod: "cod"}
	fields := []engine.CostField{
		{ID: "f1", Name: "pct", Type: engine.CostTypeCOGS, Calculation: engine.CalcPercentage,
			PercentageType: engine.PercentageExcluded, Values: uniformValues("10")},
		{ID: "f2", Name: "neg fixed", Type: engine.CostTypeCOGS, Calculation: engine.CalcFixed,
			Values: uniformValues("-5")},
	}

	alloc := engine.AllocateCost(order, engine.StatusDelivered, engine.VariantSmall, fields)

	assert.True(t, alloc.Total.IsZero(), "total = %s", alloc.Total)
	assert.Equal(t, 2, alloc.Clamped)
}

func TestAllocateCost_NoFields(t *testing.T) {
	order := engine.Order{ID: "o", TotalPrice: dec("100"), PaymentMethod: "cod"}
	alloc := engine.AllocateCost(order, engine.StatusDelivered, engine.VariantSmall, nil)
	assert.True(t, alloc.Total.IsZero())
	assert.Empty(t, alloc.Items)
}
