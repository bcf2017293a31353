package engine

import "github.com/shopspring/decimal"

// CostType enum constants — which classification a cost field applies to.
const (
	CostTypeCOGS = "COGS" // delivered / pending orders
	CostTypeNDR  = "NDR"  // failed orders
	CostTypeBoth = "BOTH"
)

// CalculationType enum constants
const (
	CalcFixed      = "FIXED"
	CalcPercentage = "PERCENTAGE"
)

// PercentageType enum constants — how a percentage relates to the price.
const (
	// PercentageExcluded: the fee comes on top of the price (price × v / 100).
	PercentageExcluded = "EXCLUDED"
	// PercentageIncluded: the fee is already embedded in the price and gets
	// extracted (price × v / (100 + v)), e.g. GST collected within the total.
	PercentageIncluded = "INCLUDED"
)

// CostValues is the 2×2 value grid keyed by variant × payment method. Exactly
// one cell is read per order.
type CostValues struct {
	SmallPrepaid decimal.Decimal
	SmallCOD     decimal.Decimal
	LargePrepaid decimal.Decimal
	LargeCOD     decimal.Decimal
}

// For selects the grid cell for a variant and normalized payment method.
func (v CostValues) For(variant, payment string) decimal.Decimal {
	if variant == VariantLarge {
		if payment == PaymentPrepaid {
			return v.LargePrepaid
		}
		return v.LargeCOD
	}
	if payment == PaymentPrepaid {
		return v.SmallPrepaid
	}
	return v.SmallCOD
}

// CostField is one configured cost component of the store's cost model.
type CostField struct {
	ID             string
	Name           string
	Type           string // COGS, NDR, BOTH
	Calculation    string // FIXED, PERCENTAGE
	PercentageType string // INCLUDED, EXCLUDED (EXCLUDED when empty)
	Values         CostValues
}

// AppliesTo reports whether the field contributes under a classification:
// failed orders take NDR and BOTH fields, everything else takes COGS and BOTH.
func (f CostField) AppliesTo(status string) bool {
	if status == StatusFailed {
		return f.Type == CostTypeNDR || f.Type == CostTypeBoth
	}
	return f.Type == CostTypeCOGS || f.Type == CostTypeBoth
}

// CostItem is one field's contribution, kept for audit/debug display.
type CostItem struct {
	FieldID   string
	FieldName string
	Amount    decimal.Decimal
}

// Allocation is the itemized cost result for a single order.
type Allocation struct {
	Total   decimal.Decimal
	Items   []CostItem
	Clamped int // negative inputs forced to zero
}

var oneHundred = decimal.NewFromInt(100)

// AllocateCost computes the total configured cost for one order. Each
// applicable field contributes its grid value (FIXED) or a percentage of the
// order price; contributions are rounded to 2 decimal places as they are
// produced. Negative prices and values are clamped to zero and counted in
// Clamped rather than poisoning the totals.
func AllocateCost(o Order, status, variant string, fields []CostField) Allocation {
	alloc := Allocation{Total: decimal.Zero}

	price := o.TotalPrice
	if price.IsNegative() {
		price = decimal.Zero
		alloc.Clamped++
	}
	payment := NormalizePayment(o.PaymentMethod)

	for _, f := range fields {
		if !f.AppliesTo(status) {
			continue
		}

		value := f.Values.For(variant, payment)
		if value.IsNegative() {
			value = decimal.Zero
			alloc.Clamped++
		}

		var amount decimal.Decimal
		if f.Calculation == CalcPercentage {
			if f.PercentageType == PercentageIncluded {
				// Extract a fee already embedded in the price: 12% on a 100
				// total yields 10.71, not 12.
				amount = price.Mul(value).Div(oneHundred.Add(value)).Round(2)
			} else {
				amount = price.Mul(value).Div(oneHundred).Round(2)
			}
		} else {
			amount = value.Round(2)
		}

		alloc.Items = append(alloc.Items, CostItem{
			FieldID:   f.ID,
			FieldName: f.Name,
			Amount:    amount,
		})
		alloc.Total = alloc.Total.Add(amount)
	}

	return alloc
}
