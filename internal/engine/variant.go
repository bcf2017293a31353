package engine

import "strings"

// Variant enum constants
const (
	VariantSmall = "SMALL"
	VariantLarge = "LARGE"
)

// DetectVariant infers the product variant from the order's line items: any
// line whose product title or variant title contains "large" makes the whole
// order LARGE, otherwise it is SMALL (orders with no lines included).
//
// This is a deliberate keyword heuristic, not a catalog lookup — the store
// sells exactly two print sizes and names them consistently.
func DetectVariant(items []LineItem) string {
	for _, item := range items {
		if containsLarge(item.Title) || containsLarge(item.VariantTitle) {
			return VariantLarge
		}
	}
	return VariantSmall
}

func containsLarge(s string) bool {
	return strings.Contains(strings.ToLower(s), "large")
}
