package engine_test

import (
	"testing"
	"time"

	"podboard/internal/engine"

	"github.com/stretchr/testify/assert"
)

func TestDetectVariant(t *testing.T) {
	tests := []struct {
		name  string
		items []engine.LineItem
		want  string
	}{
		{
			name:  "no items defaults to small",
			items: nil,
			want:  engine.VariantSmall,
		},
		{
			name:  "plain title is small",
			items: []engine.LineItem{{Title: "Custom Poster", VariantTitle: "A4", Quantity: 1}},
			want:  engine.VariantSmall,
		},
		{
			name:  "large in variant title",
			items: []engine.LineItem{{Title: "Custom Poster", VariantTitle: "Large / Matte", Quantity: 1}},
			want:  engine.VariantLarge,
		},
		{
			name:  "large in product title, case insensitive",
			items: []engine.LineItem{{Title: "EXTRA LARGE canvas", Quantity: 2}},
			want:  engine.VariantLarge,
		},
		{
			name: "one large line makes the order large",
			items: []engine.LineItem{
				{Title: "Poster", VariantTitle: "Small", Quantity: 3},
				{Title: "Poster", VariantTitle: "large", Quantity: 1},
			},
			want: engine.VariantLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.DetectVariant(tt.items))
		})
	}
}

func TestStoreDate_BucketsIntoStoreCalendar(t *testing.T) {
	// 20:00 UTC is already the next day in IST (+05:30).
	utcEvening := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-05-02", engine.StoreDate(utcEvening))

	utcMorning := time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-05-01", engine.StoreDate(utcMorning))
}

func TestMonthOf(t *testing.T) {
	assert.Equal(t, "2024-05", engine.MonthOf("2024-05-02"))
}
