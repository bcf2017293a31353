package engine_test

import (
	"testing"
	"time"

	"podboard/internal/engine"

	"github.com/stretchr/testify/assert"
)

func TestClassify_RTOOverrideBeatsDelivered(t *testing.T) {
	// Operator marked the order RTO; the courier still says delivered.
	order := engine.Order{ID: "1001", DeliveryStatus: "Delivered"}
	rto := map[string]bool{"1001": true}

	assert.Equal(t, engine.StatusFailed, engine.Classify(order, rto))
}

func TestClassify_FailureText(t *testing.T) {
	cases := map[string]string{
		"failure":            engine.StatusFailed,
		"Failure":            engine.StatusFailed,
		"delivery failed":    engine.StatusFailed,
		"RTO initiated":      engine.StatusFailed,
		"rto_delivered":      engine.StatusFailed,
		"delivered":          engine.StatusDelivered,
		"Delivered":          engine.StatusDelivered,
		"  delivered  ":      engine.StatusDelivered,
		"out for delivery":   engine.StatusPending,
		"in transit":         engine.StatusPending,
		"":                   engine.StatusPending,
		"some novel courier": engine.StatusPending,
	}

	for ds, want := range cases {
		order := engine.Order{ID: "o", DeliveryStatus: ds, PaymentMethod: "cod"}
		assert.Equal(t, want, engine.Classify(order, nil), "delivery status %q", ds)
	}
}

func TestClassify_PrepaidShortcut(t *testing.T) {
	// An undelivered prepaid order counts as delivered: the money is captured.
	order := engine.Order{ID: "o", DeliveryStatus: "in transit", PaymentMethod: "Prepaid"}
	assert.Equal(t, engine.StatusDelivered, engine.Classify(order, nil))

	// But failure text still wins over the shortcut.
	order.DeliveryStatus = "rto in transit"
	assert.Equal(t, engine.StatusFailed, engine.Classify(order, nil))
}

func TestClassify_Totality(t *testing.T) {
	// Every combination lands on exactly one of the three statuses.
	statuses := []string{"", "delivered", "failure", "shipped", "weird-status", "failed attempt"}
	payments := []string{"", "cod", "prepaid", "PrePaid", "upi"}

	for _, ds := range statuses {
		for _, pm := range payments {
			order := engine.Order{ID: "o", PlacedAt: time.Now(), DeliveryStatus: ds, PaymentMethod: pm}
			got := engine.Classify(order, nil)
			assert.Contains(t,
				[]string{engine.StatusDelivered, engine.StatusFailed, engine.StatusPending},
				got, "ds=%q pm=%q", ds, pm)
		}
	}
}

func TestIsFinal(t *testing.T) {
	assert.True(t, engine.IsFinal(engine.StatusDelivered))
	assert.True(t, engine.IsFinal(engine.StatusFailed))
	assert.False(t, engine.IsFinal(engine.StatusPending))
}

func TestNormalizePayment(t *testing.T) {
	assert.Equal(t, engine.PaymentPrepaid, engine.NormalizePayment("prepaid"))
	assert.Equal(t, engine.PaymentPrepaid, engine.NormalizePayment("  PREPAID "))
	assert.Equal(t, engine.PaymentCOD, engine.NormalizePayment("cod"))
	assert.Equal(t, engine.PaymentCOD, engine.NormalizePayment(""))
	assert.Equal(t, engine.PaymentCOD, engine.NormalizePayment("upi"))
}
