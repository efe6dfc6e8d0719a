package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToOrderStatus(t *testing.T) {
	for _, status := range OrderStatuses() {
		t.Run(string(status), func(t *testing.T) {
			got, err := ToOrderStatus(string(status))
			require.NoError(t, err)
			assert.Equal(t, status, got)
		})
	}

	invalid := []string{"", "Pending", "all", "delivered", " served"}
	for _, value := range invalid {
		t.Run("invalid "+value, func(t *testing.T) {
			_, err := ToOrderStatus(value)
			assert.Error(t, err)
		})
	}
}

func TestToPaymentStatus(t *testing.T) {
	got, err := ToPaymentStatus("paid")
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusPaid, got)

	got, err = ToPaymentStatus("unpaid")
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusUnpaid, got)

	_, err = ToPaymentStatus("refunded")
	assert.EqualError(t, err, `invalid payment status "refunded"`)
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "Pending", OrderStatusPending.Label())
	assert.Equal(t, "Cancelled", OrderStatusCancelled.Label())
	assert.Equal(t, "Paid", PaymentStatusPaid.Label())
	assert.Equal(t, "Unpaid", PaymentStatusUnpaid.Label())

	// unknown values fall back to the raw value
	assert.Equal(t, "mystery", OrderStatus("mystery").Label())
	assert.Equal(t, "mystery", PaymentStatus("mystery").Label())

	for _, status := range OrderStatuses() {
		assert.NotEqual(t, string(status), status.Label(), "every status needs a label")
	}
}

func TestOrderStatusIsTerminal(t *testing.T) {
	terminal := map[OrderStatus]bool{
		OrderStatusCompleted: true,
		OrderStatusCancelled: true,
	}
	for _, status := range OrderStatuses() {
		assert.Equal(t, terminal[status], status.IsTerminal(), string(status))
	}
}

func TestStatusEnumerations(t *testing.T) {
	assert.Len(t, OrderStatuses(), 6)
	assert.Equal(t, []PaymentStatus{PaymentStatusUnpaid, PaymentStatusPaid}, PaymentStatuses())
}
