package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"carshop/internal/domain"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to domain.OrderStatus
		ok       bool
	}{
		{domain.OrderPending, domain.OrderConfirmed, true},
		{domain.OrderPending, domain.OrderCancelled, true},
		{domain.OrderPending, domain.OrderCompleted, false},
		{domain.OrderConfirmed, domain.OrderCompleted, true},
		{domain.OrderConfirmed, domain.OrderCancelled, true},
		{domain.OrderConfirmed, domain.OrderPending, false},
		{domain.OrderCompleted, domain.OrderCancelled, false},
		{domain.OrderCompleted, domain.OrderPending, false},
		{domain.OrderCancelled, domain.OrderPending, false},
		{domain.OrderCancelled, domain.OrderConfirmed, false},
		{domain.OrderCompleted, domain.OrderCompleted, true},
		{domain.OrderPending, domain.OrderStatus("shipped"), false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.ok, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatusCancellable(t *testing.T) {
	assert.True(t, domain.OrderPending.Cancellable())
	assert.True(t, domain.OrderConfirmed.Cancellable())
	assert.False(t, domain.OrderCompleted.Cancellable())
	assert.False(t, domain.OrderCancelled.Cancellable())
}
