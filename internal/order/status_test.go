package order

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/revline/revline/internal/domain"
)

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(domain.OrderStatusPending))
	assert.True(t, ValidStatus(domain.OrderStatusCancelled))
	assert.False(t, ValidStatus("refunded"))
	assert.False(t, ValidStatus(""))
}

func TestCanTransitionHappyPath(t *testing.T) {
	path := []string{
		domain.OrderStatusPending,
		domain.OrderStatusPaid,
		domain.OrderStatusProcessing,
		domain.OrderStatusShipped,
		domain.OrderStatusDelivered,
	}
	for i := 0; i < len(path)-1; i++ {
		assert.True(t, CanTransition(path[i], path[i+1]), "%s -> %s", path[i], path[i+1])
	}
}

func TestCanTransitionCancellation(t *testing.T) {
	assert.True(t, CanTransition(domain.OrderStatusPending, domain.OrderStatusCancelled))
	assert.True(t, CanTransition(domain.OrderStatusPaid, domain.OrderStatusCancelled))
	assert.True(t, CanTransition(domain.OrderStatusProcessing, domain.OrderStatusCancelled))
	// Once shipped, cancellation is off the table.
	assert.False(t, CanTransition(domain.OrderStatusShipped, domain.OrderStatusCancelled))
	assert.False(t, CanTransition(domain.OrderStatusDelivered, domain.OrderStatusCancelled))
}

func TestCanTransitionNoSkipsOrReversals(t *testing.T) {
	assert.False(t, CanTransition(domain.OrderStatusPending, domain.OrderStatusShipped))
	assert.False(t, CanTransition(domain.OrderStatusPaid, domain.OrderStatusPending))
	assert.False(t, CanTransition(domain.OrderStatusDelivered, domain.OrderStatusShipped))
	assert.False(t, CanTransition(domain.OrderStatusCancelled, domain.OrderStatusPending))
}
