package order

import "github.com/revline/revline/internal/domain"

// statusTransitions is the order lifecycle: the happy path moves forward
// one hop at a time; cancellation is possible until the parcel ships.
var statusTransitions = map[string][]string{
	domain.OrderStatusPending:    {domain.OrderStatusPaid, domain.OrderStatusCancelled},
	domain.OrderStatusPaid:       {domain.OrderStatusProcessing, domain.OrderStatusCancelled},
	domain.OrderStatusProcessing: {domain.OrderStatusShipped, domain.OrderStatusCancelled},
	domain.OrderStatusShipped:    {domain.OrderStatusDelivered},
	domain.OrderStatusDelivered:  {},
	domain.OrderStatusCancelled:  {},
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransition reports whether an order may move from one status to
// another.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
