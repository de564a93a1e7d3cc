package services

import (
	"github.com/lehar2932-art/tiffin-testing/entity"
)

// transition defines one allowed status change and which role may perform it.
// Ownership (consumer of the order / owner of the provider) is checked by the
// order service before this table is consulted; admins skip ownership.
type transition struct {
	From string
	To   string
	Role string
}

var orderTransitions = []transition{
	// Provider works the order through the kitchen.
	{entity.OrderPending, entity.OrderConfirmed, entity.RoleProvider},
	{entity.OrderConfirmed, entity.OrderPreparing, entity.RoleProvider},
	{entity.OrderPreparing, entity.OrderReady, entity.RoleProvider},
	{entity.OrderReady, entity.OrderDelivered, entity.RoleProvider},
	// Either side may cancel before delivery.
	{entity.OrderPending, entity.OrderCancelled, entity.RoleProvider},
	{entity.OrderConfirmed, entity.OrderCancelled, entity.RoleProvider},
	{entity.OrderPreparing, entity.OrderCancelled, entity.RoleProvider},
	{entity.OrderReady, entity.OrderCancelled, entity.RoleProvider},
	{entity.OrderPending, entity.OrderCancelled, entity.RoleConsumer},
	{entity.OrderConfirmed, entity.OrderCancelled, entity.RoleConsumer},
	{entity.OrderPreparing, entity.OrderCancelled, entity.RoleConsumer},
	{entity.OrderReady, entity.OrderCancelled, entity.RoleConsumer},
	// Admin may drive any edge of the machine.
	{entity.OrderPending, entity.OrderConfirmed, entity.RoleAdmin},
	{entity.OrderConfirmed, entity.OrderPreparing, entity.RoleAdmin},
	{entity.OrderPreparing, entity.OrderReady, entity.RoleAdmin},
	{entity.OrderReady, entity.OrderDelivered, entity.RoleAdmin},
	{entity.OrderPending, entity.OrderCancelled, entity.RoleAdmin},
	{entity.OrderConfirmed, entity.OrderCancelled, entity.RoleAdmin},
	{entity.OrderPreparing, entity.OrderCancelled, entity.RoleAdmin},
	{entity.OrderReady, entity.OrderCancelled, entity.RoleAdmin},
}

type transitionKey struct {
	From string
	To   string
	Role string
}

var transitionSet = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool, len(orderTransitions))
	for _, t := range orderTransitions {
		m[transitionKey{t.From, t.To, t.Role}] = true
	}
	return m
}()

// CanTransition reports whether role may move an order from -> to.
func CanTransition(from, to, role string) bool {
	return transitionSet[transitionKey{from, to, role}]
}

// NextStatuses lists the statuses role may set from the given one.
func NextStatuses(from, role string) []string {
	var out []string
	for _, t := range orderTransitions {
		if t.From == from && t.Role == role {
			out = append(out, t.To)
		}
	}
	return out
}
