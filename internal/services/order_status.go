package services

import (
	"strings"

	"github.com/MelaShop/Mela-Shop-bd/internal/model"
)

// statusTransitions lists where each status may move to. Orders only move
// forward and Delivered is terminal.
var statusTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending:   {model.OrderStatusConfirmed, model.OrderStatusShipped, model.OrderStatusDelivered},
	model.OrderStatusConfirmed: {model.OrderStatusShipped, model.OrderStatusDelivered},
	model.OrderStatusShipped:   {model.OrderStatusDelivered},
	model.OrderStatusDelivered: {},
}

// CanTransition reports whether an order in status from may be set to to.
// Re-applying the current status is always allowed.
func CanTransition(from, to model.OrderStatus) bool {
	if from == to {
		_, known := statusTransitions[from]
		return known
	}
	for _, s := range statusTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ParseOrderStatus maps user input onto a known status, ignoring case.
func ParseOrderStatus(s string) (model.OrderStatus, error) {
	s = strings.TrimSpace(s)
	for _, st := range model.OrderStatuses {
		if strings.EqualFold(string(st), s) {
			return st, nil
		}
	}
	return "", ErrInvalidStatus
}
