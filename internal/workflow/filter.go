package workflow

import (
	"strings"

	"github.com/exceptionzofficial/akshaya-admin-panel/internal/models"
)

// FilterOrders narrows an already-fetched snapshot to orders whose
// customer name or id contains query, case-insensitively. It is pure and
// never touches the backend; an empty query returns the input unchanged.
func FilterOrders(orders []models.Order, query string) []models.Order {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return orders
	}
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if strings.Contains(strings.ToLower(o.Customer.Name), q) ||
			strings.Contains(strings.ToLower(o.ID), q) {
			out = append(out, o)
		}
	}
	return out
}
