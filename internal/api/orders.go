package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/exceptionzofficial/akshaya-admin-panel/internal/models"
)

// OrdersByStatus lists orders in one lifecycle state, in backend order.
// The result is passed through as returned; no client-side re-sorting
// or re-filtering happens here.
func (c *Client) OrdersByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	var data struct {
		Orders []models.Order `json:"orders"`
	}
	if err := c.do(ctx, "orders_by_status", http.MethodGet, "/orders/status/"+url.PathEscape(string(status)), nil, &data); err != nil {
		return nil, err
	}
	return data.Orders, nil
}

// Orders lists every order regardless of status.
func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	var data struct {
		Orders []models.Order `json:"orders"`
	}
	if err := c.do(ctx, "orders", http.MethodGet, "/orders", nil, &data); err != nil {
		return nil, err
	}
	return data.Orders, nil
}

func (c *Client) Order(ctx context.Context, id string) (models.Order, error) {
	var data struct {
		Order models.Order `json:"order"`
	}
	if err := c.do(ctx, "order", http.MethodGet, "/orders/"+url.PathEscape(id), nil, &data); err != nil {
		return models.Order{}, err
	}
	return data.Order, nil
}

func (c *Client) OrderStats(ctx context.Context) (models.OrderStats, error) {
	var data models.OrderStats
	if err := c.do(ctx, "order_stats", http.MethodGet, "/orders/stats", nil, &data); err != nil {
		return models.OrderStats{}, err
	}
	return data, nil
}

// UpdateOrderStatus moves an order along the pipeline. Whether the
// transition is legal for the order's current state is the backend's call;
// an illegal one comes back as a *RemoteError.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	body := map[string]string{"status": string(status)}
	return c.do(ctx, "update_order_status", http.MethodPatch, "/orders/"+url.PathEscape(id)+"/status", body, nil)
}

// AssignRider binds a rider to a placed order, moving it to inProgress on
// the backend.
func (c *Client) AssignRider(ctx context.Context, id, riderID, riderName string) error {
	body := map[string]string{"riderId": riderID, "riderName": riderName}
	return c.do(ctx, "assign_rider", http.MethodPatch, "/orders/"+url.PathEscape(id)+"/assign", body, nil)
}
