package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/exceptionzofficial/akshaya-admin-panel/internal/models"
)

// AvailableRiders returns the riders the backend considers assignable
// right now. Availability is time-sensitive, so callers must not cache
// the result across user interactions.
func (c *Client) AvailableRiders(ctx context.Context) ([]models.Rider, error) {
	var data struct {
		Riders []models.Rider `json:"riders"`
	}
	if err := c.do(ctx, "available_riders", http.MethodGet, "/riders/available", nil, &data); err != nil {
		return nil, err
	}
	return data.Riders, nil
}

// Riders lists all riders, optionally narrowed to one status.
func (c *Client) Riders(ctx context.Context, status models.RiderStatus) ([]models.Rider, error) {
	path := "/riders"
	if status != "" {
		path += "?status=" + url.QueryEscape(string(status))
	}
	var data struct {
		Riders []models.Rider `json:"riders"`
	}
	if err := c.do(ctx, "riders", http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}
	return data.Riders, nil
}

func (c *Client) RiderStats(ctx context.Context) (models.RiderStats, error) {
	var data models.RiderStats
	if err := c.do(ctx, "rider_stats", http.MethodGet, "/riders/stats", nil, &data); err != nil {
		return models.RiderStats{}, err
	}
	return data, nil
}

func (c *Client) CreateRider(ctx context.Context, r models.Rider) (models.Rider, error) {
	var data struct {
		Rider models.Rider `json:"rider"`
	}
	if err := c.do(ctx, "create_rider", http.MethodPost, "/riders", r, &data); err != nil {
		return models.Rider{}, err
	}
	return data.Rider, nil
}

// UpdateRiderStatus flips a rider's availability. currentOrderID travels
// along when the rider is being put on delivery.
func (c *Client) UpdateRiderStatus(ctx context.Context, id string, status models.RiderStatus, currentOrderID string) error {
	body := map[string]any{"status": string(status)}
	if currentOrderID != "" {
		body["currentOrderId"] = currentOrderID
	}
	return c.do(ctx, "update_rider_status", http.MethodPatch, "/riders/"+url.PathEscape(id)+"/status", body, nil)
}

func (c *Client) DeleteRider(ctx context.Context, id string) error {
	return c.do(ctx, "delete_rider", http.MethodDelete, "/riders/"+url.PathEscape(id), nil, nil)
}
