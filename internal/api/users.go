package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/exceptionzofficial/akshaya-admin-panel/internal/models"
)

func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var data struct {
		Users []models.User `json:"users"`
	}
	if err := c.do(ctx, "users", http.MethodGet, "/users", nil, &data); err != nil {
		return nil, err
	}
	return data.Users, nil
}

func (c *Client) UserStats(ctx context.Context) (models.UserStats, error) {
	var data models.UserStats
	if err := c.do(ctx, "user_stats", http.MethodGet, "/users/stats", nil, &data); err != nil {
		return models.UserStats{}, err
	}
	return data, nil
}

// SetUserActive activates or deactivates a customer account.
func (c *Client) SetUserActive(ctx context.Context, phone string, active bool) error {
	body := map[string]bool{"isActive": active}
	return c.do(ctx, "set_user_active", http.MethodPatch, "/users/"+url.PathEscape(phone)+"/status", body, nil)
}
