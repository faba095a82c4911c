package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/exceptionzofficial/akshaya-admin-panel/internal/models"
)

// Package meals: day-scheduled menu entries.

func (c *Client) Packages(ctx context.Context) ([]models.MenuPackage, error) {
	var data struct {
		Packages []models.MenuPackage `json:"packages"`
	}
	if err := c.do(ctx, "packages", http.MethodGet, "/packages", nil, &data); err != nil {
		return nil, err
	}
	return data.Packages, nil
}

func (c *Client) PackagesByDay(ctx context.Context, day, mealType string) ([]models.MenuPackage, error) {
	path := "/packages/day/" + url.PathEscape(day)
	if mealType != "" {
		path += "?mealType=" + url.QueryEscape(mealType)
	}
	var data struct {
		Packages []models.MenuPackage `json:"packages"`
	}
	if err := c.do(ctx, "packages_by_day", http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}
	return data.Packages, nil
}

func (c *Client) CreatePackage(ctx context.Context, p models.MenuPackage) (models.MenuPackage, error) {
	var data struct {
		Package models.MenuPackage `json:"package"`
	}
	if err := c.do(ctx, "create_package", http.MethodPost, "/packages", p, &data); err != nil {
		return models.MenuPackage{}, err
	}
	return data.Package, nil
}

func (c *Client) UpdatePackage(ctx context.Context, id string, p models.MenuPackage) error {
	return c.do(ctx, "update_package", http.MethodPut, "/packages/"+url.PathEscape(id), p, nil)
}

func (c *Client) DeletePackage(ctx context.Context, id string) error {
	return c.do(ctx, "delete_package", http.MethodDelete, "/packages/"+url.PathEscape(id), nil, nil)
}

// Single meals: always-on menu entries grouped by category.

func (c *Client) Singles(ctx context.Context, includeHidden bool) ([]models.SingleMeal, error) {
	path := fmt.Sprintf("/singles?includeHidden=%t", includeHidden)
	var data struct {
		Singles []models.SingleMeal `json:"singles"`
	}
	if err := c.do(ctx, "singles", http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}
	return data.Singles, nil
}

func (c *Client) SingleCategories(ctx context.Context) ([]string, error) {
	var data struct {
		Categories []string `json:"categories"`
	}
	if err := c.do(ctx, "single_categories", http.MethodGet, "/singles/categories", nil, &data); err != nil {
		return nil, err
	}
	return data.Categories, nil
}

func (c *Client) CreateSingle(ctx context.Context, m models.SingleMeal) (models.SingleMeal, error) {
	var data struct {
		Single models.SingleMeal `json:"single"`
	}
	if err := c.do(ctx, "create_single", http.MethodPost, "/singles", m, &data); err != nil {
		return models.SingleMeal{}, err
	}
	return data.Single, nil
}

func (c *Client) UpdateSingle(ctx context.Context, id string, m models.SingleMeal) error {
	return c.do(ctx, "update_single", http.MethodPut, "/singles/"+url.PathEscape(id), m, nil)
}

func (c *Client) SetSingleVisibility(ctx context.Context, id string, visible bool) error {
	body := map[string]bool{"isVisible": visible}
	return c.do(ctx, "single_visibility", http.MethodPatch, "/singles/"+url.PathEscape(id)+"/visibility", body, nil)
}

func (c *Client) DeleteSingle(ctx context.Context, id string) error {
	return c.do(ctx, "delete_single", http.MethodDelete, "/singles/"+url.PathEscape(id), nil, nil)
}
