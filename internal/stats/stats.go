package stats

import (
	"context"
	"log/slog"
	"time"

	"github.com/exceptionzofficial/akshaya-admin-panel/internal/models"
)

// Summary is the aggregated landing-page view: order, rider and user
// counters plus menu sizes and the five most recent orders.
type Summary struct {
	Orders       models.OrderStats `json:"orders"`
	Riders       models.RiderStats `json:"riders"`
	Users        models.UserStats  `json:"users"`
	Packages     int               `json:"packages"`
	Singles      int               `json:"singles"`
	RecentOrders []models.Order    `json:"recentOrders"`
	FetchedAt    time.Time         `json:"fetchedAt"`
}

// Backend is the slice of the delivery API the aggregator reads from.
type Backend interface {
	OrderStats(ctx context.Context) (models.OrderStats, error)
	RiderStats(ctx context.Context) (models.RiderStats, error)
	UserStats(ctx context.Context) (models.UserStats, error)
	Packages(ctx context.Context) ([]models.MenuPackage, error)
	Singles(ctx context.Context, includeHidden bool) ([]models.SingleMeal, error)
	Orders(ctx context.Context) ([]models.Order, error)
}

// Service builds dashboard summaries. Each sub-fetch is best-effort: a
// failing counter is logged and left at its zero value so one slow
// backend corner never blanks the whole landing page.
type Service struct {
	Backend Backend
	Cache   Cache
	Logger  *slog.Logger
}

const recentOrdersShown = 5

func (s *Service) Summary(ctx context.Context) Summary {
	if s.Cache != nil {
		if cached, ok := s.Cache.Get(ctx); ok {
			return cached
		}
	}

	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var sum Summary
	var err error
	if sum.Orders, err = s.Backend.OrderStats(ctx); err != nil {
		logger.Warn("order stats unavailable", "error", err)
	}
	if sum.Riders, err = s.Backend.RiderStats(ctx); err != nil {
		logger.Warn("rider stats unavailable", "error", err)
	}
	if sum.Users, err = s.Backend.UserStats(ctx); err != nil {
		logger.Warn("user stats unavailable", "error", err)
	}
	if pkgs, err := s.Backend.Packages(ctx); err != nil {
		logger.Warn("packages unavailable", "error", err)
	} else {
		sum.Packages = len(pkgs)
	}
	if singles, err := s.Backend.Singles(ctx, true); err != nil {
		logger.Warn("singles unavailable", "error", err)
	} else {
		sum.Singles = len(singles)
	}
	if orders, err := s.Backend.Orders(ctx); err != nil {
		logger.Warn("recent orders unavailable", "error", err)
	} else {
		n := recentOrdersShown
		if n > len(orders) {
			n = len(orders)
		}
		sum.RecentOrders = orders[:n]
	}
	sum.FetchedAt = time.Now().UTC()

	if s.Cache != nil {
		s.Cache.Set(ctx, sum)
	}
	return sum
}
