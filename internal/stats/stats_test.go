package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/exceptionzofficial/akshaya-admin-panel/internal/models"
)

type fakeStatsBackend struct {
	orderStatsErr error
	orders        []models.Order
	calls         int
}

func (f *fakeStatsBackend) OrderStats(ctx context.Context) (models.OrderStats, error) {
	f.calls++
	if f.orderStatsErr != nil {
		return models.OrderStats{}, f.orderStatsErr
	}
	return models.OrderStats{Total: 12, Placed: 3}, nil
}

func (f *fakeStatsBackend) RiderStats(ctx context.Context) (models.RiderStats, error) {
	return models.RiderStats{Total: 4, Available: 2}, nil
}

func (f *fakeStatsBackend) UserStats(ctx context.Context) (models.UserStats, error) {
	return models.UserStats{Total: 20}, nil
}

func (f *fakeStatsBackend) Packages(ctx context.Context) ([]models.MenuPackage, error) {
	return []models.MenuPackage{{ID: "p1"}}, nil
}

func (f *fakeStatsBackend) Singles(ctx context.Context, includeHidden bool) ([]models.SingleMeal, error) {
	return []models.SingleMeal{{ID: "s1"}, {ID: "s2"}}, nil
}

func (f *fakeStatsBackend) Orders(ctx context.Context) ([]models.Order, error) {
	return f.orders, nil
}

func TestSummaryAggregatesAndCaches(t *testing.T) {
	b := &fakeStatsBackend{orders: []models.Order{{ID: "o1"}, {ID: "o2"}}}
	s := &Service{Backend: b, Cache: NewMemoryCache(time.Minute)}

	sum := s.Summary(context.Background())
	if sum.Orders.Total != 12 || sum.Riders.Available != 2 || sum.Packages != 1 || sum.Singles != 2 {
		t.Fatalf("unexpected summary %+v", sum)
	}
	if len(sum.RecentOrders) != 2 {
		t.Fatalf("expected 2 recent orders, got %d", len(sum.RecentOrders))
	}

	// second read comes from cache, not the backend
	_ = s.Summary(context.Background())
	if b.calls != 1 {
		t.Fatalf("expected 1 backend aggregation, got %d", b.calls)
	}
}

func TestSummaryTruncatesRecentOrders(t *testing.T) {
	b := &fakeStatsBackend{}
	for i := 0; i < 9; i++ {
		b.orders = append(b.orders, models.Order{ID: string(rune('a' + i))})
	}
	s := &Service{Backend: b}

	sum := s.Summary(context.Background())
	if len(sum.RecentOrders) != recentOrdersShown {
		t.Fatalf("expected %d recent orders, got %d", recentOrdersShown, len(sum.RecentOrders))
	}
}

func TestSummaryToleratesPartialFailure(t *testing.T) {
	b := &fakeStatsBackend{orderStatsErr: errors.New("backend down")}
	s := &Service{Backend: b}

	sum := s.Summary(context.Background())
	if sum.Orders.Total != 0 {
		t.Fatalf("failed counter should stay zero, got %+v", sum.Orders)
	}
	if sum.Riders.Total != 4 {
		t.Fatalf("healthy counters should survive, got %+v", sum.Riders)
	}
}

func TestMemoryCacheExpires(t *testing.T) {
	c := NewMemoryCache(10 * time.Millisecond)
	c.Set(context.Background(), Summary{Packages: 7})

	if got, ok := c.Get(context.Background()); !ok || got.Packages != 7 {
		t.Fatalf("expected fresh hit, got ok=%v %+v", ok, got)
	}
	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get(context.Background()); ok {
		t.Fatal("expected expiry")
	}
}
