package workflow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/exceptionzofficial/akshaya-admin-panel/internal/api"
	"github.com/exceptionzofficial/akshaya-admin-panel/internal/models"
)

// fakeBackend keeps authoritative order state the way the real backend
// does: transitions mutate it, lists read it.
type fakeBackend struct {
	mu     sync.Mutex
	orders map[models.OrderStatus][]models.Order
	riders []models.Rider

	listErr   error
	ridersErr error
	assignErr error
	statusErr error

	assignCalls int
	statusCalls int
	riderCalls  int

	block chan struct{} // when set, UpdateOrderStatus waits on it
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{orders: make(map[models.OrderStatus][]models.Order)}
}

func (f *fakeBackend) OrdersByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Order, len(f.orders[status]))
	copy(out, f.orders[status])
	return out, nil
}

func (f *fakeBackend) AvailableRiders(ctx context.Context) ([]models.Rider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.riderCalls++
	if f.ridersErr != nil {
		return nil, f.ridersErr
	}
	return f.riders, nil
}

func (f *fakeBackend) AssignRider(ctx context.Context, id, riderID, riderName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assignCalls++
	if f.assignErr != nil {
		return f.assignErr
	}
	f.move(id, models.StatusPlaced, models.StatusInProgress, func(o *models.Order) {
		o.RiderID = riderID
		o.RiderName = riderName
	})
	return nil
}

func (f *fakeBackend) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	block := f.block
	if block != nil {
		<-block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	if f.statusErr != nil {
		return f.statusErr
	}
	switch status {
	case models.StatusCancelled:
		f.move(id, models.StatusPlaced, models.StatusCancelled, nil)
	case models.StatusDelivered:
		f.move(id, models.StatusInProgress, models.StatusDelivered, nil)
	}
	return nil
}

func (f *fakeBackend) move(id string, from, to models.OrderStatus, mutate func(*models.Order)) {
	src := f.orders[from]
	for i, o := range src {
		if o.ID == id {
			f.orders[from] = append(src[:i:i], src[i+1:]...)
			o.Status = to
			if mutate != nil {
				mutate(&o)
			}
			f.orders[to] = append(f.orders[to], o)
			return
		}
	}
}

type memNotifier struct {
	mu       sync.Mutex
	oks, bad []string
}

func (n *memNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.oks = append(n.oks, msg)
}

func (n *memNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.bad = append(n.bad, msg)
}

func newController(b *fakeBackend) (*Controller, *memNotifier) {
	n := &memNotifier{}
	return &Controller{Backend: b, Notify: n}, n
}

func contains(orders []models.Order, id string) bool {
	for _, o := range orders {
		if o.ID == id {
			return true
		}
	}
	return false
}

func TestRefreshReplacesSnapshotWholesale(t *testing.T) {
	b := newFakeBackend()
	b.orders[models.StatusPlaced] = []models.Order{{ID: "o1", Status: models.StatusPlaced}}
	c, _ := newController(b)

	got, err := c.Refresh(context.Background(), models.StatusPlaced)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if len(got) != 1 || got[0].ID != "o1" {
		t.Fatalf("unexpected snapshot %+v", got)
	}

	b.mu.Lock()
	b.orders[models.StatusPlaced] = []models.Order{{ID: "o2", Status: models.StatusPlaced}}
	b.mu.Unlock()

	got, err = c.Refresh(context.Background(), models.StatusPlaced)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if len(got) != 1 || got[0].ID != "o2" {
		t.Fatalf("snapshot not replaced, got %+v", got)
	}
}

func TestRefreshKeepsStaleSnapshotOnFailure(t *testing.T) {
	b := newFakeBackend()
	b.orders[models.StatusPlaced] = []models.Order{{ID: "o1", Status: models.StatusPlaced}}
	c, n := newController(b)

	if _, err := c.Refresh(context.Background(), models.StatusPlaced); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	b.mu.Lock()
	b.listErr = errors.New("backend down")
	b.mu.Unlock()

	got, err := c.Refresh(context.Background(), models.StatusPlaced)
	if err == nil {
		t.Fatal("expected error")
	}
	if !contains(got, "o1") {
		t.Fatalf("stale snapshot cleared, got %+v", got)
	}
	if len(n.bad) == 0 {
		t.Fatal("expected an error notice")
	}
}

func TestAcceptAndAssignRequiresFetchedPool(t *testing.T) {
	b := newFakeBackend()
	b.orders[models.StatusPlaced] = []models.Order{{ID: "o1", Status: models.StatusPlaced}}
	b.riders = []models.Rider{{ID: "r1", Name: "Kumar", Status: models.RiderAvailable}}
	c, _ := newController(b)

	// no OpenAssignment yet: the picker never showed r1
	err := c.AcceptAndAssign(context.Background(), "o1", "r1")
	if !errors.Is(err, ErrRiderNotInPool) {
		t.Fatalf("expected ErrRiderNotInPool, got %v", err)
	}
	if b.assignCalls != 0 {
		t.Fatalf("assignment command issued without a fetched pool: %d calls", b.assignCalls)
	}
}

func TestAcceptAndAssignMovesOrderOutOfPlaced(t *testing.T) {
	b := newFakeBackend()
	b.orders[models.StatusPlaced] = []models.Order{{ID: "o1", Status: models.StatusPlaced}}
	b.riders = []models.Rider{{ID: "r1", Name: "Kumar", Status: models.RiderAvailable}}
	c, n := newController(b)
	ctx := context.Background()

	if _, err := c.Refresh(ctx, models.StatusPlaced); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if _, err := c.OpenAssignment(ctx); err != nil {
		t.Fatalf("open assignment: %v", err)
	}
	if err := c.AcceptAndAssign(ctx, "o1", "r1"); err != nil {
		t.Fatalf("assign: %v", err)
	}

	if contains(c.Snapshot(models.StatusPlaced), "o1") {
		t.Fatal("o1 still listed as placed after assignment")
	}
	inProgress, err := c.Refresh(ctx, models.StatusInProgress)
	if err != nil {
		t.Fatalf("refresh inProgress: %v", err)
	}
	if len(inProgress) != 1 || inProgress[0].RiderID != "r1" {
		t.Fatalf("expected o1 in progress with rider r1, got %+v", inProgress)
	}
	if len(n.oks) == 0 || n.oks[0] != "Order assigned to Kumar" {
		t.Fatalf("unexpected notices %v", n.oks)
	}
}

func TestAssignFailureRefetchesPool(t *testing.T) {
	b := newFakeBackend()
	b.orders[models.StatusPlaced] = []models.Order{{ID: "o1", Status: models.StatusPlaced}}
	b.riders = []models.Rider{{ID: "r1", Name: "Kumar", Status: models.RiderAvailable}}
	c, n := newController(b)
	ctx := context.Background()

	if _, err := c.OpenAssignment(ctx); err != nil {
		t.Fatalf("open assignment: %v", err)
	}
	poolFetches := b.riderCalls

	b.mu.Lock()
	b.assignErr = &api.RemoteError{Status: 409, Message: "rider no longer available"}
	b.mu.Unlock()

	if err := c.AcceptAndAssign(ctx, "o1", "r1"); err == nil {
		t.Fatal("expected assignment failure")
	}
	if b.riderCalls <= poolFetches {
		t.Fatal("pool not re-fetched after failed assignment")
	}
	// backend's own message is surfaced, not the generic fallback
	if len(n.bad) == 0 || n.bad[0] != "rider no longer available" {
		t.Fatalf("unexpected error notices %v", n.bad)
	}
}

func TestCancelIssuesNothingWithoutConfirmation(t *testing.T) {
	b := newFakeBackend()
	b.orders[models.StatusPlaced] = []models.Order{{ID: "o1", Status: models.StatusPlaced}}
	c, _ := newController(b)

	token, err := c.RequestCancel("o1")
	if err != nil {
		t.Fatalf("request cancel: %v", err)
	}
	c.DeclineCancel(token)

	if b.statusCalls != 0 {
		t.Fatalf("cancel command issued despite decline: %d calls", b.statusCalls)
	}
	if err := c.ConfirmCancel(context.Background(), token); !errors.Is(err, ErrUnknownToken) {
		t.Fatalf("declined token still confirmable: %v", err)
	}
	if b.statusCalls != 0 {
		t.Fatalf("declined confirmation reached the backend: %d calls", b.statusCalls)
	}
}

func TestConfirmedCancelRemovesOrderFromPlaced(t *testing.T) {
	b := newFakeBackend()
	b.orders[models.StatusPlaced] = []models.Order{{ID: "o1", Status: models.StatusPlaced}}
	c, _ := newController(b)
	ctx := context.Background()

	if _, err := c.Refresh(ctx, models.StatusPlaced); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	token, err := c.RequestCancel("o1")
	if err != nil {
		t.Fatalf("request cancel: %v", err)
	}
	if err := c.ConfirmCancel(ctx, token); err != nil {
		t.Fatalf("confirm cancel: %v", err)
	}
	if contains(c.Snapshot(models.StatusPlaced), "o1") {
		t.Fatal("cancelled order still listed as placed")
	}
	// tokens are one-shot
	if err := c.ConfirmCancel(ctx, token); !errors.Is(err, ErrUnknownToken) {
		t.Fatalf("token reusable: %v", err)
	}
}

func TestMarkDeliveredRemovesOrderFromInProgress(t *testing.T) {
	b := newFakeBackend()
	b.orders[models.StatusInProgress] = []models.Order{{ID: "o2", Status: models.StatusInProgress, RiderID: "r1"}}
	c, _ := newController(b)
	ctx := context.Background()

	if _, err := c.Refresh(ctx, models.StatusInProgress); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if err := c.MarkDelivered(ctx, "o2"); err != nil {
		t.Fatalf("mark delivered: %v", err)
	}
	if contains(c.Snapshot(models.StatusInProgress), "o2") {
		t.Fatal("delivered order still listed as in progress")
	}
}

func TestTerminalRejectionSurfacesAsNotice(t *testing.T) {
	b := newFakeBackend()
	b.statusErr = &api.RemoteError{Status: 422, Message: "order already delivered"}
	c, n := newController(b)

	err := c.MarkDelivered(context.Background(), "o2")
	if err == nil {
		t.Fatal("expected rejection")
	}
	if !api.IsRemote(err) {
		t.Fatalf("expected application rejection, got %v", err)
	}
	if len(n.bad) != 1 || n.bad[0] != "order already delivered" {
		t.Fatalf("unexpected notices %v", n.bad)
	}
}

func TestDoubleSubmitIsRejectedLocally(t *testing.T) {
	b := newFakeBackend()
	b.orders[models.StatusInProgress] = []models.Order{{ID: "o2", Status: models.StatusInProgress}}
	b.block = make(chan struct{})
	c, _ := newController(b)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- c.MarkDelivered(ctx, "o2") }()

	// wait for the first transition to reach the backend and park there
	for {
		c.mu.Lock()
		_, busy := c.inflight["o2"]
		c.mu.Unlock()
		if busy {
			break
		}
		time.Sleep(time.Millisecond)
	}

	if err := c.MarkDelivered(ctx, "o2"); !errors.Is(err, ErrInFlight) {
		t.Fatalf("expected ErrInFlight, got %v", err)
	}

	close(b.block)
	if err := <-done; err != nil {
		t.Fatalf("first transition failed: %v", err)
	}
	if b.statusCalls != 1 {
		t.Fatalf("duplicate command reached the backend: %d calls", b.statusCalls)
	}
}
