package workflow

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/exceptionzofficial/akshaya-admin-panel/internal/audit"
	"github.com/exceptionzofficial/akshaya-admin-panel/internal/models"
	"github.com/exceptionzofficial/akshaya-admin-panel/internal/observability"
)

// Backend is the slice of the delivery API the controller drives.
type Backend interface {
	OrdersByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error)
	AvailableRiders(ctx context.Context) ([]models.Rider, error)
	AssignRider(ctx context.Context, id, riderID, riderName string) error
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error
}

// Notifier surfaces transient operator notices (the toast equivalent).
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// EventPublisher streams successful transitions to downstream consumers.
type EventPublisher interface {
	PublishTransition(ctx context.Context, ev models.TransitionEvent) error
}

// PaymentReleaser releases an online payment hold when an order is
// cancelled before delivery.
type PaymentReleaser interface {
	Release(ctx context.Context, paymentRef string) error
}

// Controller owns the client-visible order lifecycle. It keeps one
// in-memory snapshot per status tab, replaced wholesale on each
// successful fetch, and never locally patches an order: after every
// transition it re-queries the affected list so the rendered state always
// matches a fresh server read.
//
// Audit, Events and Payments are optional collaborators; a nil value
// disables that concern.
type Controller struct {
	Backend  Backend
	Notify   Notifier
	Audit    audit.Recorder
	Events   EventPublisher
	Payments PaymentReleaser
	Logger   *slog.Logger

	mu        sync.Mutex
	snapshots map[models.OrderStatus][]models.Order
	pool      []models.Rider
	inflight  map[string]struct{}
	pending   map[string]string // cancel token -> order id
}

func (c *Controller) init() {
	if c.snapshots == nil {
		c.snapshots = make(map[models.OrderStatus][]models.Order)
	}
	if c.inflight == nil {
		c.inflight = make(map[string]struct{})
	}
	if c.pending == nil {
		c.pending = make(map[string]string)
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Refresh fetches the list for one status tab and replaces that tab's
// snapshot. On failure the previous snapshot is kept, not cleared, so the
// operator never sees a false empty state; the error is reported through
// the notifier and returned.
func (c *Controller) Refresh(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	orders, err := c.Backend.OrdersByStatus(ctx, status)
	if err != nil {
		c.notifyError(err, "Failed to load orders")
		return c.Snapshot(status), err
	}
	c.mu.Lock()
	c.init()
	c.snapshots[status] = orders
	c.mu.Unlock()
	return orders, nil
}

// Snapshot returns the last successfully fetched list for a status tab.
func (c *Controller) Snapshot(status models.OrderStatus) []models.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.init()
	return c.snapshots[status]
}

// Filtered applies the client-side search to the current snapshot.
func (c *Controller) Filtered(status models.OrderStatus, query string) []models.Order {
	return FilterOrders(c.Snapshot(status), query)
}

// OpenAssignment re-fetches the available rider pool for the picker.
// Availability is time-sensitive, so this must be called immediately
// before offering the picker; the pool is never served from cache.
func (c *Controller) OpenAssignment(ctx context.Context) ([]models.Rider, error) {
	riders, err := c.Backend.AvailableRiders(ctx)
	if err != nil {
		c.notifyError(err, "Failed to load available riders")
		return nil, err
	}
	c.mu.Lock()
	c.init()
	c.pool = riders
	c.mu.Unlock()
	return riders, nil
}

// AcceptAndAssign binds a rider to a placed order, moving it to
// inProgress on the backend. The rider must come from the most recent
// OpenAssignment result. On success the placed tab is re-fetched; on
// failure the pool is re-fetched so the picker can retry with fresh data.
func (c *Controller) AcceptAndAssign(ctx context.Context, orderID, riderID string) error {
	if orderID == "" {
		return &ValidationError{Field: "orderId", Reason: "required"}
	}
	rider, ok := c.riderFromPool(riderID)
	if !ok {
		return ErrRiderNotInPool
	}
	if !c.begin(orderID) {
		return ErrInFlight
	}
	defer c.end(orderID)

	if err := c.Backend.AssignRider(ctx, orderID, rider.ID, rider.Name); err != nil {
		observability.AssignmentFailures.Inc()
		c.notifyError(err, "Failed to assign rider")
		// rider may have gone off shift between fetch and assign
		_, _ = c.OpenAssignment(ctx)
		return err
	}

	c.notifySuccess("Order assigned to " + rider.Name)
	observability.TransitionsTotal.WithLabelValues(string(models.StatusInProgress)).Inc()
	c.recordTransition(ctx, orderID, "assign", models.StatusPlaced, models.StatusInProgress, rider)
	c.refetchAfterTransition(ctx, models.StatusPlaced)
	return nil
}

// RequestCancel starts the confirmation step for a cancellation and
// returns a one-shot token. No network command is issued until the token
// is confirmed; dropping it declines the cancellation at zero cost.
func (c *Controller) RequestCancel(orderID string) (string, error) {
	if orderID == "" {
		return "", &ValidationError{Field: "orderId", Reason: "required"}
	}
	token := uuid.NewString()
	c.mu.Lock()
	c.init()
	c.pending[token] = orderID
	c.mu.Unlock()
	return token, nil
}

// DeclineCancel drops a pending confirmation. Nothing was or will be sent.
func (c *Controller) DeclineCancel(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.init()
	delete(c.pending, token)
}

// ConfirmCancel consumes a confirmation token and issues the cancel
// command. Once confirmed there is no compensating action; if the order
// carried an online payment hold, its release is attempted best-effort.
func (c *Controller) ConfirmCancel(ctx context.Context, token string) error {
	c.mu.Lock()
	c.init()
	orderID, ok := c.pending[token]
	delete(c.pending, token)
	c.mu.Unlock()
	if !ok {
		return ErrUnknownToken
	}
	if !c.begin(orderID) {
		return ErrInFlight
	}
	defer c.end(orderID)

	if err := c.Backend.UpdateOrderStatus(ctx, orderID, models.StatusCancelled); err != nil {
		c.notifyError(err, "Failed to cancel order")
		return err
	}

	c.releasePayment(ctx, orderID)
	c.notifySuccess("Order cancelled")
	observability.TransitionsTotal.WithLabelValues(string(models.StatusCancelled)).Inc()
	c.recordTransition(ctx, orderID, "cancel", models.StatusPlaced, models.StatusCancelled, models.Rider{})
	c.refetchAfterTransition(ctx, models.StatusPlaced)
	return nil
}

// MarkDelivered completes an in-progress order. No confirmation step;
// whether the transition is legal for the order's current state is the
// backend's call, and a rejection surfaces as an ordinary notice.
func (c *Controller) MarkDelivered(ctx context.Context, orderID string) error {
	if orderID == "" {
		return &ValidationError{Field: "orderId", Reason: "required"}
	}
	if !c.begin(orderID) {
		return ErrInFlight
	}
	defer c.end(orderID)

	if err := c.Backend.UpdateOrderStatus(ctx, orderID, models.StatusDelivered); err != nil {
		c.notifyError(err, "Failed to update order")
		return err
	}

	c.notifySuccess("Order marked as delivered")
	observability.TransitionsTotal.WithLabelValues(string(models.StatusDelivered)).Inc()
	c.recordTransition(ctx, orderID, "deliver", models.StatusInProgress, models.StatusDelivered, models.Rider{})
	c.refetchAfterTransition(ctx, models.StatusInProgress)
	return nil
}

func (c *Controller) riderFromPool(riderID string) (models.Rider, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.init()
	for _, r := range c.pool {
		if r.ID == riderID {
			return r, true
		}
	}
	return models.Rider{}, false
}

// begin marks an order as having a transition in flight. A false return
// means one is already pending and the caller must not issue another.
func (c *Controller) begin(orderID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.init()
	if _, busy := c.inflight[orderID]; busy {
		return false
	}
	c.inflight[orderID] = struct{}{}
	return true
}

func (c *Controller) end(orderID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, orderID)
}

// refetchAfterTransition keeps the affected tab consistent by re-querying
// it instead of patching the in-memory record. A failed re-fetch leaves
// the stale snapshot in place; the notifier already reported it.
func (c *Controller) refetchAfterTransition(ctx context.Context, status models.OrderStatus) {
	if _, err := c.Refresh(ctx, status); err != nil {
		c.Logger.Warn("post-transition refresh failed", "status", status, "error", err)
	}
}

func (c *Controller) releasePayment(ctx context.Context, orderID string) {
	if c.Payments == nil {
		return
	}
	var ref string
	c.mu.Lock()
	for _, o := range c.snapshots[models.StatusPlaced] {
		if o.ID == orderID {
			ref = o.PaymentRef
			break
		}
	}
	c.mu.Unlock()
	if ref == "" {
		return
	}
	if err := c.Payments.Release(ctx, ref); err != nil {
		c.Logger.Error("payment hold release failed", "order_id", orderID, "payment_ref", ref, "error", err)
		c.notifyError(err, "Order cancelled but payment release failed")
	}
}

func (c *Controller) recordTransition(ctx context.Context, orderID, action string, from, to models.OrderStatus, rider models.Rider) {
	if c.Audit != nil {
		e := audit.NewEntry(orderID, action)
		e.From, e.To = from, to
		e.RiderID, e.RiderName = rider.ID, rider.Name
		if err := c.Audit.Record(ctx, e); err != nil {
			c.Logger.Warn("audit record failed", "order_id", orderID, "action", action, "error", err)
		}
	}
	if c.Events != nil {
		ev := models.TransitionEvent{OrderID: orderID, From: from, To: to, RiderID: rider.ID, RiderName: rider.Name, At: time.Now().UTC()}
		if err := c.Events.PublishTransition(ctx, ev); err != nil {
			c.Logger.Warn("transition event publish failed", "order_id", orderID, "error", err)
		}
	}
}

func (c *Controller) notifySuccess(msg string) {
	if c.Notify != nil {
		c.Notify.Success(msg)
	}
}

// notifyError surfaces the backend's own message when it has one and the
// generic fallback otherwise. Transport failures and application
// rejections are treated identically here.
func (c *Controller) notifyError(err error, fallback string) {
	msg := fallback
	if remote := remoteMessage(err); remote != "" {
		msg = remote
	}
	if c.Notify != nil {
		c.Notify.Error(msg)
	}
	if c.Logger != nil {
		c.Logger.Error(fallback, "error", err)
	}
}
