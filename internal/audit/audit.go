package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/exceptionzofficial/akshaya-admin-panel/internal/models"
)

// Entry is one operator action on an order, kept for after-the-fact review.
type Entry struct {
	ID        string
	OrderID   string
	Action    string // assign, cancel, deliver
	From      models.OrderStatus
	To        models.OrderStatus
	RiderID   string
	RiderName string
	Actor     string
	At        time.Time
}

// NewEntry stamps id and time; callers fill in the rest.
func NewEntry(orderID, action string) Entry {
	return Entry{ID: uuid.NewString(), OrderID: orderID, Action: action, At: time.Now().UTC()}
}

// Recorder defines persistence operations for the audit trail.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

type MemoryRecorder struct {
	mu      sync.RWMutex
	entries []Entry
}

func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

func (m *MemoryRecorder) Record(ctx context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

// Recent returns the newest entries first.
func (m *MemoryRecorder) Recent(ctx context.Context, limit int) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := len(m.entries)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]Entry, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, m.entries[i])
	}
	return out, nil
}
