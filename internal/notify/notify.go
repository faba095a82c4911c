package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/exceptionzofficial/akshaya-admin-panel/internal/observability"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is one transient operator notification.
type Notice struct {
	ID      string    `json:"id"`
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Session represents one connected dashboard browser tab.
type Session struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *Session) send(n Notice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(n)
}

// Registry fans notices out to every connected dashboard session. A
// session that fails to take a write is dropped; notices are fire and
// forget, never queued.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	logger   *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{sessions: make(map[string]*Session), logger: logger}
}

// Add registers a session and returns its id for later removal.
func (r *Registry) Add(conn *websocket.Conn) string {
	id := uuid.NewString()
	r.mu.Lock()
	r.sessions[id] = &Session{conn: conn}
	r.mu.Unlock()
	return id
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		_ = s.conn.Close()
	}
}

func (r *Registry) Success(msg string) { r.broadcast(LevelSuccess, msg) }
func (r *Registry) Error(msg string)   { r.broadcast(LevelError, msg) }

func (r *Registry) broadcast(level Level, msg string) {
	n := Notice{ID: uuid.NewString(), Level: level, Message: msg, At: time.Now().UTC()}
	observability.NotificationsSent.Inc()

	r.mu.RLock()
	ids := make([]string, 0, len(r.sessions))
	sessions := make([]*Session, 0, len(r.sessions))
	for id, s := range r.sessions {
		ids = append(ids, id)
		sessions = append(sessions, s)
	}
	r.mu.RUnlock()

	for i, s := range sessions {
		if err := s.send(n); err != nil {
			r.logger.Warn("notification send failed, dropping session", "session_id", ids[i], "error", err)
			r.Remove(ids[i])
		}
	}
}

// LogNotifier reports notices to the structured log only. Used when no
// dashboard session transport is wanted, e.g. in tests or one-off tools.
type LogNotifier struct {
	Logger *slog.Logger
}

func (l *LogNotifier) Success(msg string) { l.log(slog.LevelInfo, msg) }
func (l *LogNotifier) Error(msg string)   { l.log(slog.LevelWarn, msg) }

func (l *LogNotifier) log(level slog.Level, msg string) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Log(context.Background(), level, "notice", "message", msg)
}
