package gateway

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/exceptionzofficial/akshaya-admin-panel/internal/api"
	"github.com/exceptionzofficial/akshaya-admin-panel/internal/audit"
	"github.com/exceptionzofficial/akshaya-admin-panel/internal/notify"
	"github.com/exceptionzofficial/akshaya-admin-panel/internal/stats"
	"github.com/exceptionzofficial/akshaya-admin-panel/internal/workflow"
)

// Server is the gateway's own HTTP surface. The dashboard UI talks to it
// and it alone; all backend traffic flows through the workflow controller
// and the API client underneath.
type Server struct {
	API      *api.Client
	Workflow *workflow.Controller
	Stats    *stats.Service
	Notify   *notify.Registry
	Audit    audit.Recorder

	logger *slog.Logger
	mux    *mux.Router
}

func NewServer(client *api.Client, ctrl *workflow.Controller, statsSvc *stats.Service, registry *notify.Registry, recorder audit.Recorder, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		API:      client,
		Workflow: ctrl,
		Stats:    statsSvc,
		Notify:   registry,
		Audit:    recorder,
		logger:   logger,
		mux:      mux.NewRouter(),
	}
	s.registerMiddleware()
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.mux.PathPrefix("/api/v1").Subrouter()

	r.HandleFunc("/orders", s.handleListOrders).Methods("GET")
	r.HandleFunc("/orders/{id}/assignment", s.handleOpenAssignment).Methods("POST")
	r.HandleFunc("/orders/{id}/assign", s.handleAssign).Methods("POST")
	r.HandleFunc("/orders/{id}/cancel", s.handleRequestCancel).Methods("POST")
	r.HandleFunc("/orders/cancel/confirm", s.handleConfirmCancel).Methods("POST")
	r.HandleFunc("/orders/cancel/decline", s.handleDeclineCancel).Methods("POST")
	r.HandleFunc("/orders/{id}/delivered", s.handleMarkDelivered).Methods("POST")

	r.HandleFunc("/riders", s.handleListRiders).Methods("GET")
	r.HandleFunc("/riders", s.handleCreateRider).Methods("POST")
	r.HandleFunc("/riders/available", s.handleAvailableRiders).Methods("GET")
	r.HandleFunc("/riders/{id}/status", s.handleRiderStatus).Methods("PATCH")
	r.HandleFunc("/riders/{id}", s.handleDeleteRider).Methods("DELETE")

	r.HandleFunc("/packages", s.handleListPackages).Methods("GET")
	r.HandleFunc("/packages", s.handleCreatePackage).Methods("POST")
	r.HandleFunc("/packages/day/{day}", s.handlePackagesByDay).Methods("GET")
	r.HandleFunc("/packages/{id}", s.handleUpdatePackage).Methods("PUT")
	r.HandleFunc("/packages/{id}", s.handleDeletePackage).Methods("DELETE")

	r.HandleFunc("/singles", s.handleListSingles).Methods("GET")
	r.HandleFunc("/singles", s.handleCreateSingle).Methods("POST")
	r.HandleFunc("/singles/categories", s.handleSingleCategories).Methods("GET")
	r.HandleFunc("/singles/{id}/visibility", s.handleSingleVisibility).Methods("PATCH")
	r.HandleFunc("/singles/{id}", s.handleUpdateSingle).Methods("PUT")
	r.HandleFunc("/singles/{id}", s.handleDeleteSingle).Methods("DELETE")

	r.HandleFunc("/users", s.handleListUsers).Methods("GET")
	r.HandleFunc("/users/{phone}/status", s.handleUserStatus).Methods("PATCH")

	r.HandleFunc("/dashboard/stats", s.handleDashboardStats).Methods("GET")
	r.HandleFunc("/audit", s.handleAuditTrail).Methods("GET")

	s.mux.HandleFunc("/ws", s.handleWS)
	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) }).Methods("GET")
	s.mux.Handle("/metrics", promhttp.Handler())
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.mux.ServeHTTP(w, r) }

var upgrader = websocket.Upgrader{}

// handleWS attaches a dashboard session to the notification stream.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "upgrade failed", http.StatusBadRequest)
		return
	}
	id := s.Notify.Add(conn)
	s.logger.Info("dashboard session connected", "session_id", id)

	// the stream is write-only; reads only detect the peer going away
	go func() {
		defer s.Notify.Remove(id)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// writeData wraps a payload in the same {success, data} envelope the
// dashboard already speaks against the delivery backend.
func (s *Server) writeData(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

// writeError maps controller and backend failures onto the gateway's own
// status codes. Nothing here is fatal; the operator can always retry.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := http.StatusBadGateway
	switch {
	case isValidation(err):
		code = http.StatusBadRequest
	case errors.Is(err, workflow.ErrInFlight):
		code = http.StatusConflict
	case api.IsRemote(err):
		code = http.StatusBadGateway
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": err.Error()})
}

func isValidation(err error) bool {
	if errors.Is(err, workflow.ErrRiderNotInPool) || errors.Is(err, workflow.ErrUnknownToken) {
		return true
	}
	var ve *workflow.ValidationError
	return errors.As(err, &ve)
}

func decodeBody(r *http.Request, out any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(out)
}
