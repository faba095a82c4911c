package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/exceptionzofficial/akshaya-admin-panel/internal/models"
	"github.com/exceptionzofficial/akshaya-admin-panel/internal/workflow"
)

// handleListOrders refreshes one status tab and returns it, narrowed by
// the optional q search parameter. When the backend refresh fails the
// previously fetched snapshot is returned alongside the failure so the
// dashboard never flashes a false empty state.
func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	statusParam := r.URL.Query().Get("status")
	if statusParam == "" {
		statusParam = string(models.StatusPlaced)
	}
	status, err := models.ParseOrderStatus(statusParam)
	if err != nil {
		s.writeError(w, &workflow.ValidationError{Field: "status", Reason: err.Error()})
		return
	}

	orders, err := s.Workflow.Refresh(r.Context(), status)
	query := r.URL.Query().Get("q")
	if err != nil {
		stale := workflow.FilterOrders(orders, query)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": err.Error(),
			"data":    map[string]any{"orders": stale, "stale": true},
		})
		return
	}
	s.writeData(w, http.StatusOK, map[string]any{"orders": workflow.FilterOrders(orders, query)})
}

// handleOpenAssignment fetches a fresh available-rider pool for the
// picker. The pool is fetched on every open, never cached.
func (s *Server) handleOpenAssignment(w http.ResponseWriter, r *http.Request) {
	riders, err := s.Workflow.OpenAssignment(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, map[string]any{"riders": riders})
}

func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var body struct {
		RiderID string `json:"riderId"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, &workflow.ValidationError{Field: "body", Reason: err.Error()})
		return
	}
	if err := s.Workflow.AcceptAndAssign(r.Context(), id, body.RiderID); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, map[string]any{"orderId": id, "riderId": body.RiderID})
}

// handleRequestCancel opens the confirmation step. No backend command is
// issued here; the returned token must be confirmed first.
func (s *Server) handleRequestCancel(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	token, err := s.Workflow.RequestCancel(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusAccepted, map[string]any{"confirmToken": token})
}

func (s *Server) handleConfirmCancel(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token string `json:"token"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, &workflow.ValidationError{Field: "body", Reason: err.Error()})
		return
	}
	if err := s.Workflow.ConfirmCancel(r.Context(), body.Token); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, map[string]any{"cancelled": true})
}

func (s *Server) handleDeclineCancel(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token string `json:"token"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, &workflow.ValidationError{Field: "body", Reason: err.Error()})
		return
	}
	s.Workflow.DeclineCancel(body.Token)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMarkDelivered(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.Workflow.MarkDelivered(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, map[string]any{"orderId": id, "status": models.StatusDelivered})
}
