package gateway

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/exceptionzofficial/akshaya-admin-panel/internal/models"
	"github.com/exceptionzofficial/akshaya-admin-panel/internal/workflow"
)

// Rider management and menu editing are plain pass-throughs: the gateway
// adds observability and a single origin, not behavior. Only the order
// workflow carries client-side rules.

func (s *Server) handleListRiders(w http.ResponseWriter, r *http.Request) {
	riders, err := s.API.Riders(r.Context(), models.RiderStatus(r.URL.Query().Get("status")))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, map[string]any{"riders": riders})
}

func (s *Server) handleAvailableRiders(w http.ResponseWriter, r *http.Request) {
	riders, err := s.API.AvailableRiders(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, map[string]any{"riders": riders})
}

func (s *Server) handleCreateRider(w http.ResponseWriter, r *http.Request) {
	var rider models.Rider
	if err := decodeBody(r, &rider); err != nil {
		s.writeError(w, &workflow.ValidationError{Field: "body", Reason: err.Error()})
		return
	}
	if rider.Name == "" || rider.Phone == "" {
		s.writeError(w, &workflow.ValidationError{Field: "rider", Reason: "name and phone are required"})
		return
	}
	created, err := s.API.CreateRider(r.Context(), rider)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusCreated, map[string]any{"rider": created})
}

func (s *Server) handleRiderStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var body struct {
		Status         models.RiderStatus `json:"status"`
		CurrentOrderID string             `json:"currentOrderId"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, &workflow.ValidationError{Field: "body", Reason: err.Error()})
		return
	}
	if err := s.API.UpdateRiderStatus(r.Context(), id, body.Status, body.CurrentOrderID); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, map[string]any{"riderId": id, "status": body.Status})
}

func (s *Server) handleDeleteRider(w http.ResponseWriter, r *http.Request) {
	if err := s.API.DeleteRider(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListPackages(w http.ResponseWriter, r *http.Request) {
	pkgs, err := s.API.Packages(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, map[string]any{"packages": pkgs})
}

func (s *Server) handlePackagesByDay(w http.ResponseWriter, r *http.Request) {
	pkgs, err := s.API.PackagesByDay(r.Context(), mux.Vars(r)["day"], r.URL.Query().Get("mealType"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, map[string]any{"packages": pkgs})
}

func (s *Server) handleCreatePackage(w http.ResponseWriter, r *http.Request) {
	var pkg models.MenuPackage
	if err := decodeBody(r, &pkg); err != nil {
		s.writeError(w, &workflow.ValidationError{Field: "body", Reason: err.Error()})
		return
	}
	if pkg.Name == "" || pkg.Day == "" {
		s.writeError(w, &workflow.ValidationError{Field: "package", Reason: "name and day are required"})
		return
	}
	created, err := s.API.CreatePackage(r.Context(), pkg)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusCreated, map[string]any{"package": created})
}

func (s *Server) handleUpdatePackage(w http.ResponseWriter, r *http.Request) {
	var pkg models.MenuPackage
	if err := decodeBody(r, &pkg); err != nil {
		s.writeError(w, &workflow.ValidationError{Field: "body", Reason: err.Error()})
		return
	}
	id := mux.Vars(r)["id"]
	if err := s.API.UpdatePackage(r.Context(), id, pkg); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, map[string]any{"packageId": id})
}

func (s *Server) handleDeletePackage(w http.ResponseWriter, r *http.Request) {
	if err := s.API.DeletePackage(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListSingles(w http.ResponseWriter, r *http.Request) {
	includeHidden := true
	if v := r.URL.Query().Get("includeHidden"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			includeHidden = parsed
		}
	}
	singles, err := s.API.Singles(r.Context(), includeHidden)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, map[string]any{"singles": singles})
}

func (s *Server) handleSingleCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.API.SingleCategories(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, map[string]any{"categories": cats})
}

func (s *Server) handleCreateSingle(w http.ResponseWriter, r *http.Request) {
	var meal models.SingleMeal
	if err := decodeBody(r, &meal); err != nil {
		s.writeError(w, &workflow.ValidationError{Field: "body", Reason: err.Error()})
		return
	}
	if meal.Name == "" || meal.Category == "" {
		s.writeError(w, &workflow.ValidationError{Field: "single", Reason: "name and category are required"})
		return
	}
	created, err := s.API.CreateSingle(r.Context(), meal)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusCreated, map[string]any{"single": created})
}

func (s *Server) handleUpdateSingle(w http.ResponseWriter, r *http.Request) {
	var meal models.SingleMeal
	if err := decodeBody(r, &meal); err != nil {
		s.writeError(w, &workflow.ValidationError{Field: "body", Reason: err.Error()})
		return
	}
	id := mux.Vars(r)["id"]
	if err := s.API.UpdateSingle(r.Context(), id, meal); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, map[string]any{"singleId": id})
}

func (s *Server) handleSingleVisibility(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IsVisible bool `json:"isVisible"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, &workflow.ValidationError{Field: "body", Reason: err.Error()})
		return
	}
	id := mux.Vars(r)["id"]
	if err := s.API.SetSingleVisibility(r.Context(), id, body.IsVisible); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, map[string]any{"singleId": id, "isVisible": body.IsVisible})
}

func (s *Server) handleDeleteSingle(w http.ResponseWriter, r *http.Request) {
	if err := s.API.DeleteSingle(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.API.Users(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, map[string]any{"users": users})
}

func (s *Server) handleUserStatus(w http.ResponseWriter, r *http.Request) {
	phone := mux.Vars(r)["phone"]
	var body struct {
		IsActive bool `json:"isActive"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, &workflow.ValidationError{Field: "body", Reason: err.Error()})
		return
	}
	if err := s.API.SetUserActive(r.Context(), phone, body.IsActive); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, map[string]any{"phone": phone, "isActive": body.IsActive})
}

func (s *Server) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	s.writeData(w, http.StatusOK, s.Stats.Summary(r.Context()))
}

func (s *Server) handleAuditTrail(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	entries, err := s.Audit.Recent(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, map[string]any{"entries": entries})
}
