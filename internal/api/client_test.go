package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/exceptionzofficial/akshaya-admin-panel/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOrdersByStatusDecodesEnvelope(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success":true,"data":{"orders":[{"id":"o1","status":"placed","customer":{"name":"Shalini"}}]}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, testLogger())
	orders, err := c.OrdersByStatus(context.Background(), models.StatusPlaced)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/orders/status/placed" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if len(orders) != 1 || orders[0].ID != "o1" || orders[0].Customer.Name != "Shalini" {
		t.Fatalf("unexpected orders %+v", orders)
	}
}

func TestSuccessFalseIsRemoteErrorWithMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		io.WriteString(w, `{"success":false,"message":"rider no longer available"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, testLogger())
	err := c.AssignRider(context.Background(), "o1", "r1", "Kumar")
	if !IsRemote(err) {
		t.Fatalf("expected remote error, got %v", err)
	}
	if err.Error() != "rider no longer available" {
		t.Fatalf("backend message lost: %q", err.Error())
	}
}

func TestSuccessFalseWithoutMessageFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":false}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, testLogger())
	err := c.UpdateOrderStatus(context.Background(), "o1", models.StatusCancelled)
	if !IsRemote(err) {
		t.Fatalf("expected remote error, got %v", err)
	}
	if err.Error() == "" {
		t.Fatal("expected a generic fallback message")
	}
}

func TestNon2xxWithoutBodyIsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, testLogger())
	_, err := c.AvailableRiders(context.Background())
	if !IsTransport(err) {
		t.Fatalf("expected transport failure, got %v", err)
	}
	if IsRemote(err) {
		t.Fatal("transport failure misclassified as remote rejection")
	}
}

func TestConnectionFailureIsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens anymore

	c := NewClient(srv.URL, time.Second, testLogger())
	if _, err := c.Orders(context.Background()); !IsTransport(err) {
		t.Fatalf("expected transport failure, got %v", err)
	}
}

func TestAssignRiderSendsCommandBody(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		io.WriteString(w, `{"success":true,"data":{}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, testLogger())
	if err := c.AssignRider(context.Background(), "o1", "r1", "Kumar"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodPatch || gotPath != "/orders/o1/assign" {
		t.Fatalf("unexpected request %s %s", gotMethod, gotPath)
	}
	if gotBody["riderId"] != "r1" || gotBody["riderName"] != "Kumar" {
		t.Fatalf("unexpected body %v", gotBody)
	}
}

func TestUpdateOrderStatusSendsLiteralStatus(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		io.WriteString(w, `{"success":true,"data":{}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, testLogger())
	if err := c.UpdateOrderStatus(context.Background(), "o1", models.StatusInProgress); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBody["status"] != "inProgress" {
		t.Fatalf("status not transmitted as literal wire string: %v", gotBody)
	}
}
