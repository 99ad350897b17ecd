package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	controller "github.com/aghinsa/IFRNet/pkg/controller/http"
	"github.com/aghinsa/IFRNet/pkg/domain/model"
	"github.com/aghinsa/IFRNet/pkg/usecase"
)

func TestHealthEndpoint(t *testing.T) {
	ctx := context.Background()

	server, err := controller.NewServer(
		ctx,
		usecase.NewReport(),
		controller.WithAddr("localhost:0"),
	)
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	server.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Status code = %v, want %v", w.Code, http.StatusOK)
	}

	var status model.HealthStatus
	if err := json.NewDecoder(w.Body).Decode(&status); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if status.Status != "healthy" {
		t.Errorf("Status = %v, want healthy", status.Status)
	}

	if status.Service != "ckptfetch" {
		t.Errorf("Service = %v, want ckptfetch", status.Service)
	}

	if status.Version == "" {
		t.Error("Version should not be empty")
	}
}
