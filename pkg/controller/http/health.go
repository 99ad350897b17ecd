package http

import (
	"net/http"

	"github.com/aghinsa/IFRNet/pkg/domain/model"
	"github.com/aghinsa/IFRNet/pkg/domain/types"
)

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	status := &model.HealthStatus{
		Status:  "healthy",
		Service: "ckptfetch",
		Version: types.Version,
	}

	writeJSON(w, http.StatusOK, status)
}
