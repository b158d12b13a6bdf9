package http

import (
	"net/http"

	"github.com/MKhiriev/script-writer/internal/utils"
	"github.com/MKhiriev/script-writer/models"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.HealthResponse{
		Status:       "ok",
		OAuthEnabled: h.services.OAuthService.Enabled(),
	}, http.StatusOK)
}
