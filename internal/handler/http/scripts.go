package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/script-writer/internal/logger"
	"github.com/MKhiriev/script-writer/internal/utils"
	"github.com/MKhiriev/script-writer/models"
)

func (h *Handler) listScripts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	scripts, err := h.services.ScriptService.ListForUser(ctx, userID)
	if err != nil {
		log.Err(err).Msg("error listing scripts")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, scripts, http.StatusOK)
}

func (h *Handler) upsertScript(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var script models.Script
	if err := json.NewDecoder(r.Body).Decode(&script); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	stored, err := h.services.ScriptService.Upsert(ctx, userID, script)
	if err != nil {
		log.Err(err).Str("script_id", script.ID).Msg("error upserting script")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, stored, http.StatusOK)
}

func (h *Handler) deleteScript(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	scriptID := chi.URLParam(r, "id")
	if err := h.services.ScriptService.Delete(ctx, userID, scriptID); err != nil {
		log.Err(err).Str("script_id", scriptID).Msg("error deleting script")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.DeleteResult{Deleted: true}, http.StatusOK)
}

func (h *Handler) bulkSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if req.Scripts == nil {
		http.Error(w, "scripts array is required", http.StatusBadRequest)
		return
	}

	result := h.services.ScriptService.BulkSync(ctx, userID, req.Scripts)

	log.Info().Int("synced", result.Synced).Int("failed", len(result.Errors)).Msg("bulk sync finished")

	utils.WriteJSON(w, result, http.StatusOK)
}
