package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gatewaylabs/gateway-api/internal/api/shared"
	"github.com/gatewaylabs/gateway-api/internal/platform/logger"
	"github.com/gatewaylabs/gateway-api/internal/redact"
	"github.com/gatewaylabs/gateway-api/internal/service"
)

// MetadataHandler handles metadata completion and the incomplete-projects
// query.
type MetadataHandler struct {
	metadataService service.MetadataService
	logger          *slog.Logger
}

// NewMetadataHandler creates a new MetadataHandler.
func NewMetadataHandler(metadataService service.MetadataService, logger *slog.Logger) *MetadataHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for MetadataHandler")
	}

	return &MetadataHandler{
		metadataService: metadataService,
		logger:          logger.With(slog.String("component", "metadata_handler")),
	}
}

// UpdateMetadata handles PUT /tokens/{id}/metadata requests. Only the
// operator principal may complete a token's metadata.
func (h *MetadataHandler) UpdateMetadata(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	principal, tokenID, ok := handlePrincipalAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateMetadataRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("token_id", tokenID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error",
			slog.String("error", redact.Error(err)),
			slog.String("token_id", tokenID))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	if err := h.metadataService.UpdateMetadata(r.Context(), principal, tokenID, req.Title, req.Description); err != nil {
		HandleAPIError(w, r, err, "Failed to update metadata")
		return
	}

	log.Debug("metadata updated", slog.String("token_id", tokenID))
	w.WriteHeader(http.StatusNoContent)
}

// IncompleteProjects handles GET /projects/incomplete requests. The query
// is public and returns token ids in mint order; an optional limit query
// parameter caps the snapshot.
func (h *MetadataHandler) IncompleteProjects(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	limit := 0
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 0 {
			log.Warn("invalid limit parameter", slog.String("limit", rawLimit))
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	tokenIDs, err := h.metadataService.IncompleteProjects(r.Context(), limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to query incomplete projects")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, IncompleteProjectsResponse{TokenIDs: tokenIDs})
}
