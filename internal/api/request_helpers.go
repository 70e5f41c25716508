package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gatewaylabs/gateway-api/internal/api/shared"
	"github.com/gatewaylabs/gateway-api/internal/domain"
	"github.com/gatewaylabs/gateway-api/internal/platform/logger"
)

// getPathID extracts a decimal string identifier from the URL path
// parameters. Token and task ids are decimal strings, never UUIDs.
func getPathID(r *http.Request, paramName string) (string, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return "", domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	if _, err := strconv.ParseUint(pathParam, 10, 64); err != nil {
		return "", domain.NewValidationError(paramName, "must be a decimal id", domain.ErrTokenIDInvalid)
	}

	return pathParam, nil
}

// handlePrincipalAndPathID extracts the caller principal from the context
// and a decimal id from the path parameters. It writes an error response
// and returns false if either extraction fails.
func handlePrincipalAndPathID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	log *slog.Logger,
) (string, string, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	principal, ok := shared.GetPrincipal(r.Context())
	if !ok {
		log.Warn("principal not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Caller principal not found")
		return "", "", false
	}

	pathID, err := getPathID(r, paramName)
	if err != nil {
		log.Warn("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return "", "", false
	}

	return principal, pathID, true
}
