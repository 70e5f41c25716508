package api

import (
	"log/slog"
	"net/http"

	"github.com/gatewaylabs/gateway-api/internal/api/shared"
	"github.com/gatewaylabs/gateway-api/internal/domain"
	"github.com/gatewaylabs/gateway-api/internal/platform/logger"
	"github.com/gatewaylabs/gateway-api/internal/redact"
	"github.com/gatewaylabs/gateway-api/internal/service"
)

// TokenHandler handles token minting HTTP requests.
type TokenHandler struct {
	mintService service.MintService
	logger      *slog.Logger
}

// NewTokenHandler creates a new TokenHandler.
func NewTokenHandler(mintService service.MintService, logger *slog.Logger) *TokenHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TokenHandler")
	}

	return &TokenHandler{
		mintService: mintService,
		logger:      logger.With(slog.String("component", "token_handler")),
	}
}

// MintToken handles POST /tokens requests. Minting is open to any
// authenticated principal; the caller becomes the audit trail's minter.
func (h *TokenHandler) MintToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	principal, ok := shared.GetPrincipal(r.Context())
	if !ok {
		log.Warn("principal not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Caller principal not found")
		return
	}

	var req MintTokenRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error", slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	var extension *domain.Extension
	if req.Extension != nil {
		extension = &domain.Extension{
			Title:       req.Extension.Title,
			Description: req.Extension.Description,
			Destination: req.Extension.Destination,
			Code:        req.Extension.Code,
		}
	}

	tokenID, err := h.mintService.MintToken(r.Context(), principal, req.Owner, req.TokenURI, extension)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to mint token")
		return
	}

	log.Debug("token minted",
		slog.String("token_id", tokenID),
		slog.String("minter", principal))
	shared.RespondWithJSON(w, r, http.StatusCreated, MintTokenResponse{TokenID: tokenID})
}
