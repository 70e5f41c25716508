package api

import (
	"log/slog"
	"net/http"

	"github.com/gatewaylabs/gateway-api/internal/api/shared"
	"github.com/gatewaylabs/gateway-api/internal/platform/logger"
	"github.com/gatewaylabs/gateway-api/internal/redact"
	"github.com/gatewaylabs/gateway-api/internal/service/auth"
)

// AuthHandler issues the signed principal tokens used on every other
// endpoint. Any principal may obtain a token; the operator principal must
// additionally present the configured secret.
type AuthHandler struct {
	jwtService         auth.JWTService
	secretVerifier     auth.SecretVerifier
	operator           string
	operatorSecretHash string
	logger             *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	jwtService auth.JWTService,
	secretVerifier auth.SecretVerifier,
	operator string,
	operatorSecretHash string,
	logger *slog.Logger,
) *AuthHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AuthHandler")
	}

	return &AuthHandler{
		jwtService:         jwtService,
		secretVerifier:     secretVerifier,
		operator:           operator,
		operatorSecretHash: operatorSecretHash,
		logger:             logger.With(slog.String("component", "auth_handler")),
	}
}

// IssueToken handles POST /auth/token requests.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req IssueTokenRequest
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

	// The operator's identity is privileged; every other principal is
	// self-asserted, which matches mint and request being open calls.
	if req.Principal == h.operator {
		if err := h.secretVerifier.Compare(h.operatorSecretHash, req.Secret); err != nil {
			log.Warn("operator token request with bad secret")
			HandleAPIError(w, r, err, "")
			return
		}
	}

	token, err := h.jwtService.GenerateToken(r.Context(), req.Principal)
	if err != nil {
		log.Error("failed to generate token",
			slog.String("error", redact.Error(err)),
			slog.String("principal", req.Principal))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, IssueTokenResponse{Token: token})
}
