package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gatewaylabs/gateway-api/internal/api/shared"
	"github.com/gatewaylabs/gateway-api/internal/service/auth"
)

// stubJWTService returns canned claims or errors for ValidateToken.
type stubJWTService struct {
	claims *auth.Claims
	err    error
}

func (s *stubJWTService) GenerateToken(ctx context.Context, principal string) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name          string
		authHeader    string
		validateErr   error
		wantStatus    int
		wantPrincipal string
	}{
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			authHeader: "NotBearer abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:        "expired token",
			authHeader:  "Bearer expired",
			validateErr: auth.ErrExpiredToken,
			wantStatus:  http.StatusUnauthorized,
		},
		{
			name:        "invalid token",
			authHeader:  "Bearer garbage",
			validateErr: auth.ErrInvalidToken,
			wantStatus:  http.StatusUnauthorized,
		},
		{
			name:        "unexpected validation failure",
			authHeader:  "Bearer whatever",
			validateErr: errors.New("keystore offline"),
			wantStatus:  http.StatusInternalServerError,
		},
		{
			name:          "valid token",
			authHeader:    "Bearer good",
			wantStatus:    http.StatusOK,
			wantPrincipal: "alice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewAuthMiddleware(&stubJWTService{
				claims: &auth.Claims{Principal: "alice"},
				err:    tt.validateErr,
			})

			var gotPrincipal string
			handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPrincipal, _ = shared.GetPrincipal(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantPrincipal, gotPrincipal)
		})
	}
}
