package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing signed principal tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT identifying the given principal.
	// Returns the token string or an error if token generation fails.
	GenerateToken(ctx context.Context, principal string) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Returns the claims identifying the caller if the token is
	// valid, or an error if validation fails (expired, invalid signature,
	// etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the verified identity carried by a gateway token.
type Claims struct {
	// Principal is the caller identity the token was issued for. The
	// gateway compares it against the configured operator principal for
	// operator-only operations.
	Principal string `json:"sub,omitempty"`

	// Standard registered JWT claims
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
