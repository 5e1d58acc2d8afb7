package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pharmaflow/pharmaflow-backend/pkg/enums"
)

// IdentityPayload captures the data available when minting a token.
type IdentityPayload struct {
	UserID uuid.UUID
	Role   enums.UserRole
	Email  string
	Name   string
	JTI    string
}

// IdentityClaims is the signed identity carried in the auth cookie. The
// payload shape (user id, role, email, name) matches what the presentation
// layer reads; integrity comes from the HMAC signature, not the shape.
type IdentityClaims struct {
	UserID uuid.UUID      `json:"user_id"`
	Role   enums.UserRole `json:"role"`
	Email  string         `json:"email"`
	Name   string         `json:"name"`
	jwt.RegisteredClaims
}
