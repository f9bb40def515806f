package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// represents JWT claims issued by the identity provider
type Claims struct {
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	CauldronID string `json:"cauldron_id"`
	jwt.RegisteredClaims
}
