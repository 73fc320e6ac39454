package token

import (
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/gymstack/gymstack/principals"
)

// Claims is the identity payload carried by a session token. Validity is a
// pure function of signature and expiry; nothing here is looked up
// server-side after issuance.
type Claims struct {
	ID          string          `json:"id"`
	Email       string          `json:"email"`
	DisplayName string          `json:"displayName"`
	Role        principals.Role `json:"role"`
	jwtlib.RegisteredClaims
}
