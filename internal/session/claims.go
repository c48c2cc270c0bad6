package session

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stockdeck/stockdeck/internal/domain"
)

// tokenClaims mirrors the payload the collaborator embeds in its access
// tokens.
type tokenClaims struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// IdentityFromToken derives the authenticated identity from the access token
// returned at login. The role is read from the token's claims; signature
// verification stays with the collaborator, which validates the token on
// every call. The login username fills in the email, and the display name
// when the token carries none.
func IdentityFromToken(token, username string) (domain.Identity, error) {
	var claims tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return domain.Identity{}, fmt.Errorf("session: parse access token: %w", err)
	}
	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("session: access token carries no usable role: %w", err)
	}
	name := strings.TrimSpace(claims.Name)
	if name == "" {
		name = username
	}
	return domain.Identity{Name: name, Email: username, Role: role}, nil
}
