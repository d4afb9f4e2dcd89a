package usecase

import "context"

// TokenClaims is what the API needs from a verified ID token.
type TokenClaims struct {
	UID   string
	Email string
	Name  string
}

type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*TokenClaims, error)
}
