package firebase

import (
	"context"
	"fmt"
	"strings"

	"telemart/internal/usecase"
)

const DevTokenPrefix = "dev:"

// DevTokenVerifier stands in for Firebase Auth when the API runs on the
// in-memory store. Tokens have the form "dev:<uid>".
type DevTokenVerifier struct{}

func NewDevTokenVerifier() *DevTokenVerifier {
	return &DevTokenVerifier{}
}

func DevToken(uid string) string {
	return DevTokenPrefix + uid
}

func (DevTokenVerifier) VerifyToken(ctx context.Context, token string) (*usecase.TokenClaims, error) {
	uid := strings.TrimPrefix(token, DevTokenPrefix)
	if uid == token || uid == "" {
		return nil, fmt.Errorf("not a development token")
	}
	return &usecase.TokenClaims{UID: uid}, nil
}
