package firebase

import (
	"context"

	"firebase.google.com/go/v4/auth"

	"telemart/internal/usecase"
)

type FirebaseAuthClient struct {
	client *auth.Client
}

func NewFirebaseAuthClient(client *auth.Client) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client: client,
	}
}

func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, token string) (*usecase.TokenClaims, error) {
	result, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, err
	}

	claims := &usecase.TokenClaims{UID: result.UID}
	if email, ok := result.Claims["email"].(string); ok {
		claims.Email = email
	}
	if name, ok := result.Claims["name"].(string); ok {
		claims.Name = name
	}
	return claims, nil
}
