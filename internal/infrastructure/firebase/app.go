package firebase

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"telemart/pkg/config"
	"telemart/pkg/logger"
)

// Clients bundles the Google clients built from one set of credentials.
type Clients struct {
	Firestore *firestore.Client
	Auth      *FirebaseAuthClient
	Option    option.ClientOption
}

// CredentialsOption prefers inline service-account JSON, then a file path.
func CredentialsOption(cfg *config.Config) (option.ClientOption, error) {
	if cfg.FirebaseServiceAccountJSON != "" {
		logger.Info("Using Firebase service account from environment variable")
		return option.WithCredentialsJSON([]byte(cfg.FirebaseServiceAccountJSON)), nil
	}

	path := cfg.FirebaseServiceAccountPath
	if path == "" {
		return nil, fmt.Errorf("FIREBASE_SERVICE_ACCOUNT_JSON or FIREBASE_SERVICE_ACCOUNT_PATH is required")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("service account file does not exist: %s", path)
	}
	logger.Info("Using Firebase service account from file: %s", path)
	return option.WithCredentialsFile(path), nil
}

func NewClients(ctx context.Context, cfg *config.Config) (*Clients, error) {
	opt, err := CredentialsOption(cfg)
	if err != nil {
		return nil, err
	}

	app, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase auth: %w", err)
	}

	fsClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}

	return &Clients{
		Firestore: fsClient,
		Auth:      NewFirebaseAuthClient(authClient),
		Option:    opt,
	}, nil
}

func (c *Clients) Close() error {
	return c.Firestore.Close()
}
