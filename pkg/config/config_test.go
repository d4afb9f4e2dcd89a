package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMemoryDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", StorageMemory)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ORDER_RATE_LIMIT", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, 5.0, cfg.OrderRateLimit)
	assert.Equal(t, 100.0, cfg.LoyaltyPointsDivisor)
}

func TestLoadRequiresProjectForFirestore(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", StorageFirestore)
	t.Setenv("FIREBASE_PROJECT_ID", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mongo")

	_, err := Load()
	assert.ErrorContains(t, err, "unknown STORAGE_DRIVER")
}
