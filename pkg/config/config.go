package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	StorageFirestore = "firestore"
	StorageMemory    = "memory"
)

type Config struct {
	ServerPort    string
	Environment   string
	StorageDriver string

	FirebaseProject            string
	FirebaseServiceAccountJSON string
	FirebaseServiceAccountPath string
	StorageBucket              string

	Payment PaymentConfig

	AMQPURL      string
	AMQPExchange string

	// Requests per minute per client IP on order placement and public forms.
	OrderRateLimit float64
	// Order total divided by this is the loyalty points awarded on delivery.
	LoyaltyPointsDivisor float64
}

type PaymentConfig struct {
	BaseURL       string
	StoreID       string
	StorePassword string
	SuccessURL    string
	FailURL       string
	CancelURL     string
	IPNURL        string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		StorageDriver: getEnv("STORAGE_DRIVER", StorageFirestore),

		FirebaseProject:            getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		FirebaseServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
		StorageBucket:              getEnv("STORAGE_BUCKET", ""),

		Payment: PaymentConfig{
			BaseURL:       getEnv("PAYMENT_BASE_URL", "https://sandbox.sslcommerz.com"),
			StoreID:       getEnv("PAYMENT_STORE_ID", ""),
			StorePassword: getEnv("PAYMENT_STORE_PASSWORD", ""),
			SuccessURL:    getEnv("PAYMENT_SUCCESS_URL", "http://localhost:3000/payment/success"),
			FailURL:       getEnv("PAYMENT_FAIL_URL", "http://localhost:3000/payment/fail"),
			CancelURL:     getEnv("PAYMENT_CANCEL_URL", "http://localhost:3000/payment/cancel"),
			IPNURL:        getEnv("PAYMENT_IPN_URL", ""),
		},

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "telemart.events"),

		OrderRateLimit:       getEnvAsFloat64("ORDER_RATE_LIMIT", 20),
		LoyaltyPointsDivisor: getEnvAsFloat64("LOYALTY_POINTS_DIVISOR", 100),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageMemory:
	case StorageFirestore:
		if c.FirebaseProject == "" {
			return fmt.Errorf("FIREBASE_PROJECT_ID is required when STORAGE_DRIVER=%s", StorageFirestore)
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.LoyaltyPointsDivisor <= 0 {
		return fmt.Errorf("LOYALTY_POINTS_DIVISOR must be positive")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		f, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return f
		}
	}
	return defaultValue
}
