package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	defaultKeywords     = "nfc,tag,velin"
	defaultEndpoint     = "https://graphql.wuilt.com"
	defaultPageSize     = 50
	defaultStoreBackend = "memory"
)

// Config holds all environment-driven settings for the service.
type Config struct {
	Port     string
	Wuilt    WuiltConfig
	Keywords []string
	Store    StoreConfig
}

// WuiltConfig configures the upstream Wuilt GraphQL client.
type WuiltConfig struct {
	APIKey        string
	StoreID       string
	Endpoint      string
	OrderPageSize int
}

// StoreConfig selects and configures the profile store backend.
type StoreConfig struct {
	Backend         string // memory | firestore | redis
	ProjectID       string
	CredentialsFile string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
}

// Load reads configuration from the environment. WUILT_API_KEY and
// WUILT_STORE_ID are required; everything else has a default.
func Load() (Config, error) {
	apiKey := os.Getenv("WUILT_API_KEY")
	storeID := os.Getenv("WUILT_STORE_ID")
	if apiKey == "" || storeID == "" {
		return Config{}, errors.New("WUILT_API_KEY and WUILT_STORE_ID must be set")
	}

	pageSize, err := getEnvInt("WUILT_ORDER_PAGE_SIZE", defaultPageSize)
	if err != nil {
		return Config{}, err
	}

	backend := strings.ToLower(getEnv("PROFILE_STORE", defaultStoreBackend))
	switch backend {
	case "memory", "firestore", "redis":
	default:
		return Config{}, fmt.Errorf("invalid PROFILE_STORE: %s", backend)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: getEnv("PORT", "8080"),
		Wuilt: WuiltConfig{
			APIKey:        apiKey,
			StoreID:       storeID,
			Endpoint:      getEnv("WUILT_GQL", defaultEndpoint),
			OrderPageSize: pageSize,
		},
		Keywords: parseCSV(strings.ToLower(getEnv("NFC_KEYWORDS", defaultKeywords))),
		Store: StoreConfig{
			Backend:         backend,
			ProjectID:       getEnv("GOOGLE_CLOUD_PROJECT", ""),
			CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
			RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword:   getEnv("REDIS_PASSWORD", ""),
			RedisDB:         redisDB,
		},
	}

	if cfg.Store.Backend == "firestore" && cfg.Store.ProjectID == "" {
		return Config{}, errors.New("GOOGLE_CLOUD_PROJECT must be set when PROFILE_STORE=firestore")
	}
	if len(cfg.Keywords) == 0 {
		return Config{}, errors.New("NFC_KEYWORDS must contain at least one keyword")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func parseCSV(value string) []string {
	parts := strings.Split(value, ",")
	var results []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}
