package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates every configuration section of the service.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Media    MediaConfig
	TimeZone TimeZoneConfig
	Skill    SkillConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	media, err := loadMediaConfig()
	if err != nil {
		return nil, err
	}

	tz, err := loadTimeZoneConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:   server,
		Store:    loadStoreConfig(),
		Media:    media,
		TimeZone: tz,
		Skill:    loadSkillConfig(),
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Allow passing ":8080" or "127.0.0.1:8080" directly.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// StoreConfig locates the persisted attribute store. An empty path keeps
// attributes in memory for the process lifetime.
type StoreConfig struct {
	Path string
}

func loadStoreConfig() StoreConfig {
	return StoreConfig{Path: strings.TrimSpace(os.Getenv("ATTRIBUTES_DB_PATH"))}
}

// MediaConfig describes the media asset host and URL signing.
type MediaConfig struct {
	BaseURL    string
	SigningKey string
	URLTTL     time.Duration
}

func loadMediaConfig() (MediaConfig, error) {
	ttlSeconds, err := parseOptionalIntEnv("MEDIA_URL_TTL")
	if err != nil {
		return MediaConfig{}, err
	}
	ttl := 60 * time.Second
	if ttlSeconds != nil {
		ttl = time.Duration(*ttlSeconds) * time.Second
	}

	return MediaConfig{
		BaseURL:    getEnvOrDefault("MEDIA_BASE_URL", "https://assets.example.com"),
		SigningKey: strings.TrimSpace(os.Getenv("MEDIA_SIGNING_KEY")),
		URLTTL:     ttl,
	}, nil
}

// TimeZoneConfig describes the external device settings service used for
// time-zone lookups. An empty base URL disables the remote lookup.
type TimeZoneConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

func loadTimeZoneConfig() (TimeZoneConfig, error) {
	timeoutSeconds, err := parseOptionalIntEnv("TIMEZONE_API_TIMEOUT")
	if err != nil {
		return TimeZoneConfig{}, err
	}
	timeout := 5 * time.Second
	if timeoutSeconds != nil {
		timeout = time.Duration(*timeoutSeconds) * time.Second
	}

	return TimeZoneConfig{
		BaseURL: strings.TrimSpace(os.Getenv("TIMEZONE_API_BASE_URL")),
		Token:   strings.TrimSpace(os.Getenv("TIMEZONE_API_TOKEN")),
		Timeout: timeout,
	}, nil
}

// SkillConfig holds skill-level defaults.
type SkillConfig struct {
	DefaultTimeZone string
}

func loadSkillConfig() SkillConfig {
	return SkillConfig{DefaultTimeZone: getEnvOrDefault("DEFAULT_TIMEZONE", "UTC")}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
