package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config holds application configuration from environment.
type Config struct {
	HTTPPort      string
	DatabaseURL   string
	DBPoolSize    int
	RedisURL      string
	RedisPoolSize int
	CacheTTL      int // seconds
	KafkaBrokers  []string
	KafkaTopic    string
	KafkaParts    int
	SessionSecret string
	SessionTTLMin int
	CookieSecure  bool
	TemplateGlob  string
}

var (
	cfg     *Config
	cfgOnce sync.Once
)

// Get returns the application config (loads once from env).
func Get() *Config {
	cfgOnce.Do(func() {
		cfg = &Config{
			HTTPPort:      getEnv("HTTP_PORT", "8080"),
			DatabaseURL:   os.Getenv("DATABASE_URL"),
			DBPoolSize:    getIntEnv("DB_POOL_SIZE", 20),
			RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379/0"),
			RedisPoolSize: getIntEnv("REDIS_POOL_SIZE", 50),
			CacheTTL:      getIntEnv("CACHE_TTL_SEC", 300),
			KafkaBrokers:  getSliceEnv("KAFKA_BROKERS", ""),
			KafkaTopic:    getEnv("KAFKA_EVENTS_TOPIC", "task-events"),
			KafkaParts:    getIntEnv("KAFKA_PARTITIONS", 4),
			SessionSecret: os.Getenv("SESSION_SECRET"),
			SessionTTLMin: getIntEnv("SESSION_TTL_MIN", 720),
			CookieSecure:  getBoolEnv("COOKIE_SECURE", false),
			TemplateGlob:  getEnv("TEMPLATE_GLOB", "web/templates/*.html"),
		}
	})
	return cfg
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getIntEnv(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func getBoolEnv(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

func getSliceEnv(key, defaultVal string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = defaultVal
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
