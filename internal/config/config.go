package config

import (
	"os"
	"time"
)

type Config struct {
	HTTPPort       string
	SourceTimeout  time.Duration
	OverallTimeout time.Duration
	PageLoadDelay  time.Duration
	RAWGAPIKey     string
}

func Load() *Config {
	return &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		SourceTimeout:  getEnvDuration("SOURCE_TIMEOUT", 10*time.Second),
		OverallTimeout: getEnvDuration("OVERALL_TIMEOUT", 90*time.Second),
		PageLoadDelay:  getEnvDuration("PAGE_LOAD_DELAY", 2*time.Second),
		RAWGAPIKey:     getEnv("RAWG_API_KEY", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
