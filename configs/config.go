package config

import (
	"os"
	"strconv"
	"time"
)

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
}

type Queue struct {
	Concurrency    int
	MaxAttempts    int
	RetryBaseDelay time.Duration
	Retention      time.Duration
}

type Config struct {
	PostgresURI       string
	RedisURI          string
	ListenAddr        string
	FrontendURL       string
	AutomationURL     string
	SchedulerInterval time.Duration
	Queue             Queue
	R2                R2
	SecretKey         string
	CookieName        string
}

func LoadConfig() *Config {
	return &Config{
		PostgresURI:       getEnv("POSTGRES_URI", ""),
		RedisURI:          getEnv("REDIS_URI", "localhost:6379"),
		ListenAddr:        getEnv("LISTEN_ADDR", ":3000"),
		FrontendURL:       getEnv("FRONTEND_URL", "http://localhost:5173"),
		AutomationURL:     getEnv("AUTOMATION_URL", "http://localhost:4000"),
		SchedulerInterval: getEnvDuration("SCHEDULER_INTERVAL", time.Minute),
		Queue: Queue{
			Concurrency:    getEnvInt("QUEUE_CONCURRENCY", 10),
			MaxAttempts:    getEnvInt("QUEUE_MAX_ATTEMPTS", 3),
			RetryBaseDelay: getEnvDuration("QUEUE_RETRY_BASE_DELAY", 2*time.Second),
			Retention:      getEnvDuration("QUEUE_RETENTION", time.Hour),
		},
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
		},
		SecretKey:  getEnv("SECRET_KEY", ""),
		CookieName: getEnv("COOKIE_NAME", "crosspost_session"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
