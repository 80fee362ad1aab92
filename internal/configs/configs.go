package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

type Config struct {
	AppURL                 string
	DatabaseDSN            string
	RateLimit              int
	RedisAddr              string
	WorkloadKeyPrefix      string
	EditWindowHours        int
	DeleteWindowMinutes    int
	NotificationTTLDays    int
	NotifyWorkers          int
	NotifyQueueSize        int
	ShutdownTimeoutSeconds int
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")

	redisAddr := ""
	if redisHost := os.Getenv("REDIS_HOST"); redisHost != "" {
		redisAddr = fmt.Sprintf("%s:%s", redisHost, getEnv("REDIS_PORT", "6379"))
	}

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:            getEnv("DATABASE_DSN", "sitebid.db"),
		RateLimit:              getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
		RedisAddr:              redisAddr,
		WorkloadKeyPrefix:      getEnv("WORKLOAD_KEY_PREFIX", "workload:contractor:"),
		EditWindowHours:        getEnvAsInt("UPDATE_EDIT_WINDOW_HOURS", 24),
		DeleteWindowMinutes:    getEnvAsInt("UPDATE_DELETE_WINDOW_MINUTES", 60),
		NotificationTTLDays:    getEnvAsInt("NOTIFICATION_TTL_DAYS", 30),
		NotifyWorkers:          getEnvAsInt("NOTIFY_WORKERS", 2),
		NotifyQueueSize:        getEnvAsInt("NOTIFY_QUEUE_SIZE", 256),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
	}

	validate(cfg)
	return cfg
}

func validate(cfg Config) {
	if cfg.AppURL == "" {
		log.Fatal("APP_URL must not be empty (e.g. 127.0.0.1:8080)")
	}
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}
	if cfg.RateLimit <= 0 {
		log.Fatal("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.EditWindowHours <= 0 {
		log.Fatal("UPDATE_EDIT_WINDOW_HOURS must be greater than 0")
	}
	if cfg.DeleteWindowMinutes <= 0 {
		log.Fatal("UPDATE_DELETE_WINDOW_MINUTES must be greater than 0")
	}
	if cfg.NotificationTTLDays <= 0 {
		log.Fatal("NOTIFICATION_TTL_DAYS must be greater than 0")
	}
	if cfg.NotifyWorkers <= 0 {
		log.Fatal("NOTIFY_WORKERS must be greater than 0")
	}
	if cfg.NotifyQueueSize <= 0 {
		log.Fatal("NOTIFY_QUEUE_SIZE must be greater than 0")
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}
