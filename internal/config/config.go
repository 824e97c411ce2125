package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port            string
	Env             string
	MongoURI        string
	MongoDB         string
	RedisAddr       string
	RabbitURL       string
	GoogleClientID  string
	GoogleSecret    string
	GoogleRedirect  string
	SessionSecret   string
	SessionTTLHours int
	StaticDir       string
	RateLimitPerMin int
	DDEnabled       bool
}

func Load() Config {
	return Config{
		Port:            getenv("APP_PORT", "5000"),
		Env:             getenv("APP_ENV", "dev"),
		MongoURI:        getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getenv("MONGO_DB", "studentlife"),
		RedisAddr:       getenv("REDIS_ADDR", ""),
		RabbitURL:       getenv("RABBIT_URL", ""),
		GoogleClientID:  getenv("GOOGLE_CLIENT_ID", ""),
		GoogleSecret:    getenv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirect:  getenv("GOOGLE_REDIRECT_URL", "http://localhost:5000/auth/google/callback"),
		SessionSecret:   getenv("SESSION_SECRET", "default_session_key"),
		SessionTTLHours: atoi(getenv("SESSION_TTL_HOURS", "72")),
		StaticDir:       getenv("STATIC_DIR", "public"),
		RateLimitPerMin: atoi(getenv("RATE_LIMIT_PER_MIN", "30")),
		DDEnabled:       getenv("DD_ENABLED", "") == "true",
	}
}

func atoi(s string) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return 0
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
