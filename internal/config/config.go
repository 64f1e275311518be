package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration. Every field comes from an
// environment variable; most have defaults so a bare dev environment
// starts without any setup.
type Config struct {
	Env         string   // application environment (dev/prod)
	Port        string   // HTTP port to listen on
	DBUser      string   // database username
	DBPass      string   // database password (optional)
	DBHost      string   // database host
	DBPort      string   // database port
	DBName      string   // database name
	JWTSecret   string   // secret used to sign access tokens
	BcryptCost  int      // bcrypt work factor for password hashing
	CORSOrigins []string // allowed CORS origins
	AMQPURL     string   // RabbitMQ URL for account events (optional)
}

// Load reads configuration from environment variables. JWT_SECRET
// falls back to a development default; production deployments are
// expected to override it.
func Load() Config {
	return Config{
		Env:         getenv("APP_ENV", "dev"),
		Port:        getenv("APP_PORT", "8888"),
		DBUser:      getenv("DB_USER", "medix"),
		DBPass:      os.Getenv("DB_PASS"),
		DBHost:      getenv("DB_HOST", "localhost"),
		DBPort:      getenv("DB_PORT", "3306"),
		DBName:      getenv("DB_NAME", "medix"),
		JWTSecret:   getenv("JWT_SECRET", "medix-dev-secret"),
		BcryptCost:  getenvInt("BCRYPT_COST", 10),
		CORSOrigins: splitCSV(getenv("CORS_ORIGINS", "*")),
		AMQPURL:     os.Getenv("RABBITMQ_URL"),
	}
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
