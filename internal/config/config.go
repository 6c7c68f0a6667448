package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env  string
	Port int

	// StoreDriver picks the persistence backend: "postgres" or "sqlite".
	StoreDriver   string
	DBURL         string
	SQLitePath    string
	MigrationsDir string

	// seeded owner account
	OwnerEmail    string
	OwnerPassword string
	OwnerName     string

	AllowedOrigins []string

	OTLPEndpoint   string
	TracingEnabled bool
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	env := getEnv("APP_ENV", "dev")
	port := getEnvInt("PORT", 8080)
	otlp := getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	return Config{
		Env:           env,
		Port:          port,
		StoreDriver:   getEnv("STORE_DRIVER", "sqlite"),
		DBURL:         buildDBURL(),
		SQLitePath:    getEnv("SQLITE_PATH", "data/corpo-ativo.db"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "db/migrations"),
		OwnerEmail:    getEnv("OWNER_EMAIL", "admin@corpoativo.com"),
		OwnerPassword: getEnv("OWNER_PASSWORD", "corpo123"),
		OwnerName:     getEnv("OWNER_NAME", "Administrador Corpo Ativo"),
		AllowedOrigins: []string{
			getEnv("CORS_ORIGIN", "http://localhost:5173"),
		},
		OTLPEndpoint:   otlp,
		TracingEnabled: otlp != "",
	}
}

func buildDBURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "corpoativo")
	pass := getEnv("DB_PASSWORD", "corpoativo")
	name := getEnv("DB_NAME", "corpoativo")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			fmt.Println(err)
			return fallback
		}

		return num
	}
	return fallback
}
