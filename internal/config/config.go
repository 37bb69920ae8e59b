package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port string

	JWTSecret     string
	AdminUsername string
	AdminPassword string

	GoEnv string // dev/prod
}

// Load reads configuration from the environment. Everything has a dev
// default except the JWT secret in prod, so a bare `go run` works against
// the local sqlite store.
func Load() (Config, error) {
	cfg := Config{
		Port: getenv("PORT", "8080"),

		JWTSecret:     getenv("JWT_SECRET", "dev_secret_change_me"),
		AdminUsername: getenv("ADMIN_USERNAME", "admin"),
		AdminPassword: getenv("ADMIN_PASSWORD", "admin"),

		GoEnv: getenv("GO_ENV", "dev"),
	}

	if cfg.GoEnv == "prod" && os.Getenv("JWT_SECRET") == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required in prod")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
