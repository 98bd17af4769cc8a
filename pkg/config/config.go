package config

import (
	"os"
	"strconv"
)

// DBConfig holds PostgreSQL settings.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// RedisConfig holds Redis settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret string `yaml:"secret"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string `yaml:"port"`
}

// APIConfig holds the backend base URL consumed by the client.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
}

// SessionConfig selects the client session backend.
// Backend is "file" or "redis"; Path applies to the file backend.
type SessionConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// OverrideDBFromEnv applies DB_* environment overrides.
func OverrideDBFromEnv(cfg *DBConfig) {
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Port = p
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.Password = password
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Name = name
	}
}

// OverrideRedisFromEnv applies REDIS_* environment overrides.
func OverrideRedisFromEnv(cfg *RedisConfig) {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Password = password
	}
}

// OverrideJWTFromEnv applies the JWT_SECRET environment override.
func OverrideJWTFromEnv(cfg *JWTConfig) {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Secret = secret
	}
}

// OverrideServerFromEnv applies the SERVER_PORT environment override.
func OverrideServerFromEnv(cfg *ServerConfig) {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Port = port
	}
}

// OverrideAPIFromEnv applies the API_URL environment override.
func OverrideAPIFromEnv(cfg *APIConfig) {
	if url := os.Getenv("API_URL"); url != "" {
		cfg.BaseURL = url
	}
}

// OverrideSessionFromEnv applies SESSION_* environment overrides.
func OverrideSessionFromEnv(cfg *SessionConfig) {
	if backend := os.Getenv("SESSION_BACKEND"); backend != "" {
		cfg.Backend = backend
	}
	if path := os.Getenv("SESSION_PATH"); path != "" {
		cfg.Path = path
	}
}
