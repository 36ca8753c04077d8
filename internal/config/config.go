package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port            int              `json:"port"`
	JWTSecret       string           `json:"jwt_secret"`
	TokenTTLHours   int              `json:"token_ttl_hours"`
	PageSize        int              `json:"page_size"`
	LoginRateWindow int              `json:"login_rate_window_seconds"`
	CORSAllowlist   []string         `json:"cors_allowlist"`
	LogConfig       logger.LogConfig `json:"log_config"`
	Database        DatabaseConfig   `json:"database"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"db_name"`
	SSLMode  string `json:"ssl_mode"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.applyEnv()
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.Database.DSN == "" && cfg.Database.Host == "" {
		return nil, fmt.Errorf("database.dsn or database.host is required")
	}
	if cfg.TokenTTLHours == 0 {
		cfg.TokenTTLHours = 72
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = 40
	}
	if cfg.LoginRateWindow == 0 {
		cfg.LoginRateWindow = 1
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	return &cfg, nil
}

// applyEnv overlays secrets from the environment so they can stay out of
// the config file. A local .env file is honored when present.
func (c *Config) applyEnv() {
	_ = godotenv.Load()
	if v := os.Getenv("BILLTRACK_JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv("BILLTRACK_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("BILLTRACK_DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("BILLTRACK_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			c.Database.Port = port
		}
	}
	if v := os.Getenv("BILLTRACK_DB_USER"); v != "" {
		c.Database.User = v
	}
	if v := os.Getenv("BILLTRACK_DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("BILLTRACK_DB_NAME"); v != "" {
		c.Database.DBName = v
	}
}
