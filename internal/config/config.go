package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/jengzang/slotting-backend-go/internal/analytics"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	Port           string        `yaml:"port"`
	DBPath         string        `yaml:"db_path"`
	JWTSecret      string        `yaml:"jwt_secret"`
	AuthEnabled    bool          `yaml:"auth_enabled"`
	APIKey         string        `yaml:"api_key"`    // 换取 JWT 的密钥
	TokenTTL       time.Duration `yaml:"token_ttl"`  // JWT 有效期
	RateLimit      int           `yaml:"rate_limit"` // 每分钟每个 IP 的请求数，0 表示不限
	LogLevel       string        `yaml:"log_level"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes"` // 上传文件大小上限（字节）

	Analytics analytics.Options `yaml:"analytics"`
}

const defaultJWTSecret = "your-secret-key-change-in-production"

// Default 默认配置
func Default() *Config {
	return &Config{
		Port:           ":8080",
		DBPath:         "./data/slotting.db",
		JWTSecret:      defaultJWTSecret,
		TokenTTL:       24 * time.Hour,
		RateLimit:      600,
		LogLevel:       "info",
		MaxUploadBytes: 32 << 20,
		Analytics:      analytics.DefaultOptions(),
	}
}

// Load 加载配置：默认值 -> YAML 文件 -> .env -> 环境变量。
// path 为空时读取 CONFIG_FILE；文件不存在时使用默认值。
func Load(path string) (*Config, error) {
	cfg := Default()

	// .env 中的值不会覆盖已存在的环境变量
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides 环境变量优先于配置文件
func (c *Config) applyEnvOverrides() error {
	if port := os.Getenv("PORT"); port != "" {
		c.Port = port
	}
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		c.DBPath = dbPath
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.JWTSecret = secret
	}
	if key := os.Getenv("API_KEY"); key != "" {
		c.APIKey = key
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}

	if v := os.Getenv("AUTH_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid AUTH_ENABLED: %w", err)
		}
		c.AuthEnabled = b
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TOKEN_TTL: %w", err)
		}
		c.TokenTTL = d
	}
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT: %w", err)
		}
		c.RateLimit = n
	}
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid MAX_UPLOAD_BYTES: %w", err)
		}
		c.MaxUploadBytes = n
	}
	if v := os.Getenv("HOURLY_RATE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid HOURLY_RATE: %w", err)
		}
		c.Analytics.HourlyRate = f
	}
	return nil
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	if c.DBPath == "" {
		return errors.New("db path is required")
	}
	if c.RateLimit < 0 {
		return errors.New("rate limit must not be negative")
	}
	if c.TokenTTL <= 0 {
		return errors.New("token ttl must be positive")
	}
	if c.AuthEnabled {
		if c.JWTSecret == "" || c.JWTSecret == defaultJWTSecret {
			return errors.New("JWT_SECRET must be set when auth is enabled")
		}
		if c.APIKey == "" {
			return errors.New("API_KEY must be set when auth is enabled")
		}
	}
	return nil
}
