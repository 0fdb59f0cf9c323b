package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"petmate/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Logging    LoggingConfig    `yaml:"logging"`
	Backend    BackendConfig    `yaml:"backend"`
	Gateway    GatewayConfig    `yaml:"gateway"`
	Redis      RedisConfig      `yaml:"redis"`
	Session    SessionConfig    `yaml:"session"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Dashboard  DashboardConfig  `yaml:"dashboard"`
	Reviews    ReviewsConfig    `yaml:"reviews"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
	Timezone    string `yaml:"timezone"`
}

// BackendConfig points at the Spring REST API.
type BackendConfig struct {
	BaseURL string `yaml:"base_url"`
	// Timeout of zero leaves the HTTP client without a deadline.
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

type GatewayConfig struct {
	Enabled   bool                   `yaml:"enabled"`
	Port      int                    `yaml:"port"`
	Auth      GatewayAuthConfig      `yaml:"auth"`
	RateLimit GatewayRateLimitConfig `yaml:"rate_limit"`
}

type GatewayAuthConfig struct {
	JWTSecret    string `yaml:"jwt_secret"`
	CompanyClaim string `yaml:"company_claim"`
	RoleClaim    string `yaml:"role_claim"`
}

type GatewayRateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type SessionConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type DashboardConfig struct {
	// SnapshotTTL bounds how long calendar counts are served without a refetch.
	SnapshotTTL time.Duration `yaml:"snapshot_ttl"`
}

type ReviewsConfig struct {
	PageSize int `yaml:"page_size"`
}

func Load(configPath string) (*Config, error) {
	// .env is optional; variables may come from the environment directly
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	base := strings.TrimSpace(c.Backend.BaseURL)
	if base == "" {
		return errors.New("backend base_url is required")
	}
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("backend base_url must be an absolute http(s) URL: %q", base)
	}
	if c.Backend.Timeout < 0 {
		return errors.New("backend timeout must not be negative")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid app timezone %q: %w", c.App.Timezone, err)
	}
	if c.Dashboard.SnapshotTTL < 0 {
		return errors.New("dashboard snapshot_ttl must not be negative")
	}
	if c.Gateway.RateLimit.RPS < 0 {
		return errors.New("gateway rate_limit.rps must not be negative")
	}
	return nil
}

// Location returns the time zone used to render booking times.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.App.Timezone)
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "petmate-gateway"
	}
	if c.App.Timezone == "" {
		c.App.Timezone = "Asia/Seoul"
	}
	c.Backend.BaseURL = strings.TrimRight(strings.TrimSpace(c.Backend.BaseURL), "/")
	if c.Gateway.Port == 0 {
		c.Gateway.Port = 8080
	}
	if c.Gateway.Auth.CompanyClaim == "" {
		c.Gateway.Auth.CompanyClaim = "companyId"
	}
	if c.Gateway.Auth.RoleClaim == "" {
		c.Gateway.Auth.RoleClaim = "role"
	}
	if c.Gateway.RateLimit.RPS > 0 && c.Gateway.RateLimit.Burst == 0 {
		c.Gateway.RateLimit.Burst = 5
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
	if c.Session.TTL == 0 {
		c.Session.TTL = 24 * time.Hour
	}
	if c.Dashboard.SnapshotTTL == 0 {
		c.Dashboard.SnapshotTTL = time.Minute
	}
	if c.Reviews.PageSize == 0 {
		c.Reviews.PageSize = models.DefaultReviewPageSize
	}
}
