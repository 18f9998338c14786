package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort            = "5000"
	defaultFrontendURL     = "http://localhost:3000"
	defaultDatabaseURL     = "teecole.db"
	defaultJWTSecret       = "change-me-jwt-secret"
	defaultJWTTTL          = "24h"
	defaultUploadDir       = "uploads"
	defaultUploadURLPrefix = "/uploads"
	defaultMaxUploadSize   = 5 * 1024 * 1024
	defaultSMTPPort        = "587"
	defaultSMTPTimeout     = "10s"
	defaultNotifyEmail     = "info@teecoleltd.com"
	defaultAdminUsername   = "Teecole"
	defaultAdminPassword   = "change-me-admin-password"
	defaultAdminEmail      = "admin@teecoleltd.com"
	defaultRateLimitRPS    = "1"
	defaultRateLimitBurst  = 5
	defaultLogLevel        = "info"
)

type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
	Timeout  time.Duration
}

// Enabled reports whether outbound mail is configured at all.
func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

type AdminSeed struct {
	Username string
	Password string
	Email    string
}

type AppConfig struct {
	AppEnv          string
	Port            string
	FrontendURL     string
	DatabaseURL     string
	JWTSecret       string
	JWTTTL          time.Duration
	UploadDir       string
	UploadURLPrefix string
	MaxUploadSize   int64
	SMTP            SMTPConfig
	NotifyEmail     string
	Admin           AdminSeed
	RateLimitRPS    float64
	RateLimitBurst  int
	TrustedProxies  []string
	LogLevel        string
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (*AppConfig, error) {
	if err := loadDotEnv(envFiles...); err != nil {
		return nil, err
	}

	cfg := &AppConfig{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("NODE_ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))
	cfg.FrontendURL = strings.TrimRight(strings.TrimSpace(getEnv("FRONTEND_URL", defaultFrontendURL)), "/")
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.UploadDir = strings.TrimSpace(getEnv("UPLOAD_DIR", defaultUploadDir))
	cfg.UploadURLPrefix = "/" + strings.Trim(strings.TrimSpace(getEnv("UPLOAD_URL_PREFIX", defaultUploadURLPrefix)), "/")
	cfg.NotifyEmail = strings.TrimSpace(getEnv("CONTACT_NOTIFY_EMAIL", defaultNotifyEmail))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel)))

	cfg.SMTP = SMTPConfig{
		Host:     strings.TrimSpace(os.Getenv("SMTP_HOST")),
		Port:     strings.TrimSpace(getEnv("SMTP_PORT", defaultSMTPPort)),
		User:     strings.TrimSpace(os.Getenv("SMTP_USER")),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     strings.TrimSpace(os.Getenv("SMTP_FROM")),
	}
	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.User
	}

	cfg.Admin = AdminSeed{
		Username: strings.TrimSpace(getEnv("ADMIN_USERNAME", defaultAdminUsername)),
		Password: getEnv("ADMIN_PASSWORD", defaultAdminPassword),
		Email:    strings.TrimSpace(getEnv("ADMIN_EMAIL", defaultAdminEmail)),
	}

	cfg.TrustedProxies = splitList(os.Getenv("TRUSTED_PROXIES"))

	var err error
	cfg.SMTP.Timeout, err = parseDurationEnv("SMTP_TIMEOUT", defaultSMTPTimeout)
	if err != nil {
		return nil, err
	}

	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}

	cfg.MaxUploadSize, err = parseInt64Env("MAX_UPLOAD_SIZE", defaultMaxUploadSize)
	if err != nil {
		return nil, err
	}

	cfg.RateLimitRPS, err = parseFloatEnv("RATE_LIMIT_RPS", defaultRateLimitRPS)
	if err != nil {
		return nil, err
	}

	burst, err := parseInt64Env("RATE_LIMIT_BURST", defaultRateLimitBurst)
	if err != nil {
		return nil, err
	}
	cfg.RateLimitBurst = int(burst)

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether strict settings apply.
func (c *AppConfig) IsProduction() bool {
	return isProdLike(c.AppEnv)
}

// Addr is the listen address for the HTTP server.
func (c *AppConfig) Addr() string {
	return ":" + c.Port
}

func validateConfig(cfg *AppConfig) error {
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", cfg.Port)
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.MaxUploadSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE must be > 0")
	}
	if cfg.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR must not be empty")
	}
	if cfg.UploadURLPrefix == "/" {
		return fmt.Errorf("UPLOAD_URL_PREFIX must not be the site root")
	}
	if cfg.RateLimitRPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be > 0")
	}
	if cfg.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be > 0")
	}
	if cfg.SMTP.Timeout <= 0 {
		return fmt.Errorf("SMTP_TIMEOUT must be > 0")
	}
	for _, p := range cfg.TrustedProxies {
		if net.ParseIP(p) == nil {
			if _, _, err := net.ParseCIDR(p); err != nil {
				return fmt.Errorf("TRUSTED_PROXIES entry %q is not an IP or CIDR", p)
			}
		}
	}
	if cfg.Admin.Username == "" || cfg.Admin.Email == "" {
		return fmt.Errorf("ADMIN_USERNAME and ADMIN_EMAIL must not be empty")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.Admin.Password, defaultAdminPassword) {
			return fmt.Errorf("in prod/release ADMIN_PASSWORD must be set and not default")
		}
	}

	return nil
}

func loadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseInt64Env(name string, fallback int64) (int64, error) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseFloatEnv(name, fallback string) (float64, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return f, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
