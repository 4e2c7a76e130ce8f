package config

import (
	"fmt"
	"net/netip"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	StoreTypeFile     = "file"
	StoreTypePostgres = "postgres"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	GRPC      GRPCConfig      `yaml:"grpc"`
	Database  DatabaseConfig  `yaml:"database"`
	Store     StoreConfig     `yaml:"store"`
	Storage   StorageConfig   `yaml:"storage"`
	Session   SessionConfig   `yaml:"session"`
	JWT       JWTConfig       `yaml:"jwt"`
	Admin     AdminConfig     `yaml:"admin"`
	Email     EmailConfig     `yaml:"email"`
	Log       LogConfig       `yaml:"log"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	ReadTimeoutSeconds int    `yaml:"read_timeout_seconds"`
	MaxBodyMB          int64  `yaml:"max_body_mb"`
}

// GRPCConfig contains the health-check gRPC listener. Port 0 disables it.
type GRPCConfig struct {
	Port int `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// StoreConfig selects the ledger backend.
type StoreConfig struct {
	Type    string `yaml:"type"`     // "file" or "postgres"
	DataDir string `yaml:"data_dir"` // for the file backend
}

// StorageConfig contains upload settings
type StorageConfig struct {
	UploadDir    string   `yaml:"upload_dir"`
	MaxFileSize  int64    `yaml:"max_file_size_mb"`
	AllowedTypes []string `yaml:"allowed_types"`
}

// SessionConfig contains the cookie session settings
type SessionConfig struct {
	Secret        string `yaml:"secret"`
	Name          string `yaml:"name"`
	Domain        string `yaml:"domain"`
	Secure        bool   `yaml:"secure"`
	MaxAgeMinutes int    `yaml:"max_age_minutes"`
}

// JWTConfig contains bearer token settings
type JWTConfig struct {
	Secret            string `yaml:"secret"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes"`
	Issuer            string `yaml:"issuer"`
}

// AdminConfig holds the single platform administrator account.
type AdminConfig struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"` // bcrypt
}

// EmailConfig contains identifier delivery settings. An empty API key logs
// messages instead of sending them.
type EmailConfig struct {
	SendGridAPIKey string `yaml:"sendgrid_api_key"`
	FromAddress    string `yaml:"from_address"`
	FromName       string `yaml:"from_name"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// RateLimitConfig throttles the login endpoints per client address.
// X-Forwarded-For is honoured only for connections from TrustedProxies
// (IP addresses or CIDR ranges).
type RateLimitConfig struct {
	LoginPerMinute int      `yaml:"login_per_minute"`
	Burst          int      `yaml:"burst"`
	TrustedProxies []string `yaml:"trusted_proxies"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML, applies environment overrides and validates.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Store
	if val := os.Getenv("STORE_TYPE"); val != "" {
		c.Store.Type = val
	}
	if val := os.Getenv("DATA_DIR"); val != "" {
		c.Store.DataDir = val
	}
	if val := os.Getenv("UPLOAD_DIR"); val != "" {
		c.Storage.UploadDir = val
	}

	// Secrets
	if val := os.Getenv("SESSION_SECRET"); val != "" {
		c.Session.Secret = val
	}
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}
	if val := os.Getenv("ADMIN_USERNAME"); val != "" {
		c.Admin.Username = val
	}
	if val := os.Getenv("ADMIN_PASSWORD_HASH"); val != "" {
		c.Admin.PasswordHash = val
	}
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.SendGridAPIKey = val
	}

	if val := os.Getenv("TRUSTED_PROXIES"); val != "" {
		c.RateLimit.TrustedProxies = strings.Split(val, ",")
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
}

// Validate fills defaults and checks the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeoutSeconds == 0 {
		c.Server.ReadTimeoutSeconds = 15
	}
	if c.Server.MaxBodyMB == 0 {
		c.Server.MaxBodyMB = 64
	}
	if c.GRPC.Port < 0 || c.GRPC.Port > 65535 {
		return fmt.Errorf("invalid grpc port: %d", c.GRPC.Port)
	}

	c.Store.Type = strings.ToLower(c.Store.Type)
	switch c.Store.Type {
	case "":
		c.Store.Type = StoreTypeFile
		fallthrough
	case StoreTypeFile:
		if c.Store.DataDir == "" {
			c.Store.DataDir = "data"
		}
	case StoreTypePostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
		if c.Database.Port == 0 {
			c.Database.Port = 5432
		}
		if c.Database.SSLMode == "" {
			c.Database.SSLMode = "disable"
		}
	default:
		return fmt.Errorf("unknown store type: %q", c.Store.Type)
	}

	if c.Storage.UploadDir == "" {
		c.Storage.UploadDir = "uploads"
	}
	if c.Storage.MaxFileSize == 0 {
		c.Storage.MaxFileSize = 16
	}
	if len(c.Storage.AllowedTypes) == 0 {
		c.Storage.AllowedTypes = []string{"pdf", "png", "jpg", "jpeg", "doc", "docx"}
	}

	if len(c.Session.Secret) < 32 {
		return fmt.Errorf("session secret must be at least 32 characters")
	}
	if c.Session.Name == "" {
		c.Session.Name = "impactecho_session"
	}
	if c.Session.MaxAgeMinutes == 0 {
		c.Session.MaxAgeMinutes = 8 * 60
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.JWT.AccessTokenExpiry == 0 {
		c.JWT.AccessTokenExpiry = 60
	}
	if c.JWT.Issuer == "" {
		c.JWT.Issuer = "impactecho"
	}

	if c.Admin.Username == "" {
		return fmt.Errorf("admin username is required")
	}
	if !strings.HasPrefix(c.Admin.PasswordHash, "$2") {
		return fmt.Errorf("admin password hash must be a bcrypt hash")
	}

	if c.Email.FromAddress == "" {
		c.Email.FromAddress = "no-reply@impactecho.org"
	}
	if c.Email.FromName == "" {
		c.Email.FromName = "ImpactEcho"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	if c.RateLimit.LoginPerMinute == 0 {
		c.RateLimit.LoginPerMinute = 10
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 5
	}
	for _, p := range c.RateLimit.TrustedProxies {
		if _, err := ParseProxy(p); err != nil {
			return err
		}
	}

	return nil
}

// ParseProxy reads a trusted proxy entry: a CIDR range or a single address.
func ParseProxy(s string) (netip.Prefix, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "/") {
		prefix, err := netip.ParsePrefix(s)
		if err != nil {
			return netip.Prefix{}, fmt.Errorf("invalid trusted proxy %q: %w", s, err)
		}
		return prefix.Masked(), nil
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("invalid trusted proxy %q: %w", s, err)
	}
	addr = addr.Unmap()
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetGRPCAddress returns the health-check listen address
func (c *Config) GetGRPCAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.GRPC.Port)
}
