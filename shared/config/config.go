package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	BaseURL         string        `yaml:"base_url"` // public origin used to build confirmation links
	AccountsAddr    string        `yaml:"accounts_addr"`
	CatalogAddr     string        `yaml:"catalog_addr"`
	FrontendAddr    string        `yaml:"frontend_addr"`
	JwtTTL          time.Duration `yaml:"jwt_ttl"`
	JwtIssuer       string        `yaml:"jwt_issuer"`
	JwtAudience     string        `yaml:"jwt_audience"`
	SessionTTL      time.Duration `yaml:"session_ttl"`
	SecureCookies   bool          `yaml:"secure_cookies"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	DefaultAdmin    string        `yaml:"default_admin_email"`
	DefaultUser     string        `yaml:"default_user_email"`
	PageSizeDefault int           `yaml:"page_size_default"`
	PageSizeMax     int           `yaml:"page_size_max"`
	LogLevel        string        `yaml:"log_level"`
	LogJSON         bool          `yaml:"log_json"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Mongo struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

type Email struct {
	SMTPServer string `yaml:"smtp_server"`
	SMTPPort   int    `yaml:"smtp_port"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	SenderName string `yaml:"sender_name"`
	Timeout    int    `yaml:"timeout"` // seconds
}

type Private struct {
	JwtKey           string `yaml:"jwt_key"`
	CatalogAPIKey    string `yaml:"catalog_api_key"`
	DefaultAdminPass string `yaml:"default_admin_password"`
	DefaultUserPass  string `yaml:"default_user_password"`
	Pg               Pg     `yaml:"pg"`
	Mongo            Mongo  `yaml:"mongo"`
	Email            Email  `yaml:"email"`
}

// implementing service-level config interfaces

func (s *Config) JwtKey() string {
	return s.Private.JwtKey
}

func (s *Config) JwtTTL() time.Duration {
	return s.Public.JwtTTL
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)

	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

// MustLoad reads public.yaml and private.yaml from configFolder.
// A missing jwt_key is a startup-class error: token signing must never
// silently fall back to a default secret.
func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	if private.JwtKey == "" {
		panic("jwt_key is not set in private config")
	}

	cfg := &Config{public, private}
	applyDefaults(&cfg.Public)
	return cfg
}

func applyDefaults(p *Public) {
	if p.JwtTTL == 0 {
		p.JwtTTL = 3 * time.Hour
	}
	if p.SessionTTL == 0 {
		p.SessionTTL = p.JwtTTL
	}
	if p.PageSizeDefault == 0 {
		p.PageSizeDefault = 20
	}
	if p.PageSizeMax == 0 {
		p.PageSizeMax = 100
	}
	if p.LogLevel == "" {
		p.LogLevel = "info"
	}
	if len(p.AllowedOrigins) == 0 {
		p.AllowedOrigins = []string{p.FrontendAddr}
	}
}
