package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Project source kinds.
const (
	SourceDB   = "db"
	SourceFile = "file"
)

// Config defines server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	DB      DBConfig      `yaml:"db"`
	Catalog CatalogConfig `yaml:"catalog"`
	Limits  LimitsConfig  `yaml:"limits"`
	Admin   AdminConfig   `yaml:"admin"`
	Resume  ResumeConfig  `yaml:"resume"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	TrustProxy bool   `yaml:"trust_proxy"`
	AssetsDir  string `yaml:"assets_dir"`
	IndexFile  string `yaml:"index_file"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DBConfig holds one path per store.
type DBConfig struct {
	StatsPath   string `yaml:"stats_path"`
	ContentPath string `yaml:"content_path"`
}

type CatalogConfig struct {
	ProjectsSource string `yaml:"projects_source"`
	ProjectsFile   string `yaml:"projects_file"`
}

type LimitsConfig struct {
	LikeCooldown  time.Duration `yaml:"like_cooldown"`
	ViewCooldown  time.Duration `yaml:"view_cooldown"`
	PruneSchedule string        `yaml:"prune_schedule"`
}

type AdminConfig struct {
	PasswordHash  string        `yaml:"password_hash"`
	SessionSecret string        `yaml:"session_secret"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	CookieSecure  bool          `yaml:"cookie_secure"`
}

type ResumeConfig struct {
	Path     string `yaml:"path"`
	MaxBytes int64  `yaml:"max_bytes"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:      "0.0.0.0",
			Port:      8080,
			AssetsDir: "static",
			IndexFile: "index.html",
		},
		DB: DBConfig{
			StatsPath:   "stats.db",
			ContentPath: "content.db",
		},
		Catalog: CatalogConfig{
			ProjectsSource: SourceDB,
			ProjectsFile:   "projects.json",
		},
		Limits: LimitsConfig{
			LikeCooldown:  60 * time.Second,
			ViewCooldown:  time.Hour,
			PruneSchedule: "@every 1h",
		},
		Admin: AdminConfig{
			SessionTTL: 12 * time.Hour,
		},
		Resume: ResumeConfig{
			Path:     "static/resume.pdf",
			MaxBytes: 10 << 20,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a .env file, an optional YAML file and
// environment variables, in that order of increasing precedence.
func Load() (Config, error) {
	// A missing .env is fine; variables already set win over the file.
	_ = godotenv.Load()

	cfg := Default()

	if path := os.Getenv("PORTFOLIO_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString("PORTFOLIO_SERVER_HOST", &cfg.Server.Host)
	if err := setInt("PORTFOLIO_SERVER_PORT", &cfg.Server.Port); err != nil {
		return err
	}
	if err := setBool("PORTFOLIO_SERVER_TRUST_PROXY", &cfg.Server.TrustProxy); err != nil {
		return err
	}
	setString("PORTFOLIO_SERVER_ASSETS_DIR", &cfg.Server.AssetsDir)
	setString("PORTFOLIO_SERVER_INDEX_FILE", &cfg.Server.IndexFile)

	setString("PORTFOLIO_DB_STATS_PATH", &cfg.DB.StatsPath)
	setString("PORTFOLIO_DB_CONTENT_PATH", &cfg.DB.ContentPath)

	setString("PORTFOLIO_CATALOG_PROJECTS_SOURCE", &cfg.Catalog.ProjectsSource)
	setString("PORTFOLIO_CATALOG_PROJECTS_FILE", &cfg.Catalog.ProjectsFile)

	if err := setDuration("PORTFOLIO_LIMITS_LIKE_COOLDOWN", &cfg.Limits.LikeCooldown); err != nil {
		return err
	}
	if err := setDuration("PORTFOLIO_LIMITS_VIEW_COOLDOWN", &cfg.Limits.ViewCooldown); err != nil {
		return err
	}
	setString("PORTFOLIO_LIMITS_PRUNE_SCHEDULE", &cfg.Limits.PruneSchedule)

	setString("PORTFOLIO_ADMIN_PASSWORD_HASH", &cfg.Admin.PasswordHash)
	setString("PORTFOLIO_ADMIN_SESSION_SECRET", &cfg.Admin.SessionSecret)
	if err := setDuration("PORTFOLIO_ADMIN_SESSION_TTL", &cfg.Admin.SessionTTL); err != nil {
		return err
	}
	if err := setBool("PORTFOLIO_ADMIN_COOKIE_SECURE", &cfg.Admin.CookieSecure); err != nil {
		return err
	}

	setString("PORTFOLIO_RESUME_PATH", &cfg.Resume.Path)
	if v := os.Getenv("PORTFOLIO_RESUME_MAX_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid PORTFOLIO_RESUME_MAX_BYTES: %w", err)
		}
		cfg.Resume.MaxBytes = n
	}

	setString("PORTFOLIO_LOG_LEVEL", &cfg.Log.Level)
	setString("PORTFOLIO_LOG_FILE", &cfg.Log.File)
	return nil
}

func setString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

func setBool(key string, dst *bool) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = b
	return nil
}

func setDuration(key string, dst *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}

// Validate rejects configurations the server cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if c.DB.StatsPath == "" {
		errs = append(errs, errors.New("db.stats_path is required"))
	}
	if c.DB.ContentPath == "" {
		errs = append(errs, errors.New("db.content_path is required"))
	}
	switch c.Catalog.ProjectsSource {
	case SourceDB:
	case SourceFile:
		if c.Catalog.ProjectsFile == "" {
			errs = append(errs, errors.New("catalog.projects_file is required when projects_source is file"))
		}
	default:
		errs = append(errs, fmt.Errorf("catalog.projects_source must be %q or %q, got %q", SourceDB, SourceFile, c.Catalog.ProjectsSource))
	}
	if c.Limits.LikeCooldown < 0 {
		errs = append(errs, errors.New("limits.like_cooldown must not be negative"))
	}
	if c.Limits.ViewCooldown < 0 {
		errs = append(errs, errors.New("limits.view_cooldown must not be negative"))
	}
	if c.Admin.SessionTTL <= 0 {
		errs = append(errs, errors.New("admin.session_ttl must be positive"))
	}
	if c.Admin.PasswordHash != "" && c.Admin.SessionSecret == "" {
		errs = append(errs, errors.New("admin.session_secret is required when a password hash is set"))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	return errors.Join(errs...)
}
