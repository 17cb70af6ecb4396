// internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds everything the server, worker and seeder need.
type Config struct {
	HTTPAddr string         `yaml:"http_addr"`
	Database DatabaseConfig `yaml:"database"`
	AMQPURL  string         `yaml:"amqp_url"`
	Log      LogConfig      `yaml:"log"`

	// FetchTimeout bounds the customer fetch behind the dashboard page. Zero disables it.
	FetchTimeout time.Duration `yaml:"customers_fetch_timeout"`
}

type DatabaseConfig struct {
	Driver     string `yaml:"driver"` // postgres, sqlite
	URL        string `yaml:"url"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	Name       string `yaml:"name"`
	SSLMode    string `yaml:"sslmode"`
	SQLitePath string `yaml:"sqlite_path"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console, json
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		HTTPAddr: ":8080",
		Database: DatabaseConfig{
			Driver:     "postgres",
			Host:       "localhost",
			Port:       "5432",
			SSLMode:    "disable",
			SQLitePath: "customers.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		FetchTimeout: 10 * time.Second,
	}
}

// Load reads .env (if present), then the optional YAML file named by CONFIG_FILE,
// then environment variables. Later sources win.
func Load() (Config, error) {
	// a missing .env is fine, the process env is used as is
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.HTTPAddr, "HTTP_ADDR")
	setString(&cfg.AMQPURL, "AMQP_URL")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Format, "LOG_FORMAT")

	db := &cfg.Database
	setString(&db.Driver, "DB_DRIVER")
	setString(&db.URL, "DATABASE_URL")
	setString(&db.User, "DB_USER")
	setString(&db.Password, "DB_PASSWORD")
	setString(&db.Host, "DB_HOST")
	setString(&db.Port, "DB_PORT")
	setString(&db.Name, "DB_NAME")
	setString(&db.SSLMode, "DB_SSLMODE")
	setString(&db.SQLitePath, "SQLITE_PATH")

	if v := os.Getenv("CUSTOMERS_FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CUSTOMERS_FETCH_TIMEOUT: %w", err)
		}
		cfg.FetchTimeout = d
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate rejects settings the binaries cannot start with.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.FetchTimeout < 0 {
		return fmt.Errorf("customers fetch timeout must not be negative, got %s", c.FetchTimeout)
	}
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	return nil
}

// DSN returns the data source name for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.Driver == "sqlite" {
		return d.SQLitePath
	}
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	return u.String()
}
