// Package config loads tablero settings from defaults, an optional YAML
// file and the environment (including a .env file), in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config represents the application configuration
type Config struct {
	Server      ServerConfig   `yaml:"server"`
	Database    DatabaseConfig `yaml:"database"`
	Events      EventsConfig   `yaml:"events"`
	Client      ClientConfig   `yaml:"client"`
	Log         LogConfig      `yaml:"log"`
	KeyMappings KeyMappings    `yaml:"key_mappings"`
	ColorScheme ColorScheme    `yaml:"theme"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// Addr returns the listen address for the API server
func (s ServerConfig) Addr() string {
	return ":" + strconv.Itoa(s.Port)
}

// DatabaseConfig selects and configures the relational store
type DatabaseConfig struct {
	Driver     string         `yaml:"driver"`
	SQLitePath string         `yaml:"sqlite_path"`
	Postgres   PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds the connection parameters for the postgres driver
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN builds a lib/pq key/value connection string
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		p.Host, p.Port, p.Name, p.User, p.Password, p.SSLMode)
}

// EventsConfig configures change notifications. An empty RedisURL keeps
// events inside the process.
type EventsConfig struct {
	RedisURL string `yaml:"redis_url"`
	Channel  string `yaml:"channel"`
}

// ClientConfig configures the API client used by the board and the CLI
type ClientConfig struct {
	APIURL       string        `yaml:"api_url"`
	PollInterval time.Duration `yaml:"poll_interval"`
	Timeout      time.Duration `yaml:"timeout"`
	Usuario      string        `yaml:"usuario"`
}

// LogConfig configures slog output
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Path   string `yaml:"path"`
}

// Default returns the configuration used when nothing else is provided
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 3000,
			CORSOrigins: []string{
				"http://localhost:3001",
				"http://localhost:5173",
				"http://localhost:3000",
			},
		},
		Database: DatabaseConfig{
			Driver:     DriverSQLite,
			SQLitePath: defaultSQLitePath(),
			Postgres: PostgresConfig{
				Host:     "127.0.0.1",
				Port:     5432,
				Name:     "tekai_db",
				User:     "tekai_user",
				Password: "tekai_password_2024",
				SSLMode:  "disable",
			},
		},
		Events: EventsConfig{
			Channel: "tablero:eventos",
		},
		Client: ClientConfig{
			APIURL:       "http://localhost:3000/api",
			PollInterval: 3 * time.Second,
			Timeout:      10 * time.Second,
			Usuario:      "Usuario",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		KeyMappings: DefaultKeyMappings(),
		ColorScheme: DefaultColorScheme(),
	}
}

// Load loads config from the user's config directory, then applies
// .env and environment overrides.
// Returns default config if the file doesn't exist
func Load() (*Config, error) {
	config := Default()

	if configPath, err := getConfigPath(); err == nil {
		if err := config.loadFile(configPath); err != nil {
			return nil, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// loadFile merges the YAML file at path into c. A missing file is not an error.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// Validate rejects settings the server or client cannot run with
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Client.PollInterval <= 0 {
		return fmt.Errorf("invalid poll interval %s", c.Client.PollInterval)
	}
	return nil
}

// applyEnv overrides values from environment variables
func (c *Config) applyEnv() error {
	var err error

	if c.Server.Port, err = getEnvInt("PORT", c.Server.Port); err != nil {
		return err
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = splitList(v)
	}

	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)
	c.Database.SQLitePath = getEnv("SQLITE_PATH", c.Database.SQLitePath)
	c.Database.Postgres.Host = getEnv("POSTGRES_HOST", c.Database.Postgres.Host)
	if c.Database.Postgres.Port, err = getEnvInt("POSTGRES_PORT", c.Database.Postgres.Port); err != nil {
		return err
	}
	c.Database.Postgres.Name = getEnv("POSTGRES_DB", c.Database.Postgres.Name)
	c.Database.Postgres.User = getEnv("POSTGRES_USER", c.Database.Postgres.User)
	c.Database.Postgres.Password = getEnv("POSTGRES_PASSWORD", c.Database.Postgres.Password)
	c.Database.Postgres.SSLMode = getEnv("POSTGRES_SSLMODE", c.Database.Postgres.SSLMode)

	c.Events.RedisURL = getEnv("REDIS_URL", c.Events.RedisURL)
	c.Events.Channel = getEnv("EVENTS_CHANNEL", c.Events.Channel)

	c.Client.APIURL = getEnv("TABLERO_API_URL", c.Client.APIURL)
	if c.Client.PollInterval, err = getEnvDuration("POLL_INTERVAL", c.Client.PollInterval); err != nil {
		return err
	}
	if c.Client.Timeout, err = getEnvDuration("CLIENT_TIMEOUT", c.Client.Timeout); err != nil {
		return err
	}
	c.Client.Usuario = getEnv("TABLERO_USUARIO", c.Client.Usuario)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
	c.Log.Path = getEnv("LOG_PATH", c.Log.Path)

	return nil
}

// applyDefaults fills in values a partial YAML file may have zeroed
func (c *Config) applyDefaults() {
	def := Default()
	if c.Server.Port == 0 {
		c.Server.Port = def.Server.Port
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = def.Server.CORSOrigins
	}
	if c.Database.Driver == "" {
		c.Database.Driver = def.Database.Driver
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = def.Database.SQLitePath
	}
	if c.Events.Channel == "" {
		c.Events.Channel = def.Events.Channel
	}
	if c.Client.APIURL == "" {
		c.Client.APIURL = def.Client.APIURL
	}
	if c.Client.Timeout == 0 {
		c.Client.Timeout = def.Client.Timeout
	}
	if c.Client.Usuario == "" {
		c.Client.Usuario = def.Client.Usuario
	}
	c.Client.APIURL = strings.TrimRight(c.Client.APIURL, "/")
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	if explicit := os.Getenv("TABLERO_CONFIG"); explicit != "" {
		return explicit, nil
	}

	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "tablero", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "tablero", "config.yaml"), nil
}

// DataDir returns ~/.tablero, where the sqlite file and logs live
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tablero"
	}
	return filepath.Join(home, ".tablero")
}

func defaultSQLitePath() string {
	return filepath.Join(DataDir(), "tablero.db")
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		// bare numbers are milliseconds
		ms, convErr := strconv.Atoi(v)
		if convErr != nil {
			return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
		}
		d = time.Duration(ms) * time.Millisecond
	}
	return d, nil
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
