package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"repo-stats-admin/internal/models"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	defaultEnvFile = ".env.local"

	statsPrefix   = "STATS_"
	cleanerPrefix = "CLEAN_"
)

var (
	ErrMissingParams = errors.New("missing database connection parameters")
	ErrSystemSchema  = errors.New("refusing to clean a system schema")
)

// Postgres holds connection parameters. Field names are prefixed per tool via env-prefix.
type Postgres struct {
	User     string `env:"DB_USER" env-description:"database user"`
	Password string `env:"DB_PASSWORD" env-description:"database password"`
	Host     string `env:"DB_HOST" env-description:"database host"`
	Port     string `env:"DB_PORT" env-description:"database port"`
	Name     string `env:"DB_NAME" env-description:"database name"`
	SSLMode  string `env:"DB_SSLMODE" env-default:"disable" env-description:"sslmode passed to the driver"`
}

type Stats struct {
	Env string   `env:"ENV" env-default:"local" env-description:"logger flavour: local or prod"`
	DB  Postgres `env-prefix:"STATS_"`
}

type Cleaner struct {
	Env    string   `env:"ENV" env-default:"local" env-description:"logger flavour: local or prod"`
	DB     Postgres `env-prefix:"CLEAN_"`
	Schema string   `env:"CLEAN_SCHEMA" env-default:"public" env-description:"schema whose objects are dropped"`
}

type Server struct {
	Env         string     `env:"ENV" env-default:"local" env-description:"logger flavour: local or prod"`
	DB          Postgres   `env-prefix:"STATS_"`
	HTTPServer  HttpServer `env-prefix:"HTTP_"`
	AdminSecret string     `env:"ADMIN_JWT_SECRET" env-description:"HMAC secret for admin tokens"`
}

type HttpServer struct {
	Address      string        `env:"ADDRESS" env-default:"localhost:8080"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT" env-default:"60s"`
}

// DSN renders the parameters as a postgres URL understood by lib/pq.
func (p Postgres) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(p.User, p.Password),
		Host:   net.JoinHostPort(p.Host, p.Port),
		Path:   "/" + p.Name,
	}
	q := url.Values{}
	if p.SSLMode != "" {
		q.Set("sslmode", p.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Address is the host:port pair for log lines; it never includes credentials.
func (p Postgres) Address() string {
	return net.JoinHostPort(p.Host, p.Port)
}

func (p Postgres) missing(prefix string) []string {
	var names []string
	check := func(v, name string) {
		if strings.TrimSpace(v) == "" {
			names = append(names, prefix+name)
		}
	}
	check(p.User, "DB_USER")
	check(p.Password, "DB_PASSWORD")
	check(p.Host, "DB_HOST")
	check(p.Port, "DB_PORT")
	check(p.Name, "DB_NAME")
	return names
}

func missingErr(names []string) error {
	if len(names) == 0 {
		return nil
	}
	return fmt.Errorf("%w: required variables %s", ErrMissingParams, strings.Join(names, ", "))
}

func (c *Stats) Validate() error {
	return missingErr(c.DB.missing(statsPrefix))
}

func (c *Server) Validate() error {
	names := c.DB.missing(statsPrefix)
	if c.AdminSecret == "" {
		names = append(names, "ADMIN_JWT_SECRET")
	}
	return missingErr(names)
}

func (c *Cleaner) Validate() error {
	if err := missingErr(c.DB.missing(cleanerPrefix)); err != nil {
		return err
	}
	if models.IsSystemSchema(c.Schema) {
		return fmt.Errorf("%w: %q", ErrSystemSchema, c.Schema)
	}
	return nil
}

type validatable interface {
	Validate() error
}

// Load reads envFile into the process environment, decodes the environment into cfg
// and validates it.
func Load(envFile string, cfg validatable) error {
	if err := LoadEnvFile(envFile); err != nil {
		return err
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	return cfg.Validate()
}

// LoadEnvFile loads variables from path without overriding ones already set.
// A missing file is not an error: the process environment alone may be enough.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// EnvFilePath resolves the env file location.
// flag > env > default.
// default = ".env.local".
func EnvFilePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if path := os.Getenv("ENV_FILE"); path != "" {
		return path
	}
	return defaultEnvFile
}

// Description lists every variable cfg reads, for -h output.
func Description(cfg any) string {
	header := "Environment variables:"
	text, err := cleanenv.GetDescription(cfg, &header)
	if err != nil {
		return ""
	}
	return text
}
