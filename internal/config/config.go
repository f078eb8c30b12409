// config.go
//
// Lead lifecycle and referential-integrity service for the portfolio admin console
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of portfolio-leads.
// portfolio-leads is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// portfolio-leads is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with portfolio-leads.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
// Values come from environment variables, optionally layered over a YAML file
// named by CONFIG_FILE. A .env file in the working directory is loaded first.
type Config struct {
	// Server configuration
	Port string `yaml:"port" env:"PORT" env-default:"3000"`

	// Database configuration
	DBType            string `yaml:"db_type" env:"DB_TYPE" env-default:"sqlite"` // sqlite, mysql, mariadb, postgres, sqlserver, mongodb
	DBHost            string `yaml:"db_host" env:"DB_HOST" env-default:"localhost"`
	DBPort            string `yaml:"db_port" env:"DB_PORT" env-default:"3306"`
	DBDatabase        string `yaml:"db_database" env:"DB_DATABASE" env-default:"portfolio.db"`
	DBUser            string `yaml:"db_user" env:"DB_USER"`
	DBPassword        string `yaml:"-" env:"DB_PASSWORD"`
	DBConnectionLimit int    `yaml:"db_connection_limit" env:"DB_CONNECTION_LIMIT" env-default:"5"`
	DBLogLevel        string `yaml:"db_log_level" env:"DB_LOG_LEVEL" env-default:"warn"`
	MongoURI          string `yaml:"-" env:"MONGO_URI"`
	MongoDatabase     string `yaml:"mongo_database" env:"MONGO_DATABASE" env-default:"portfolio"`

	// Authorizer configuration
	AuthEnabled   bool   `yaml:"auth_enabled" env:"AUTH_ENABLED" env-default:"true"`
	AuthzURL      string `yaml:"authz_url" env:"AUTHZ_URL"`
	AuthzClientID string `yaml:"authz_client_id" env:"AUTHZ_CLIENT_ID"`

	// Notification configuration
	RedisAddr     string        `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string        `yaml:"-" env:"REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db" env:"REDIS_DB" env-default:"0"`
	SMTPHost      string        `yaml:"smtp_host" env:"SMTP_HOST"`
	SMTPPort      int           `yaml:"smtp_port" env:"SMTP_PORT" env-default:"587"`
	SMTPUser      string        `yaml:"smtp_user" env:"SMTP_USER"`
	SMTPPassword  string        `yaml:"-" env:"SMTP_PASSWORD"`
	MailFrom      string        `yaml:"mail_from" env:"MAIL_FROM"`
	MailTo        string        `yaml:"mail_to" env:"MAIL_TO"`
	NotifyTimeout time.Duration `yaml:"notify_timeout" env:"NOTIFY_TIMEOUT" env-default:"15s"`

	// Logging configuration
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"json"` // json or console
}

// Load loads configuration from the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required fields and combinations
func (c *Config) Validate() error {
	switch c.DBType {
	case "mongodb", "mongo":
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required for DB_TYPE=%s", c.DBType)
		}
	case "sqlite", "sqlite3":
	case "mysql", "mariadb", "postgres", "postgresql", "sqlserver", "mssql":
		if c.DBUser == "" {
			return fmt.Errorf("DB_USER is required for DB_TYPE=%s", c.DBType)
		}
	default:
		return fmt.Errorf("unsupported database type: %s", c.DBType)
	}
	if c.DBDatabase == "" {
		return fmt.Errorf("DB_DATABASE is required")
	}
	if c.AuthEnabled {
		if c.AuthzURL == "" {
			return fmt.Errorf("AUTHZ_URL is required when AUTH_ENABLED is true")
		}
		if c.AuthzClientID == "" {
			return fmt.Errorf("AUTHZ_CLIENT_ID is required when AUTH_ENABLED is true")
		}
	}
	return nil
}

// MailEnabled reports whether SMTP delivery is configured
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.MailFrom != "" && c.MailTo != ""
}

// QueueEnabled reports whether notifications go through the Redis task queue
func (c *Config) QueueEnabled() bool {
	return c.RedisAddr != ""
}
