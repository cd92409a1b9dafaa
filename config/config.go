// Package config loads the CLI configuration from the environment and from
// the optional superuser credentials file. The core packages never read
// configuration themselves; everything arrives through here as
// already-validated values.
package config

import (
	"fmt"
	"net"
	"net/url"

	"github.com/spf13/viper"
)

const envPrefix = "TABULA"

// Config carries the store coordinates and the bootstrap identifiers.
type Config struct {
	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	MainAccountID     string
	MainAccountName   string
	SuperUserUsername string
	SuperUserPassword string
}

// Load reads the configuration from TABULA_-prefixed environment variables.
// The store coordinates are required; the database name is optional and
// defaults to the server's default database.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	cfg := &Config{
		DBHost:            v.GetString("db_host"),
		DBPort:            v.GetString("db_port"),
		DBUser:            v.GetString("db_user"),
		DBPass:            v.GetString("db_pass"),
		DBName:            v.GetString("db_name"),
		MainAccountID:     v.GetString("main_account_id"),
		MainAccountName:   v.GetString("main_account_name"),
		SuperUserUsername: v.GetString("super_user_username"),
		SuperUserPassword: v.GetString("super_user_password"),
	}

	required := map[string]string{
		"TABULA_DB_HOST": cfg.DBHost,
		"TABULA_DB_PORT": cfg.DBPort,
		"TABULA_DB_USER": cfg.DBUser,
		"TABULA_DB_PASS": cfg.DBPass,
	}
	for name, value := range required {
		if value == "" {
			return nil, fmt.Errorf("%s is required", name)
		}
	}
	return cfg, nil
}

// DSN assembles the postgres connection string.
func (c *Config) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPass),
		Host:   net.JoinHostPort(c.DBHost, c.DBPort),
	}
	if c.DBName != "" {
		u.Path = "/" + c.DBName
	}
	return u.String()
}
