// Package config resolves the service settings from, in increasing
// priority: built-in defaults, environment, an optional YAML file, and
// explicitly set command-line flags.
//
// The database named by Driver/DSN must use the schema created by
// `calllog migrate`: tables calls and login with snake_case columns
// (deja_pigier, maitrise_info, dernier_diplome, created_at, nom, email,
// password). Tables created with camelCase or capitalised columns
// (dejaPigier, maitriseInfo, createdAt, Nom, Email, Password) are not
// compatible; rename their columns or point DSN at a fresh database.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	yaml "gopkg.in/yaml.v2"
)

type Config struct {
	Addr   string `yaml:"addr"`
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	Debug  string `yaml:"debug"`
}

// FromEnv returns the defaults with environment overrides applied.
func FromEnv() *Config {
	addr := ":" + envOr("PORT", "3000")
	return &Config{
		Addr:   envOr("CALLLOG_ADDR", addr),
		Driver: envOr("CALLLOG_DRIVER", "sqlite"),
		DSN:    envOr("CALLLOG_DSN", "calllog.db"),
		Debug:  envOr("CALLLOG_DEBUG", ""),
	}
}

// LoadFile reads a YAML config file.
func LoadFile(path string) (*Config, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := &Config{}
	if err := yaml.UnmarshalStrict(dat, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Overlay copies the non-empty fields of o into c, except those whose
// flag was set explicitly on the command line.
func (c *Config) Overlay(o *Config, flags *pflag.FlagSet) {
	set := func(name string, dst *string, val string) {
		if val == "" {
			return
		}
		if flags != nil && flags.Changed(name) {
			return
		}
		*dst = val
	}
	set("addr", &c.Addr, o.Addr)
	set("driver", &c.Driver, o.Driver)
	set("dsn", &c.DSN, o.DSN)
	set("debug", &c.Debug, o.Debug)
}

// envOr returns the value of the environment variable or the fallback.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
