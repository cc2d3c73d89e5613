// Package appconf holds the settings shared by the server, the dataset manager
// and the catalog.
package appconf

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Environment int

const (
	Development Environment = iota
	Test
	Production
)

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// EnvFlagToEnvironment maps the -env flag to an Environment. Unknown values are
// treated as development.
func EnvFlagToEnvironment(env string) Environment {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "test":
		return Test
	case "production", "prod":
		return Production
	default:
		return Development
	}
}

// Config is the server configuration after flags and the optional file are merged.
type Config struct {
	Port            int
	Env             Environment
	ApiKeys         []string
	DataSource      string
	DBPath          string
	RateLimit       int
	RefreshInterval time.Duration
	Verbose         bool
}

// File mirrors the YAML configuration file. Unset keys leave the flag values alone.
type File struct {
	Port            *int     `yaml:"port"`
	Env             *string  `yaml:"env"`
	ApiKeys         []string `yaml:"api_keys"`
	DataSource      *string  `yaml:"data"`
	DBPath          *string  `yaml:"db"`
	RateLimit       *int     `yaml:"rate_limit"`
	RefreshInterval *string  `yaml:"refresh"`
	Verbose         *bool    `yaml:"verbose"`
}

// LoadFile reads a YAML configuration file.
func LoadFile(path string) (File, error) {
	var f File
	data, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("parse config %s: %w", path, err)
	}
	return f, nil
}

// Apply copies the values present in the file onto cfg. Keys named in explicit,
// using the command line flag names, are skipped so flags win over the file.
func (f File) Apply(cfg *Config, explicit map[string]bool) error {
	if f.Port != nil && !explicit["port"] {
		cfg.Port = *f.Port
	}
	if f.Env != nil && !explicit["env"] {
		cfg.Env = EnvFlagToEnvironment(*f.Env)
	}
	if f.ApiKeys != nil && !explicit["api-keys"] {
		cfg.ApiKeys = f.ApiKeys
	}
	if f.DataSource != nil && !explicit["data"] {
		cfg.DataSource = *f.DataSource
	}
	if f.DBPath != nil && !explicit["db"] {
		cfg.DBPath = *f.DBPath
	}
	if f.RateLimit != nil && !explicit["rate-limit"] {
		cfg.RateLimit = *f.RateLimit
	}
	if f.RefreshInterval != nil && !explicit["refresh"] {
		d, err := time.ParseDuration(*f.RefreshInterval)
		if err != nil {
			return fmt.Errorf("refresh: %w", err)
		}
		cfg.RefreshInterval = d
	}
	if f.Verbose != nil && !explicit["verbose"] {
		cfg.Verbose = *f.Verbose
	}
	return nil
}

// SplitKeys parses the comma separated -api-keys flag. Blank entries are dropped,
// so an empty flag yields no keys.
func SplitKeys(flagValue string) []string {
	var keys []string
	for _, k := range strings.Split(flagValue, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
