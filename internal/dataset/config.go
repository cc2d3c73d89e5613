package dataset

import (
	"time"

	"whd.healthtrends.org/internal/appconf"
)

type Config struct {
	Source          string // file path or http(s) URL of a .csv or .xlsx dataset
	DBPath          string
	Env             appconf.Environment
	RefreshInterval time.Duration
	Verbose         bool
}

const defaultRefreshInterval = 24 * time.Hour

func (config Config) refreshInterval() time.Duration {
	if config.RefreshInterval <= 0 {
		return defaultRefreshInterval
	}
	return config.RefreshInterval
}

func (config Config) dbPath() string {
	if config.DBPath == "" {
		return ":memory:"
	}
	return config.DBPath
}
