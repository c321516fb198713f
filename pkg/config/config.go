// Package config loads converter configuration from an optional YAML file
// with environment variable overrides.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Cache struct {
		Directory  string `yaml:"directory"`
		MaxAgeDays int    `yaml:"max_age_days" validate:"gte=0"`
	} `yaml:"cache"`

	Sources struct {
		BankHolidaysURL string `yaml:"bank_holidays_url" validate:"omitempty,url"`
		NaPTANURL       string `yaml:"naptan_url" validate:"omitempty,url"`

		// Division filters the bank holiday feed to one region, eg.
		// "england-and-wales" or "scotland". Empty merges all regions.
		Division string `yaml:"division"`
	} `yaml:"sources"`

	Convert struct {
		// BoardingTime is extra dwell at each stop after the first, in seconds
		BoardingTime int `yaml:"boarding_time" validate:"gte=0"`
		Workers      int `yaml:"workers" validate:"gte=0"`
	} `yaml:"convert"`
}

func defaults() Config {
	var cfg Config

	cacheRoot, err := os.UserCacheDir()
	if err != nil {
		cacheRoot = os.TempDir()
	}
	cfg.Cache.Directory = filepath.Join(cacheRoot, "txc2gtfs")
	cfg.Cache.MaxAgeDays = 30
	cfg.Convert.Workers = runtime.NumCPU()

	return cfg
}

// Load builds the configuration: defaults, then the YAML file at path (when
// path is "" a missing ./txc2gtfs.yml is fine), then TXC2GTFS_*
// environment variables, then validation.
func Load(path string) (*Config, error) {
	cfg := defaults()

	explicit := path != ""
	if path == "" {
		path = "txc2gtfs.yml"
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	} else if explicit {
		return nil, err
	}

	applyEnvironment(&cfg)

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyEnvironment(cfg *Config) {
	if value := os.Getenv("TXC2GTFS_CACHE_DIRECTORY"); value != "" {
		cfg.Cache.Directory = value
	}
	if value := os.Getenv("TXC2GTFS_BANK_HOLIDAYS_URL"); value != "" {
		cfg.Sources.BankHolidaysURL = value
	}
	if value := os.Getenv("TXC2GTFS_NAPTAN_URL"); value != "" {
		cfg.Sources.NaPTANURL = value
	}
	if value := os.Getenv("TXC2GTFS_DIVISION"); value != "" {
		cfg.Sources.Division = value
	}
	if value := os.Getenv("TXC2GTFS_WORKERS"); value != "" {
		if workers, err := strconv.Atoi(value); err == nil {
			cfg.Convert.Workers = workers
		}
	}
}

// CacheMaxAge returns the cache freshness window as a duration.
func (cfg *Config) CacheMaxAge() time.Duration {
	return time.Duration(cfg.Cache.MaxAgeDays) * 24 * time.Hour
}
