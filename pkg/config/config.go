package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	EnvProduction = "production"
	EnvTest       = "test"

	defaultDBPath = "data/journal.db"
	testDBPath    = "data/journal_test.db"
)

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

type Config struct {
	Env    string    `yaml:"env"`
	DBPath string    `yaml:"db_path"`
	Log    LogConfig `yaml:"log"`
}

// Load reads the optional YAML file, then applies environment overrides.
// TRADEBOOK_ENV=test routes the database to the disposable test location
// unless TRADEBOOK_DB pins a path explicitly.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Env: EnvProduction,
		Log: LogConfig{Level: "info"},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read config")
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(err, "parse config")
		}
	}

	cfg.applyEnv()

	if cfg.DBPath == "" {
		if cfg.IsTest() {
			cfg.DBPath = testDBPath
		} else {
			cfg.DBPath = defaultDBPath
		}
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TRADEBOOK_ENV"); v != "" {
		c.Env = v
	}
	if v := os.Getenv("TRADEBOOK_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("TRADEBOOK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("TRADEBOOK_LOG_FILE"); v != "" {
		c.Log.File = v
	}
}

func (c *Config) IsTest() bool {
	return c.Env == EnvTest
}
