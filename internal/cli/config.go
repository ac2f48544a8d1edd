package cli

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jmgilman/vfs/errors"
	"github.com/jmgilman/vfs/fs/resolve"
)

// Config is the YAML configuration file of the vfs command. Command-line
// flags override the values it sets.
type Config struct {
	LogLevel string             `yaml:"log_level"`
	Root     string             `yaml:"root"`
	Latency  string             `yaml:"latency"`
	Seed     uint64             `yaml:"seed"`
	S3       resolve.S3Defaults `yaml:"s3"`
}

// LoadConfig reads and validates the configuration file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.CodeNotFound, "config file %s not found", path)
		}
		return nil, errors.Wrapf(err, errors.CodeIO, "failed to read config file %s", path)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, errors.CodeInvalidConfig, "failed to parse config file %s", path)
	}
	if err := cfg.validate(); err != nil {
		return nil, errors.WithContext(err, "file", path)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.LogLevel != "" {
		if _, err := parseLevel(c.LogLevel); err != nil {
			return err
		}
	}
	if _, err := c.latency(); err != nil {
		return err
	}
	return nil
}

func (c *Config) latency() (time.Duration, error) {
	if c.Latency == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Latency)
	if err != nil {
		return 0, errors.Wrapf(err, errors.CodeInvalidConfig, "invalid latency '%s'", c.Latency)
	}
	if d < 0 {
		return 0, errors.Newf(errors.CodeInvalidConfig, "latency must not be negative, got %s", c.Latency)
	}
	return d, nil
}
