// Package config loads the slack-snapshot configuration from a YAML file,
// an optional .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	client "github.com/peteraglen/slack-api-client"
)

const (
	EnvToken = "SLACK_TOKEN"
	EnvProxy = "SLACK_PROXY"
)

// Config holds application configuration loaded from YAML. Posting defaults
// are pointers so that "not set" stays distinguishable from false.
type Config struct {
	Token       string        `yaml:"token"`
	BaseURL     string        `yaml:"base_url"`
	Proxy       string        `yaml:"proxy"`
	Timeout     time.Duration `yaml:"timeout"`
	Parse       *string       `yaml:"parse"`
	LinkNames   *bool         `yaml:"link_names"`
	UnfurlLinks *bool         `yaml:"unfurl_links"`
	UnfurlMedia *bool         `yaml:"unfurl_media"`
	LogLevel    string        `yaml:"log_level"`
}

// Load reads path (skipped when empty or missing), then .env files, then
// applies SLACK_TOKEN and SLACK_PROXY from the environment.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	if err := loadEnvFiles(envFiles); err != nil {
		return nil, err
	}

	if token := os.Getenv(EnvToken); token != "" {
		cfg.Token = token
	}

	if proxy := os.Getenv(EnvProxy); proxy != "" {
		cfg.Proxy = proxy
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadEnvFiles loads each file into the environment without overriding
// variables that are already set. Missing files are skipped; with no files
// given, .env in the working directory is tried.
func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, file := range files {
		err := godotenv.Load(file)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			continue
		}

		return fmt.Errorf("failed to load %s: %w", file, err)
	}

	return nil
}

func (c *Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("a Slack token is required (set token in the config file or %s)", EnvToken)
	}

	if c.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}

	return nil
}

// Options converts the configuration into client options.
func (c *Config) Options() []client.Option {
	var opts []client.Option

	if c.BaseURL != "" {
		opts = append(opts, client.WithBaseURL(c.BaseURL))
	}

	if c.Proxy != "" {
		opts = append(opts, client.WithProxy(c.Proxy))
	}

	if c.Timeout > 0 {
		opts = append(opts, client.WithTimeout(c.Timeout))
	}

	if c.Parse != nil {
		opts = append(opts, client.WithParse(*c.Parse))
	}

	if c.LinkNames != nil {
		opts = append(opts, client.WithLinkNames(*c.LinkNames))
	}

	if c.UnfurlLinks != nil {
		opts = append(opts, client.WithUnfurlLinks(*c.UnfurlLinks))
	}

	if c.UnfurlMedia != nil {
		opts = append(opts, client.WithUnfurlMedia(*c.UnfurlMedia))
	}

	return opts
}
