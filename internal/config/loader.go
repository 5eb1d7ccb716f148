package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/glundgren93/ptv-cli/internal/departures"
	"github.com/glundgren93/ptv-cli/internal/model"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFileName = ".ptv-cli.yml"
	DefaultBaseURL  = "https://timetableapi.ptv.vic.gov.au"
	DefaultTimezone = "Australia/Melbourne"
)

// Default returns the configuration used when no file is present.
func Default() AppConfig {
	return AppConfig{
		Provider: Provider{
			BaseURL:   DefaultBaseURL,
			TimeoutMS: 15000,
			Retries:   3,
		},
		Departures: Departures{
			Mode:        model.Train.String(),
			Limit:       2,
			Timezone:    DefaultTimezone,
			Clock:       "12h",
			Concurrency: 8,
		},
		Server: Server{
			Listen: ":8080",
		},
	}
}

// DefaultPath returns the absolute path to ~/.ptv-cli.yml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, DefaultFileName), nil
}

// Load reads the configuration at path (or the default path when empty), applies
// environment overrides and validates the result. A missing file yields defaults.
func Load(path string) (*AppConfig, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	applyEnvironment(cfg, environment())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads the configuration file over the defaults without environment
// overrides or validation.
func LoadFile(path string) (*AppConfig, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}
	return &cfg, nil
}

// Save writes the configuration to path as YAML.
func Save(path string, cfg *AppConfig) error {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks struct tags and the values that need parsing.
func (c *AppConfig) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.Mode(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := time.LoadLocation(c.Departures.Timezone); err != nil {
		return fmt.Errorf("invalid config: timezone %q: %w", c.Departures.Timezone, err)
	}
	return nil
}

// Mode returns the default transport mode.
func (c *AppConfig) Mode() (model.TransportMode, error) {
	return model.ParseTransportMode(c.Departures.Mode)
}

// Clock builds the local time formatter for departure display.
func (c *AppConfig) Clock() (departures.Clock, error) {
	loc, err := time.LoadLocation(c.Departures.Timezone)
	if err != nil {
		return departures.Clock{}, fmt.Errorf("loading timezone %q: %w", c.Departures.Timezone, err)
	}
	layout := departures.Layout12h
	if c.Departures.Clock == "24h" {
		layout = departures.Layout24h
	}
	return departures.Clock{Location: loc, Layout: layout}, nil
}

// Set updates a single dotted key such as "provider.devID".
func (c *AppConfig) Set(key, value string) error {
	atoi := func() (int, error) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("%s must be a number: %w", key, err)
		}
		return n, nil
	}

	var err error
	switch strings.ToLower(key) {
	case "provider.baseurl":
		c.Provider.BaseURL = value
	case "provider.devid":
		c.Provider.DevID = value
	case "provider.apikey":
		c.Provider.APIKey = value
	case "provider.timeoutms":
		c.Provider.TimeoutMS, err = atoi()
	case "provider.retries":
		c.Provider.Retries, err = atoi()
	case "departures.mode":
		c.Departures.Mode = value
	case "departures.limit":
		c.Departures.Limit, err = atoi()
	case "departures.maxresults":
		c.Departures.MaxResults, err = atoi()
	case "departures.timezone":
		c.Departures.Timezone = value
	case "departures.clock":
		c.Departures.Clock = value
	case "departures.concurrency":
		c.Departures.Concurrency, err = atoi()
	case "server.listen":
		c.Server.Listen = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	if err != nil {
		return err
	}
	return c.Validate()
}

func environment() map[string]string {
	env := map[string]string{}
	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)
		if len(pair) == 2 {
			env[pair[0]] = pair[1]
		}
	}
	return env
}

func applyEnvironment(cfg *AppConfig, env map[string]string) {
	if env["PTV_DEV_ID"] != "" {
		cfg.Provider.DevID = env["PTV_DEV_ID"]
	}
	if env["PTV_API_KEY"] != "" {
		cfg.Provider.APIKey = env["PTV_API_KEY"]
	}
	if env["PTV_BASE_URL"] != "" {
		cfg.Provider.BaseURL = env["PTV_BASE_URL"]
	}
	if env["PTV_TIMEZONE"] != "" {
		cfg.Departures.Timezone = env["PTV_TIMEZONE"]
	}
	if env["PTV_LISTEN"] != "" {
		cfg.Server.Listen = env["PTV_LISTEN"]
	}
}
