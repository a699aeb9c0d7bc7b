// Package config loads caselaw client settings. Environment variables
// (CASELAW_*) override the YAML config file, and both override the
// built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/coolbeans/caselaw/pkg/cap"
	"github.com/coolbeans/caselaw/pkg/courtlistener"
	"github.com/coolbeans/caselaw/pkg/fetch"
)

// ConfigDirName is the directory under the user's home that holds the
// config file.
const ConfigDirName = ".caselaw"

// EnvPrefix namespaces the environment variables read by Load, e.g.
// CASELAW_CAP_API_TOKEN.
const EnvPrefix = "CASELAW"

// Source names accepted by DefaultSource.
const (
	SourceCAP           = "cap"
	SourceCourtListener = "courtlistener"
)

// ClientConfig holds the per-source connection settings.
type ClientConfig struct {
	Endpoint  string        `mapstructure:"endpoint" yaml:"endpoint"`
	APIToken  string        `mapstructure:"api_token" yaml:"api_token"`
	RateLimit time.Duration `mapstructure:"rate_limit" yaml:"rate_limit"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
}

// Config is the full tool configuration.
type Config struct {
	DefaultSource string       `mapstructure:"default_source" yaml:"default_source"`
	CAP           ClientConfig `mapstructure:"cap" yaml:"cap"`
	CourtListener ClientConfig `mapstructure:"courtlistener" yaml:"courtlistener"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DefaultSource: SourceCAP,
		CAP: ClientConfig{
			Endpoint:  cap.DefaultEndpoint,
			RateLimit: fetch.DefaultRequestInterval,
			CacheTTL:  fetch.DefaultCacheTTL,
		},
		CourtListener: ClientConfig{
			Endpoint:  courtlistener.DefaultEndpoint,
			RateLimit: fetch.DefaultRequestInterval,
			CacheTTL:  fetch.DefaultCacheTTL,
		},
	}
}

// CAPConfig converts the cap section to the client package's Config.
func (config *Config) CAPConfig() cap.Config {
	return cap.Config{
		Endpoint:  config.CAP.Endpoint,
		APIToken:  config.CAP.APIToken,
		RateLimit: config.CAP.RateLimit,
		CacheTTL:  config.CAP.CacheTTL,
	}
}

// CourtListenerConfig converts the courtlistener section to the client
// package's Config.
func (config *Config) CourtListenerConfig() courtlistener.Config {
	return courtlistener.Config{
		Endpoint:  config.CourtListener.Endpoint,
		APIToken:  config.CourtListener.APIToken,
		RateLimit: config.CourtListener.RateLimit,
		CacheTTL:  config.CourtListener.CacheTTL,
	}
}

// Path returns the expected config file location, ~/.caselaw/config.yaml.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ConfigDirName, "config.yaml"), nil
}

// Load reads configuration from the standard locations using a fresh viper
// instance.
func Load() (*Config, error) {
	return LoadWith(viper.New(), "")
}

// LoadFile reads configuration preferring the named file over the standard
// search path.
func LoadFile(configFile string) (*Config, error) {
	return LoadWith(viper.New(), configFile)
}

// LoadWith reads configuration into the given viper instance. When
// configFile is empty, ~/.caselaw/config.yaml is searched; a missing file
// is not an error, since defaults and environment variables suffice.
func LoadWith(v *viper.Viper, configFile string) (*Config, error) {
	defaults := Default()
	v.SetDefault("default_source", defaults.DefaultSource)
	v.SetDefault("cap.endpoint", defaults.CAP.Endpoint)
	v.SetDefault("cap.api_token", "")
	v.SetDefault("cap.rate_limit", defaults.CAP.RateLimit)
	v.SetDefault("cap.cache_ttl", defaults.CAP.CacheTTL)
	v.SetDefault("courtlistener.endpoint", defaults.CourtListener.Endpoint)
	v.SetDefault("courtlistener.api_token", "")
	v.SetDefault("courtlistener.rate_limit", defaults.CourtListener.RateLimit)
	v.SetDefault("courtlistener.cache_ttl", defaults.CourtListener.CacheTTL)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ConfigDirName))
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if configFile != "" {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (config *Config) validate() error {
	switch config.DefaultSource {
	case SourceCAP, SourceCourtListener:
		return nil
	}
	return fmt.Errorf("unknown default_source %q: must be %q or %q",
		config.DefaultSource, SourceCAP, SourceCourtListener)
}
