// Package config loads client settings from an optional YAML file and
// KUCOIN_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/readysetliqd/kucoin-library-go/pkg/restapi"
)

// EnvPrefix is prepended to every key when read from the environment, e.g.
// KUCOIN_API_KEY.
const EnvPrefix = "KUCOIN"

// Config holds everything needed to build a client. Credentials are never
// logged.
type Config struct {
	APIKey       string        `mapstructure:"api_key" validate:"required_with=APISecret"`
	APISecret    string        `mapstructure:"api_secret" validate:"required_with=APIKey"`
	Passphrase   string        `mapstructure:"passphrase"`
	KeyVersion   int           `mapstructure:"key_version" validate:"oneof=0 1 2 3"`
	Sandbox      bool          `mapstructure:"sandbox"`
	BaseURL      string        `mapstructure:"base_url" validate:"omitempty,url"`
	HeaderPrefix string        `mapstructure:"header_prefix"`
	Timeout      time.Duration `mapstructure:"timeout" validate:"gte=0"`
	// ArrayEncoding is "repeat" or "comma".
	ArrayEncoding string `mapstructure:"array_encoding" validate:"oneof=repeat comma"`
	// ExtraKeys is "pass", "strip" or "reject".
	ExtraKeys string `mapstructure:"extra_keys" validate:"oneof=pass strip reject"`
}

var defaults = map[string]any{
	"api_key":        "",
	"api_secret":     "",
	"passphrase":     "",
	"key_version":    0,
	"sandbox":        false,
	"base_url":       "",
	"header_prefix":  "",
	"timeout":        10 * time.Second,
	"array_encoding": "repeat",
	"extra_keys":     "pass",
}

// Load reads the first of paths that exists, overlays the environment and
// validates the result. With no paths, or none present, only defaults and the
// environment are used. A nil logger is allowed.
func Load(logger *zap.Logger, paths ...string) (*Config, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	loaded := ""
	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			logger.Debug("config file not found, skipping", zap.String("path", path))
			continue
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s | %w", path, err)
		}
		loaded = path
		break
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config | %w", err)
	}
	cfg.ArrayEncoding = strings.ToLower(cfg.ArrayEncoding)
	cfg.ExtraKeys = strings.ToLower(cfg.ExtraKeys)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Info("config loaded",
		zap.String("file", loaded),
		zap.Bool("authenticated", cfg.APIKey != ""),
		zap.Bool("sandbox", cfg.Sandbox),
		zap.String("base_url", cfg.BaseURL),
		zap.String("array_encoding", cfg.ArrayEncoding),
		zap.String("extra_keys", cfg.ExtraKeys),
	)
	return cfg, nil
}

var validate = validator.New()

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config | %w", err)
	}
	return nil
}

// Arrays maps ArrayEncoding to its restapi value.
func (c *Config) Arrays() restapi.ArrayEncoding {
	if c.ArrayEncoding == "comma" {
		return restapi.CommaJoin
	}
	return restapi.RepeatKeys
}

// ExtraKeyPolicy maps ExtraKeys to its restapi value.
func (c *Config) ExtraKeyPolicy() restapi.ExtraKeyPolicy {
	switch c.ExtraKeys {
	case "strip":
		return restapi.StripExtraKeys
	case "reject":
		return restapi.RejectExtraKeys
	default:
		return restapi.PassExtraKeys
	}
}
