package kucoin

import (
	"fmt"

	"github.com/readysetliqd/kucoin-library-go/pkg/config"
)

// NewClientFromConfig builds a client from loaded settings. Options passed
// here are applied after the ones derived from cfg, so they win.
//
// # Example Usage:
//
//	cfg, err := config.Load(logger, "kucoin.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	kc, err := kucoin.NewClientFromConfig(cfg, kucoin.WithLogger(logger))
func NewClientFromConfig(cfg *config.Config, options ...Option) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w; nil config", ErrInvalidArg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	derived := []Option{
		WithArrayEncoding(cfg.Arrays()),
		WithExtraKeyPolicy(cfg.ExtraKeyPolicy()),
		WithHeaderPrefix(cfg.HeaderPrefix),
	}
	if cfg.Sandbox {
		derived = append(derived, WithSandbox())
	}
	if cfg.BaseURL != "" {
		derived = append(derived, WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		derived = append(derived, WithTimeout(cfg.Timeout))
	}
	return NewClient(Credentials{
		APIKey:     cfg.APIKey,
		APISecret:  cfg.APISecret,
		Passphrase: cfg.Passphrase,
		KeyVersion: cfg.KeyVersion,
	}, append(derived, options...)...)
}
