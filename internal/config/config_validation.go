// SPDX-License-Identifier: Apache-2.0

package config

import "time"

// Fallbacks applied after merging all config sources.
const (
	defaultHTTPAddress        = "0.0.0.0:8080"
	defaultRequestTimeout     = 30 * time.Second
	defaultTokenDuration      = time.Hour
	defaultLanguageTag        = "en-US"
	defaultDereferenceTimeout = 15 * time.Second
	defaultImportIterationCap = 10
	defaultRedisTTL           = time.Hour
)

// applyDefaults fills zero-valued fields with sane fallbacks so that only
// security-sensitive values (DSN, token sign key) must be supplied.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = defaultTokenDuration
	}
	if cfg.JSONLD.DefaultLanguage == "" {
		cfg.JSONLD.DefaultLanguage = defaultLanguageTag
	}
	if cfg.JSONLD.DereferenceTimeout == 0 {
		cfg.JSONLD.DereferenceTimeout = defaultDereferenceTimeout
	}
	if cfg.JSONLD.ImportIterationCap == 0 {
		cfg.JSONLD.ImportIterationCap = defaultImportIterationCap
	}
	if cfg.Storage.Redis.TTL == 0 {
		cfg.Storage.Redis.TTL = defaultRedisTTL
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
