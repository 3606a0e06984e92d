// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bitfsorg/extrinsic-go/network"
)

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats lists the accepted log format strings.
var validLogFormats = map[string]bool{
	"console": true,
	"json":    true,
}

var networkName = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}

	if !networkName.MatchString(cfg.Network) {
		return fmt.Errorf("%w: %q", ErrInvalidNetwork, cfg.Network)
	}

	if cfg.RPCURL != "" {
		if err := network.ValidateEndpoint(cfg.RPCURL); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidEndpoint, err)
		}
	} else if _, ok := network.NetworkPresets[cfg.Network]; !ok {
		return fmt.Errorf("%w: %s", ErrMissingEndpoint, cfg.Network)
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}

	if !validLogFormats[strings.ToLower(cfg.LogFormat)] {
		return ErrInvalidLogFormat
	}

	return nil
}
