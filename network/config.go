package network

import (
	"fmt"
	"net/url"
)

// EnvRPCURL names the environment variable that overrides the endpoint.
const EnvRPCURL = "EXTRINSIC_RPC_URL"

// RPCConfig holds the connection parameters for a node's websocket JSON-RPC interface.
type RPCConfig struct {
	URL     string `json:"url"`
	Network string `json:"network"`
}

// NetworkPresets contains default RPC configurations for known networks.
// Production networks are intentionally omitted to require explicit configuration.
var NetworkPresets = map[string]RPCConfig{
	"dev":   {URL: "ws://127.0.0.1:9944"},
	"local": {URL: "ws://localhost:9944"},
}

// ResolveConfig merges RPC configuration from three sources with decreasing priority:
//  1. CLI flags (highest priority)
//  2. Environment variables (EXTRINSIC_RPC_URL)
//  3. Network presets (lowest priority, dev/local only)
//
// Networks without a preset require an explicit endpoint.
func ResolveConfig(flags *RPCConfig, env map[string]string, network string) (*RPCConfig, error) {
	result := RPCConfig{Network: network}

	if preset, ok := NetworkPresets[network]; ok {
		result = preset
		result.Network = network
	}

	if env != nil {
		if v, ok := env[EnvRPCURL]; ok && v != "" {
			result.URL = v
		}
	}

	if flags != nil && flags.URL != "" {
		result.URL = flags.URL
	}

	if result.URL == "" {
		return nil, fmt.Errorf("network: %s requires explicit RPC configuration (set --rpc-url, %s, or config file)", network, EnvRPCURL)
	}
	if err := ValidateEndpoint(result.URL); err != nil {
		return nil, err
	}

	return &result, nil
}

// ValidateEndpoint checks that endpoint is an absolute ws:// or wss:// URL.
func ValidateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEndpoint, err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("%w: scheme must be ws or wss, got %q", ErrInvalidEndpoint, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host in %q", ErrInvalidEndpoint, endpoint)
	}
	return nil
}
