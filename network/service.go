package network

import (
	"context"
	"encoding/json"
	"fmt"
)

// NodeService is the node surface used to submit extrinsics and read
// storage. RPCClient and Session both implement it.
type NodeService interface {
	// SubmitExtrinsic submits a 0x-prefixed hex extrinsic and returns the
	// node's identifier for it.
	SubmitExtrinsic(ctx context.Context, extrinsicHex string) (string, error)

	// GetStorage returns the raw state_getStorage result for a 0x-prefixed
	// hex key, JSON quotes included, or "null" when the key is unset.
	GetStorage(ctx context.Context, keyHex string) (string, error)
}

// Caller sends one JSON-RPC request and returns the raw result.
type Caller interface {
	Call(ctx context.Context, method string, params []interface{}) (json.RawMessage, error)
}

// Compile-time interface checks.
var (
	_ NodeService = (*RPCClient)(nil)
	_ NodeService = (*Session)(nil)
	_ Caller      = (*RPCClient)(nil)
	_ Caller      = (*Session)(nil)
)

func submitExtrinsic(ctx context.Context, c Caller, extrinsicHex string) (string, error) {
	raw, err := c.Call(ctx, MethodSubmitExtrinsic, []interface{}{extrinsicHex})
	if err != nil {
		return "", err
	}
	id, err := resultString(raw)
	if err != nil {
		return "", fmt.Errorf("%s: %w", MethodSubmitExtrinsic, err)
	}
	return id, nil
}

func getStorage(ctx context.Context, c Caller, keyHex string) (string, error) {
	raw, err := c.Call(ctx, MethodGetStorage, []interface{}{keyHex})
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
