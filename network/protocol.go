package network

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JSON-RPC methods used by the client.
const (
	MethodSubmitExtrinsic = "author_submitExtrinsic"
	MethodGetStorage      = "state_getStorage"
)

const jsonRPCVersion = "2.0"

// rpcRequest represents a JSON-RPC 2.0 request payload.
type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int64         `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

// rpcError represents an error object returned by the JSON-RPC server.
type rpcError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// rpcResponse is one decoded inbound frame. Err is a *RemoteError when the
// node returned an error object.
type rpcResponse struct {
	ID     int64
	HasID  bool
	Result json.RawMessage
	Err    error
}

var jsonNull = []byte("null")

func encodeRequest(id int64, method string, params []interface{}) ([]byte, error) {
	if params == nil {
		params = []interface{}{}
	}
	body, err := json.Marshal(rpcRequest{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, fmt.Errorf("network: marshal request: %w", err)
	}
	return body, nil
}

// decodeResponse interprets a text frame. A recognizable error object wins
// over a result; a frame with neither is ErrInvalidResponse.
func decodeResponse(data []byte) (*rpcResponse, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrInvalidResponse, err)
	}

	resp := new(rpcResponse)
	if raw, ok := fields["id"]; ok && !bytes.Equal(raw, jsonNull) {
		if err := json.Unmarshal(raw, &resp.ID); err == nil {
			resp.HasID = true
		}
	}

	if raw, ok := fields["error"]; ok && !bytes.Equal(raw, jsonNull) {
		var e rpcError
		if err := json.Unmarshal(raw, &e); err == nil && (e.Message != "" || e.Code != 0) {
			resp.Err = &RemoteError{Code: e.Code, Message: e.Message, Data: errorData(e.Data)}
			return resp, nil
		}
	}

	raw, ok := fields["result"]
	if !ok {
		return nil, fmt.Errorf("%w: response has neither result nor error", ErrInvalidResponse)
	}
	resp.Result = raw
	return resp, nil
}

// resultString unwraps a JSON string result. An empty result (connection
// closed before any reply) yields "".
func resultString(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: result is not a string: %s", ErrInvalidResponse, raw)
	}
	return s, nil
}

// errorData renders the optional data member of an error object, unquoting
// it when it is a plain string.
func errorData(raw json.RawMessage) string {
	if len(raw) == 0 || bytes.Equal(raw, jsonNull) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
