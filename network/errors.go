package network

import (
	"errors"
	"fmt"
)

var (
	// ErrConnectionFailed indicates the client could not connect to the node
	// or the connection failed mid-call.
	ErrConnectionFailed = errors.New("network: connection failed")

	// ErrConnectionClosed indicates the session was closed while a call was pending.
	ErrConnectionClosed = errors.New("network: connection closed")

	// ErrInvalidResponse indicates the node returned a malformed or unexpected response.
	ErrInvalidResponse = errors.New("network: invalid response")

	// ErrRemote indicates the node answered with a JSON-RPC error object.
	ErrRemote = errors.New("network: remote error")

	// ErrInvalidEndpoint indicates the configured endpoint is not a ws:// or wss:// URL.
	ErrInvalidEndpoint = errors.New("network: invalid endpoint")
)

// RemoteError is a JSON-RPC error object returned by the node. It matches
// ErrRemote with errors.Is.
type RemoteError struct {
	Method  string
	Code    int
	Message string
	Data    string
}

func (e *RemoteError) Error() string {
	msg := fmt.Sprintf("network: rpc error %d", e.Code)
	if e.Method != "" {
		msg += " from " + e.Method
	}
	msg += ": " + e.Message
	if e.Data != "" {
		msg += " (" + e.Data + ")"
	}
	return msg
}

func (e *RemoteError) Unwrap() error { return ErrRemote }
