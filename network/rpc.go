package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

// oneShotID is the request id used by RPCClient. Only one request is ever
// outstanding on its connection.
const oneShotID = 1

// closeGrace bounds how long a close frame write may take.
const closeGrace = time.Second

// Option configures an RPCClient or Session.
type Option func(*options)

type options struct {
	dialer *websocket.Dialer
	logger *slog.Logger
}

// WithLogger routes client diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDialer replaces the websocket dialer (proxy, TLS, handshake timeout).
func WithDialer(d *websocket.Dialer) Option {
	return func(o *options) {
		if d != nil {
			o.dialer = d
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		dialer: websocket.DefaultDialer,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// RPCClient is a one-shot JSON-RPC 2.0 client over websocket. Every Call
// opens a fresh connection, sends a single request, waits for the reply and
// closes the connection. It holds no per-call state and is safe for
// concurrent use.
type RPCClient struct {
	url    string
	dialer *websocket.Dialer
	logger *slog.Logger
}

// NewRPCClient creates a new one-shot client for cfg.URL.
func NewRPCClient(cfg RPCConfig, opts ...Option) *RPCClient {
	o := buildOptions(opts)
	return &RPCClient{
		url:    cfg.URL,
		dialer: o.dialer,
		logger: o.logger.With("component", "rpc", "endpoint", cfg.URL),
	}
}

// Call invokes a JSON-RPC method on the node and returns the raw JSON of
// its result.
//
// The reply is the first text frame received, whatever its id. Binary and
// control frames are skipped. If the node closes the connection before any
// text frame arrives, Call returns an empty result and a nil error.
//
// There is no built-in timeout; an unresponsive node blocks until ctx is
// done, at which point the connection is closed and ctx.Err() is returned.
//
// Call returns ErrConnectionFailed for dial and transport failures,
// ErrInvalidResponse for unparseable frames or frames with neither result
// nor error, and a *RemoteError when the node reports an error.
func (c *RPCClient) Call(ctx context.Context, method string, params []interface{}) (json.RawMessage, error) {
	body, err := encodeRequest(oneShotID, method, params)
	if err != nil {
		return nil, err
	}

	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: dial %s: %w", ErrConnectionFailed, c.url, err)
	}
	defer closeConn(conn)

	// Closing the connection unblocks ReadMessage on cancellation.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	c.logger.Debug("Sending request", "method", method)
	if err := conn.WriteMessage(websocket.TextMessage, body); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: write %s: %w", ErrConnectionFailed, method, err)
	}

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			var ce *websocket.CloseError
			if errors.As(err, &ce) {
				c.logger.Debug("Node closed connection before replying", "method", method, "code", ce.Code)
				return nil, nil
			}
			return nil, fmt.Errorf("%w: read %s: %w", ErrConnectionFailed, method, err)
		}

		if kind != websocket.TextMessage {
			c.logger.Debug("Ignoring non-text frame", "method", method, "type", kind)
			continue
		}

		resp, err := decodeResponse(data)
		if err != nil {
			return nil, err
		}
		if resp.Err != nil {
			return nil, withMethod(resp.Err, method)
		}
		return resp.Result, nil
	}
}

// SubmitExtrinsic calls author_submitExtrinsic with a 0x-prefixed hex
// extrinsic and returns the node's identifier for it.
func (c *RPCClient) SubmitExtrinsic(ctx context.Context, extrinsicHex string) (string, error) {
	return submitExtrinsic(ctx, c, extrinsicHex)
}

// GetStorage calls state_getStorage with a 0x-prefixed hex key and returns
// the raw result text, JSON quotes included.
func (c *RPCClient) GetStorage(ctx context.Context, keyHex string) (string, error) {
	return getStorage(ctx, c, keyHex)
}

func withMethod(err error, method string) error {
	var re *RemoteError
	if errors.As(err, &re) && re.Method == "" {
		re.Method = method
	}
	return err
}

// closeConn sends a normal-closure frame and releases the connection.
func closeConn(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeGrace))
	_ = conn.Close()
}
