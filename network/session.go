package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
)

type callResult struct {
	result json.RawMessage
	err    error
}

// Session is a persistent websocket connection that pipelines requests.
// Each request gets a unique id and replies are matched by id, so
// concurrent calls may complete in any order.
type Session struct {
	conn   *websocket.Conn
	logger *slog.Logger

	nextID atomic.Int64

	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[int64]chan callResult
	closed  bool
	err     error

	done chan struct{}
}

// Dial opens a Session to cfg.URL.
func Dial(ctx context.Context, cfg RPCConfig, opts ...Option) (*Session, error) {
	o := buildOptions(opts)
	conn, _, err := o.dialer.DialContext(ctx, cfg.URL, nil)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: dial %s: %w", ErrConnectionFailed, cfg.URL, err)
	}
	s := &Session{
		conn:    conn,
		logger:  o.logger.With("component", "session", "endpoint", cfg.URL),
		pending: make(map[int64]chan callResult),
		done:    make(chan struct{}),
	}
	go s.readLoop()
	return s, nil
}

// Call sends a request and waits for the reply carrying the same id.
func (s *Session) Call(ctx context.Context, method string, params []interface{}) (json.RawMessage, error) {
	id := s.nextID.Add(1)
	body, err := encodeRequest(id, method, params)
	if err != nil {
		return nil, err
	}

	ch := make(chan callResult, 1)
	s.mu.Lock()
	if s.closed {
		err := s.err
		s.mu.Unlock()
		return nil, err
	}
	s.pending[id] = ch
	s.mu.Unlock()

	s.writeMu.Lock()
	err = s.conn.WriteMessage(websocket.TextMessage, body)
	s.writeMu.Unlock()
	if err != nil {
		s.forget(id)
		return nil, fmt.Errorf("%w: write %s: %w", ErrConnectionFailed, method, err)
	}

	select {
	case r := <-ch:
		if r.err != nil {
			return nil, withMethod(r.err, method)
		}
		return r.result, nil
	case <-ctx.Done():
		s.forget(id)
		return nil, ctx.Err()
	}
}

// SubmitExtrinsic calls author_submitExtrinsic over the session.
func (s *Session) SubmitExtrinsic(ctx context.Context, extrinsicHex string) (string, error) {
	return submitExtrinsic(ctx, s, extrinsicHex)
}

// GetStorage calls state_getStorage over the session.
func (s *Session) GetStorage(ctx context.Context, keyHex string) (string, error) {
	return getStorage(ctx, s, keyHex)
}

// Close sends a close frame, releases the connection and fails every
// pending call with ErrConnectionClosed.
func (s *Session) Close() error {
	s.mu.Lock()
	already := s.closed
	s.mu.Unlock()
	if already {
		<-s.done
		return nil
	}

	s.writeMu.Lock()
	closeConn(s.conn)
	s.writeMu.Unlock()
	s.shutdown(fmt.Errorf("%w: closed by client", ErrConnectionClosed))
	<-s.done
	return nil
}

// Done is closed once the session's reader has exited.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) forget(id int64) {
	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()
}

// shutdown marks the session closed and fails pending calls with err.
// Only the first call has an effect.
func (s *Session) shutdown(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.err = err
	for id, ch := range s.pending {
		ch <- callResult{err: err}
		delete(s.pending, id)
	}
}

func (s *Session) readLoop() {
	defer close(s.done)
	for {
		kind, data, err := s.conn.ReadMessage()
		if err != nil {
			_ = s.conn.Close()
			var ce *websocket.CloseError
			if errors.As(err, &ce) {
				s.shutdown(fmt.Errorf("%w: closed by node (code %d)", ErrConnectionClosed, ce.Code))
			} else {
				s.shutdown(fmt.Errorf("%w: %w", ErrConnectionClosed, err))
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}

		resp, err := decodeResponse(data)
		if err != nil {
			s.logger.Warn("Dropping undecodable frame", "error", err)
			continue
		}
		if !resp.HasID {
			s.logger.Warn("Dropping frame without id")
			continue
		}

		s.mu.Lock()
		ch, ok := s.pending[resp.ID]
		delete(s.pending, resp.ID)
		s.mu.Unlock()
		if !ok {
			s.logger.Debug("Dropping reply for unknown id", "id", resp.ID)
			continue
		}
		ch <- callResult{result: resp.Result, err: resp.Err}
	}
}
