package protocol

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/covehub/cove/pkg/log"
	"github.com/covehub/cove/pkg/wire"
	"github.com/google/uuid"
)

// Errors returned by ProtocolClient.
var (
	ErrNotConnected     = errors.New("protocol: not connected")
	ErrDisconnected     = errors.New("protocol: disconnected")
	ErrTimeout          = errors.New("protocol: request timed out")
	ErrAlreadyConnected = errors.New("protocol: already connected")
)

// subscriptionCapacity bounds each subscriber queue registered via
// RegisterSubscription; a full queue drops frames for that subscriber only.
const subscriptionCapacity = 32

type result struct {
	data []byte
	err  error
}

type outboundFrame struct {
	frame      wire.Frame
	resultCh   chan result
	expectType wire.MessageType
}

// ProtocolClient owns one TCP connection to a device and multiplexes
// requests, their responses, and streamed subscriptions over it.
type ProtocolClient struct {
	connID string
	logger log.Logger

	conn     net.Conn
	outbound chan outboundFrame

	mu            sync.Mutex
	pending       map[wire.MessageType]chan result
	subscriptions map[wire.MessageType][]chan []byte

	closeOnce sync.Once
	closeCh   chan struct{}
	readDone  chan struct{}
	writeDone chan struct{}
}

// Dial connects to address over plain TCP and starts the client's
// reader and writer goroutines. A nil logger disables protocol logging.
func Dial(ctx context.Context, address string, logger log.Logger) (*ProtocolClient, error) {
	if logger == nil {
		logger = log.NoopLogger{}
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("protocol: dial: %w", err)
	}

	return newClient(conn, logger), nil
}

// newClient wraps an already-established connection and starts its
// reader and writer goroutines. Split out from Dial so tests can drive
// a ProtocolClient over an in-memory net.Pipe.
func newClient(conn net.Conn, logger log.Logger) *ProtocolClient {
	if logger == nil {
		logger = log.NoopLogger{}
	}

	c := &ProtocolClient{
		connID:        uuid.New().String(),
		logger:        logger,
		conn:          conn,
		outbound:      make(chan outboundFrame, 16),
		pending:       make(map[wire.MessageType]chan result),
		subscriptions: make(map[wire.MessageType][]chan []byte),
		closeCh:       make(chan struct{}),
		readDone:      make(chan struct{}),
		writeDone:     make(chan struct{}),
	}

	go c.readLoop()
	go c.writeLoop()

	return c
}

// ConnID returns the connection's correlation id, used to tag log events.
func (c *ProtocolClient) ConnID() string { return c.connID }

// SendAndReceive encodes and sends a request frame, then blocks until
// the expected response type arrives, timeout elapses, or ctx is
// cancelled. It returns ErrTimeout on timeout and the frame's payload
// on success. Pending calls are keyed by expected response type only,
// so at most one call per response type may be outstanding on a client:
// a second concurrent call for the same response type replaces the
// first one's slot, and the first call then ends in ErrTimeout or ctx
// cancellation. A request type with no entry in wire.ExpectedResponse
// is rejected with an error at call time.
func (c *ProtocolClient) SendAndReceive(ctx context.Context, reqType wire.MessageType, payload []byte, timeout time.Duration) ([]byte, error) {
	respType, ok := wire.ExpectedResponse(reqType)
	if !ok {
		return nil, fmt.Errorf("protocol: %v has no expected response type", reqType)
	}

	resultCh := make(chan result, 1)
	out := outboundFrame{
		frame:      wire.Frame{MsgType: reqType, Payload: payload},
		resultCh:   resultCh,
		expectType: respType,
	}

	select {
	case c.outbound <- out:
	case <-c.closeCh:
		return nil, ErrDisconnected
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case r := <-resultCh:
		return r.data, r.err
	case <-timer.C:
		c.cancelPending(respType)
		return nil, ErrTimeout
	case <-ctx.Done():
		c.cancelPending(respType)
		return nil, ctx.Err()
	case <-c.closeCh:
		return nil, ErrDisconnected
	}
}

// Send enqueues a fire-and-forget frame (a streaming or one-way
// request that has no single expected response).
func (c *ProtocolClient) Send(ctx context.Context, msgType wire.MessageType, payload []byte) error {
	out := outboundFrame{frame: wire.Frame{MsgType: msgType, Payload: payload}}
	select {
	case c.outbound <- out:
		return nil
	case <-c.closeCh:
		return ErrDisconnected
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RegisterSubscription returns a bounded channel of raw payloads for
// every future frame of msgType. CancelSubscription tears it down.
func (c *ProtocolClient) RegisterSubscription(msgType wire.MessageType) <-chan []byte {
	ch := make(chan []byte, subscriptionCapacity)
	c.mu.Lock()
	c.subscriptions[msgType] = append(c.subscriptions[msgType], ch)
	c.mu.Unlock()
	return ch
}

// CancelSubscription closes and removes every subscriber queue
// registered for msgType.
func (c *ProtocolClient) CancelSubscription(msgType wire.MessageType) {
	c.mu.Lock()
	chans := c.subscriptions[msgType]
	delete(c.subscriptions, msgType)
	c.mu.Unlock()

	for _, ch := range chans {
		close(ch)
	}
}

func (c *ProtocolClient) cancelPending(respType wire.MessageType) {
	c.mu.Lock()
	ch, ok := c.pending[respType]
	if ok {
		delete(c.pending, respType)
	}
	c.mu.Unlock()
	if ok {
		// Drain any late delivery so writeLoop/readLoop never blocks on it.
		select {
		case <-ch:
		default:
		}
	}
}

// Close idempotently tears down the connection: it fails all pending
// requests with ErrDisconnected, closes all subscription channels, and
// closes the underlying socket.
func (c *ProtocolClient) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closeCh)
		err = c.conn.Close()
		c.failAll(ErrDisconnected)
	})
	return err
}

func (c *ProtocolClient) failAll(cause error) {
	c.mu.Lock()
	pending := c.pending
	c.pending = make(map[wire.MessageType]chan result)
	subs := c.subscriptions
	c.subscriptions = make(map[wire.MessageType][]chan []byte)
	c.mu.Unlock()

	for _, ch := range pending {
		select {
		case ch <- result{err: cause}:
		default:
		}
	}
	for _, chans := range subs {
		for _, ch := range chans {
			close(ch)
		}
	}
}

// writeLoop drains the outbound queue, registering the pending slot
// for a request (if any) immediately before writing its frame so a
// fast response can never race ahead of the registration.
func (c *ProtocolClient) writeLoop() {
	defer close(c.writeDone)

	var buf []byte
	for {
		select {
		case out := <-c.outbound:
			if out.resultCh != nil {
				c.mu.Lock()
				c.pending[out.expectType] = out.resultCh
				c.mu.Unlock()
			}

			buf = wire.Encode(buf[:0], out.frame)
			if _, err := c.conn.Write(buf); err != nil {
				if out.resultCh != nil {
					c.cancelPending(out.expectType)
					select {
					case out.resultCh <- result{err: fmt.Errorf("protocol: write: %w", err)}:
					default:
					}
				}
				c.logger.Log(errorEvent(c.connID, log.LayerTransport, "write failed: "+err.Error()))
				go c.Close()
				return
			}
		case <-c.closeCh:
			return
		}
	}
}

// readLoop decodes incoming frames and dispatches each one: fulfill a
// pending request if the frame's type is the expected response for
// some in-flight call, else fan it out to subscribers of that type,
// else discard it.
func (c *ProtocolClient) readLoop() {
	defer close(c.readDone)
	defer c.Close()

	var buf []byte
	readBuf := make([]byte, 64*1024)

	for {
		n, err := c.conn.Read(readBuf)
		if err != nil {
			if !isClosed(c.closeCh) {
				c.logger.Log(errorEvent(c.connID, log.LayerTransport, "read failed: "+err.Error()))
			}
			return
		}
		buf = append(buf, readBuf[:n]...)

		for {
			frame, consumed, decErr := wire.Decode(buf)
			if errors.Is(decErr, wire.ErrIncomplete) {
				break
			}
			buf = buf[consumed:]

			var unknown *wire.UnknownMessageTypeError
			if errors.As(decErr, &unknown) {
				continue // discard frames of unrecognized type
			}
			if decErr != nil {
				c.logger.Log(errorEvent(c.connID, log.LayerWire, decErr.Error()))
				continue
			}

			c.dispatch(frame)
		}
	}
}

func (c *ProtocolClient) dispatch(frame wire.Frame) {
	c.mu.Lock()
	pendingCh, isPending := c.pending[frame.MsgType]
	if isPending {
		delete(c.pending, frame.MsgType)
	}
	subs := c.subscriptions[frame.MsgType]
	c.mu.Unlock()

	if isPending {
		select {
		case pendingCh <- result{data: frame.Payload}:
		default:
		}
		return
	}

	if len(subs) > 0 {
		for _, ch := range subs {
			select {
			case ch <- frame.Payload:
			default:
				c.logger.Log(errorEvent(c.connID, log.LayerWire, fmt.Sprintf("subscriber queue full for %v, dropping frame", frame.MsgType)))
			}
		}
		return
	}
}

func isClosed(ch chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func errorEvent(connID string, layer log.Layer, msg string) log.Event {
	return log.Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Layer:        layer,
		Category:     log.CategoryError,
		Error:        &log.ErrorEventData{Layer: layer, Message: msg},
	}
}
