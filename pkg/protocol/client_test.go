package protocol

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/covehub/cove/pkg/wire"
)

func pipeClients(t *testing.T) (*ProtocolClient, net.Conn) {
	t.Helper()
	clientConn, peerConn := net.Pipe()
	c := newClient(clientConn, nil)
	t.Cleanup(func() { c.Close(); peerConn.Close() })
	return c, peerConn
}

func readFrame(t *testing.T, conn net.Conn) wire.Frame {
	t.Helper()
	buf := make([]byte, 4096)
	var acc []byte
	for {
		n, err := conn.Read(buf)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		acc = append(acc, buf[:n]...)
		frame, _, err := wire.Decode(acc)
		if err == nil {
			return frame
		}
	}
}

func writeFrame(t *testing.T, conn net.Conn, f wire.Frame) {
	t.Helper()
	buf := wire.Encode(nil, f)
	if _, err := conn.Write(buf); err != nil {
		t.Fatalf("write: %v", err)
	}
}

// readFrameOrClosed and writeFrameOrClosed are non-fatal variants for
// background goroutines that must exit quietly once the pipe closes.
func readFrameOrClosed(conn net.Conn) (wire.Frame, error) {
	buf := make([]byte, 4096)
	var acc []byte
	for {
		n, err := conn.Read(buf)
		if err != nil {
			return wire.Frame{}, err
		}
		acc = append(acc, buf[:n]...)
		frame, _, err := wire.Decode(acc)
		if err == nil {
			return frame, nil
		}
	}
}

func writeFrameOrClosed(conn net.Conn, f wire.Frame) error {
	buf := wire.Encode(nil, f)
	_, err := conn.Write(buf)
	return err
}

func TestSendAndReceiveRoundTrip(t *testing.T) {
	c, peer := pipeClients(t)

	errCh := make(chan error, 1)
	var data []byte
	go func() {
		var err error
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		data, err = c.SendAndReceive(ctx, wire.PingRequest, []byte("req"), time.Second)
		errCh <- err
	}()

	req := readFrame(t, peer)
	if req.MsgType != wire.PingRequest {
		t.Fatalf("got msg type %v, want PingRequest", req.MsgType)
	}
	writeFrame(t, peer, wire.Frame{MsgType: wire.PingResponse, Payload: []byte("resp")})

	if err := <-errCh; err != nil {
		t.Fatalf("SendAndReceive: %v", err)
	}
	if string(data) != "resp" {
		t.Fatalf("got payload %q, want resp", data)
	}
}

func TestSendAndReceiveTimeout(t *testing.T) {
	c, _ := pipeClients(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := c.SendAndReceive(ctx, wire.PingRequest, nil, 30*time.Millisecond)
	if err != ErrTimeout {
		t.Fatalf("got %v, want ErrTimeout", err)
	}
}

func TestSubscriptionDelivery(t *testing.T) {
	c, peer := pipeClients(t)

	sub := c.RegisterSubscription(wire.SensorStateResponse)
	writeFrame(t, peer, wire.Frame{MsgType: wire.SensorStateResponse, Payload: []byte("v1")})

	select {
	case got := <-sub:
		if string(got) != "v1" {
			t.Fatalf("got %q, want v1", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for subscription frame")
	}

	c.CancelSubscription(wire.SensorStateResponse)
	if _, ok := <-sub; ok {
		t.Fatal("expected subscription channel to be closed")
	}
}

func TestCloseFailsPendingAndClosesSubscriptions(t *testing.T) {
	c, _ := pipeClients(t)

	sub := c.RegisterSubscription(wire.SensorStateResponse)
	resultCh := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_, err := c.SendAndReceive(ctx, wire.PingRequest, nil, 2*time.Second)
		resultCh <- err
	}()

	time.Sleep(20 * time.Millisecond)
	c.Close()

	if err := <-resultCh; err != ErrDisconnected {
		t.Fatalf("got %v, want ErrDisconnected", err)
	}
	if _, ok := <-sub; ok {
		t.Fatal("expected subscription channel to be closed on Close")
	}
}
