package protocol

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/covehub/cove/pkg/connection"
)

// RunWithReconnect owns the connect-run-until-disconnect-backoff-
// reconnect loop a device integration needs. dial establishes a fresh
// DeviceConnection (at least the TCP connect; the Hello/Connect
// handshake may run either in dial or at the start of onReady); onReady
// is called once per successful connection and should block for as
// long as the session is usable (e.g. running SubscribeStates), only
// returning when the connection is lost or ctx is cancelled.
//
// The loop itself is driven by a connection.Manager: dial is its
// connectFn, and onReady runs from the Manager's OnConnected callback,
// reporting back with NotifyConnectionLost when the session ends so
// the Manager's jittered exponential backoff takes over the next
// attempt. State transitions and reconnect attempts are logged through
// OnStateChange/OnReconnecting rather than inline. The Manager is
// created inside RunWithReconnect and is not exposed, so callers cannot
// attach further callbacks to it; an error returned by onReady is
// logged and the session is then treated as lost.
func RunWithReconnect(ctx context.Context, logger *slog.Logger, dial func(ctx context.Context) (*DeviceConnection, error), onReady func(*DeviceConnection) error) {
	if logger == nil {
		logger = slog.Default()
	}

	var mu sync.Mutex
	var current *DeviceConnection

	mgr := connection.NewManager(func(context.Context) error {
		dc, err := dial(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		current = dc
		mu.Unlock()
		return nil
	})

	mgr.OnStateChange(func(oldState, newState connection.State) {
		logger.Debug("device connection state changed", "from", oldState, "to", newState)
	})
	mgr.OnReconnecting(func(attempt int, delay time.Duration) {
		logger.Warn("device connection lost, reconnecting", "attempt", attempt, "delay", delay)
	})
	mgr.OnConnected(func() {
		mu.Lock()
		dc := current
		mu.Unlock()

		if err := onReady(dc); err != nil {
			logger.Warn("device session ended", "error", err)
		}
		dc.Disconnect(context.Background()) //nolint:errcheck

		if ctx.Err() != nil {
			return
		}
		mgr.NotifyConnectionLost()
	})

	mgr.StartReconnectLoop()
	defer mgr.Close()

	if err := mgr.Connect(ctx); err != nil {
		logger.Warn("device dial failed, retrying", "error", err)
	}

	<-ctx.Done()
}
