package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/covehub/cove/pkg/bus"
	"github.com/covehub/cove/pkg/connection"
	"github.com/enbility/zeroconf/v3"
)

// OfflineHint is invoked whenever the mDNS browse set goes down and is
// about to restart, so callers can surface a "discovery degraded"
// signal without parsing logs.
type OfflineHint func(err error)

// MdnsBrowser implements DeviceProtocol over a fixed set of DNS-SD
// service types, watched with zeroconf.Browse. A fatal receive error
// on any per-type goroutine tears down the whole generation and
// restarts it after MdnsRestartBackoff.
type MdnsBrowser struct {
	logger      *slog.Logger
	offlineHint OfflineHint

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewMdnsBrowser creates a browser. A nil logger falls back to
// slog.Default(); a nil hint is a no-op.
func NewMdnsBrowser(logger *slog.Logger, hint OfflineHint) *MdnsBrowser {
	if logger == nil {
		logger = slog.Default()
	}
	if hint == nil {
		hint = func(error) {}
	}
	return &MdnsBrowser{logger: logger, offlineHint: hint}
}

func (m *MdnsBrowser) ProtocolName() string { return "mDNS" }

// StartDiscovery starts one generation of browses, one per entry of
// ServiceTypes, and a supervising goroutine that restarts the whole
// set on fatal error. A service type listed twice in ServiceTypes is a
// configuration error and is returned before anything starts.
func (m *MdnsBrowser) StartDiscovery(ctx context.Context, b *bus.Bus) error {
	seen := make(map[string]struct{}, len(ServiceTypes))
	for _, st := range ServiceTypes {
		if _, dup := seen[st]; dup {
			return fmt.Errorf("discovery: duplicate service type %q", st)
		}
		seen[st] = struct{}{}
	}

	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return ErrAlreadyDiscovering
	}
	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.running = true
	m.done = make(chan struct{})
	m.mu.Unlock()

	go m.supervise(runCtx, b)
	return nil
}

// StopDiscovery cancels the running generation and waits for it to unwind.
func (m *MdnsBrowser) StopDiscovery() error {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return ErrNotDiscovering
	}
	cancel := m.cancel
	done := m.done
	m.running = false
	m.mu.Unlock()

	cancel()
	<-done
	return nil
}

// supervise runs generations of runGeneration until ctx is cancelled,
// restarting after MdnsRestartBackoff whenever a generation exits
// early due to a receive error.
func (m *MdnsBrowser) supervise(ctx context.Context, b *bus.Bus) {
	defer close(m.done)

	backoff := connection.NewBackoffWithConfig(connection.BackoffConfig{
		Initial:    MdnsRestartBackoff,
		Max:        MdnsRestartBackoff,
		Multiplier: 1,
		Jitter:     0,
	})

	for {
		err := m.runGeneration(ctx, b)
		if ctx.Err() != nil {
			return
		}

		m.logger.Warn("mdns browse set failed, restarting", "error", err)
		m.offlineHint(err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff.Next()):
		}
	}
}

// runGeneration browses every entry of ServiceTypes concurrently and
// blocks until ctx is cancelled or a per-type goroutine hits a fatal
// receive error, in which case it cancels the rest and returns that error.
func (m *MdnsBrowser) runGeneration(ctx context.Context, b *bus.Bus) error {
	genCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	errOnce := make(chan error, 1)

	for _, svcType := range ServiceTypes {
		wg.Add(1)
		go func(svcType string) {
			defer wg.Done()
			if err := m.browseOne(genCtx, b, svcType); err != nil {
				select {
				case errOnce <- err:
					cancel()
				default:
				}
			}
		}(svcType)
	}

	wg.Wait()

	select {
	case err := <-errOnce:
		return err
	default:
		return nil
	}
}

// browseOne watches a single DNS-SD service type until genCtx is
// cancelled, publishing DeviceDiscovered/Removed events.
func (m *MdnsBrowser) browseOne(genCtx context.Context, b *bus.Bus, svcType string) error {
	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)

	browseCtx, browseCancel := context.WithCancel(genCtx)
	defer browseCancel()

	browseErr := make(chan error, 1)
	go func() {
		browseErr <- zeroconf.Browse(browseCtx, svcType, Domain, entries, removed)
	}()

	for {
		select {
		case entry, ok := <-entries:
			if !ok {
				return fmt.Errorf("%w: %s", ErrReceive, svcType)
			}
			m.publishEntry(b, svcType, entry)
		case entry, ok := <-removed:
			if !ok {
				continue
			}
			b.Publish(bus.DeviceRemoved("wifi_" + entry.Instance + "." + svcType))
		case err := <-browseErr:
			if err != nil {
				return fmt.Errorf("%w: %s: %v", ErrBrowseRegister, svcType, err)
			}
			return fmt.Errorf("%w: %s", ErrReceive, svcType)
		case <-genCtx.Done():
			return nil
		}
	}
}

func (m *MdnsBrowser) publishEntry(b *bus.Bus, svcType string, entry *zeroconf.ServiceEntry) {
	id := "wifi_" + entry.Instance + "." + svcType

	metadata := make(map[string]string, len(entry.Text)+4)
	for _, kv := range entry.Text {
		if k, v, ok := strings.Cut(kv, "="); ok {
			metadata[k] = v
		}
	}
	if entry.HostName != "" {
		metadata["hostname"] = entry.HostName
	}
	if entry.Port != 0 {
		metadata["port"] = fmt.Sprintf("%d", entry.Port)
	}
	if addr := primaryAddress(entry); addr != "" {
		metadata["primary_address"] = addr
	}

	b.Publish(bus.DeviceDiscovered(id, svcType, metadata))
}

func primaryAddress(entry *zeroconf.ServiceEntry) string {
	if len(entry.AddrIPv4) > 0 {
		return entry.AddrIPv4[0].String()
	}
	if len(entry.AddrIPv6) > 0 {
		return entry.AddrIPv6[0].String()
	}
	return ""
}

var _ DeviceProtocol = (*MdnsBrowser)(nil)
