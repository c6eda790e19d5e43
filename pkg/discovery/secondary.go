package discovery

import (
	"context"
	"sync"
	"time"

	"github.com/covehub/cove/pkg/bus"
)

// ScanFunc is invoked on every tick of a secondary DeviceProtocol's
// scan interval. It returns the devices currently visible; the caller
// diffs against what it last saw to decide which bus events to emit.
// A real integration replaces this with an actual transport call.
type ScanFunc func(ctx context.Context) ([]ScanResult, error)

// ScanResult is one device observed by a secondary DeviceProtocol scan.
type ScanResult struct {
	ID       string
	Kind     string
	Metadata map[string]string
}

// pollingProtocol is the shared shape behind BluetoothScanner,
// MQTTWatcher and USBWatcher: tick on an interval, call an injectable
// scan function, diff against the previous result set, publish
// DeviceDiscovered/Removed for the difference.
type pollingProtocol struct {
	name     string
	idPrefix string
	interval time.Duration
	scan     ScanFunc

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
	seen    map[string]struct{}
}

func newPollingProtocol(name, idPrefix string, interval time.Duration, scan ScanFunc) *pollingProtocol {
	return &pollingProtocol{name: name, idPrefix: idPrefix, interval: interval, scan: scan, seen: make(map[string]struct{})}
}

func (p *pollingProtocol) ProtocolName() string { return p.name }

func (p *pollingProtocol) StartDiscovery(ctx context.Context, b *bus.Bus) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return ErrAlreadyDiscovering
	}
	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.running = true
	p.done = make(chan struct{})
	p.mu.Unlock()

	go p.loop(runCtx, b)
	return nil
}

func (p *pollingProtocol) StopDiscovery() error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return ErrNotDiscovering
	}
	cancel := p.cancel
	done := p.done
	p.running = false
	p.mu.Unlock()

	cancel()
	<-done
	return nil
}

func (p *pollingProtocol) loop(ctx context.Context, b *bus.Bus) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			results, err := p.scan(ctx)
			if err != nil {
				continue
			}
			p.reconcile(b, results)
		}
	}
}

func (p *pollingProtocol) reconcile(b *bus.Bus, results []ScanResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	current := make(map[string]struct{}, len(results))
	for _, r := range results {
		id := p.idPrefix + r.ID
		current[id] = struct{}{}
		if _, ok := p.seen[id]; !ok {
			b.Publish(bus.DeviceDiscovered(id, r.Kind, r.Metadata))
		}
	}
	for id := range p.seen {
		if _, ok := current[id]; !ok {
			b.Publish(bus.DeviceRemoved(id))
		}
	}
	p.seen = current
}

// BluetoothScanner is a shape-compatible DeviceProtocol stand-in for a
// real BLE scan: it ticks on ScanInterval and calls an injectable
// ScanFunc in place of an actual radio scan.
type BluetoothScanner struct {
	*pollingProtocol
}

// NewBluetoothScanner creates a BluetoothScanner. scan is called on
// every ScanInterval tick.
func NewBluetoothScanner(scanInterval time.Duration, scan ScanFunc) *BluetoothScanner {
	return &BluetoothScanner{pollingProtocol: newPollingProtocol("Bluetooth LE", "ble_", scanInterval, scan)}
}

// MQTTWatcher is a shape-compatible DeviceProtocol stand-in for
// watching a topic prefix on an MQTT broker.
type MQTTWatcher struct {
	*pollingProtocol
	TopicPrefix string
}

// NewMQTTWatcher creates an MQTTWatcher. subscribe is called on every
// pollInterval tick in place of an actual broker subscription.
func NewMQTTWatcher(topicPrefix string, pollInterval time.Duration, subscribe ScanFunc) *MQTTWatcher {
	return &MQTTWatcher{
		pollingProtocol: newPollingProtocol("MQTT", "mqtt_", pollInterval, subscribe),
		TopicPrefix:     topicPrefix,
	}
}

// USBWatcher is a shape-compatible DeviceProtocol stand-in for USB
// hotplug enumeration.
type USBWatcher struct {
	*pollingProtocol
}

// NewUSBWatcher creates a USBWatcher. poll is called on every
// pollInterval tick to enumerate attached devices.
func NewUSBWatcher(pollInterval time.Duration, poll ScanFunc) *USBWatcher {
	return &USBWatcher{pollingProtocol: newPollingProtocol("USB", "usb_", pollInterval, poll)}
}

var (
	_ DeviceProtocol = (*BluetoothScanner)(nil)
	_ DeviceProtocol = (*MQTTWatcher)(nil)
	_ DeviceProtocol = (*USBWatcher)(nil)
)
