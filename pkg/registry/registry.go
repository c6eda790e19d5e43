package registry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/covehub/cove/pkg/bus"
)

// Registry is the in-memory device directory: a single writer
// goroutine (Run) applies bus events while any number of readers call
// Get/Devices concurrently and receive independent snapshot copies.
type Registry struct {
	logger *slog.Logger
	bus    *bus.Bus
	sub    *bus.Subscription

	mu      sync.RWMutex
	devices map[string]Device
}

// New creates an empty Registry already subscribed to b, so events
// published before Run starts are buffered for it rather than dropped.
// A nil logger falls back to slog.Default().
func New(b *bus.Bus, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		logger:  logger,
		bus:     b,
		sub:     b.Subscribe(),
		devices: make(map[string]Device),
	}
}

// Name satisfies supervisor.Service.
func (r *Registry) Name() string { return "registry" }

// Init satisfies supervisor.Service; the registry needs no setup
// beyond construction.
func (r *Registry) Init(ctx context.Context) error { return nil }

// Run applies events from the subscription New opened until ctx is
// cancelled. It never returns an error on its own; a cancelled
// context is the only exit path.
func (r *Registry) Run(ctx context.Context) error {
	for {
		select {
		case ev, ok := <-r.sub.C:
			if !ok {
				return nil
			}
			r.apply(ev)
		case <-ctx.Done():
			return nil
		}
	}
}

// Cleanup satisfies supervisor.Service; it closes the registry's bus
// subscription, releasing its bus slot.
func (r *Registry) Cleanup(ctx context.Context) error {
	r.sub.Close()
	return nil
}

func (r *Registry) apply(ev bus.Event) {
	switch ev.Kind {
	case bus.EventDeviceDiscovered:
		r.applyDiscovered(ev)
	case bus.EventDeviceUpdated:
		r.applyUpdated(ev)
	case bus.EventDeviceRemoved:
		r.mu.Lock()
		delete(r.devices, ev.DeviceID)
		r.mu.Unlock()
	case bus.EventSensorReading:
		r.applySensorReading(ev)
	}
}

func (r *Registry) applyDiscovered(ev bus.Event) {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.devices[ev.DeviceID]
	if !ok {
		metadata := mergeMetadata(nil, ev.Metadata)
		r.devices[ev.DeviceID] = Device{
			ID:           ev.DeviceID,
			Kind:         InferKind(ev.DeviceType),
			DeviceType:   ev.DeviceType,
			Metadata:     metadata,
			Capabilities: InferCapabilities(metadata),
			FirstSeen:    now,
			LastSeen:     now,
			Readings:     make(map[string]SensorValue),
		}
		return
	}

	existing.LastSeen = now
	existing.Metadata = mergeMetadata(existing.Metadata, ev.Metadata)
	existing.Capabilities = InferCapabilities(existing.Metadata)
	r.devices[ev.DeviceID] = existing
}

func (r *Registry) applyUpdated(ev bus.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.devices[ev.DeviceID]
	if !ok {
		r.logger.Debug("update for unknown device, ignoring", "device_id", ev.DeviceID)
		return
	}

	existing.LastSeen = time.Now()
	existing.Metadata = mergeMetadata(existing.Metadata, ev.Metadata)
	existing.Capabilities = InferCapabilities(existing.Metadata)
	r.devices[ev.DeviceID] = existing
}

func (r *Registry) applySensorReading(ev bus.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	device, ok := r.devices[ev.DeviceID]
	if !ok {
		return
	}
	if device.Readings == nil {
		device.Readings = make(map[string]SensorValue)
	}
	unit := ""
	if ev.Unit != nil {
		unit = *ev.Unit
	}
	device.Readings[ev.SensorID] = SensorValue{
		Value:     ev.Value,
		Unit:      unit,
		Timestamp: ev.Timestamp,
	}
	r.devices[ev.DeviceID] = device
}

// Seed populates the registry from a prior snapshot before Run starts.
// It is the composition root's restore path: load a persisted
// snapshot, then Seed the registry before handing it to the
// supervisor, so discovery events merge into restored state instead of
// racing an empty directory.
func (r *Registry) Seed(devices []Device) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range devices {
		r.devices[d.ID] = d.clone()
	}
}

// Get returns a snapshot copy of the device with id, if known.
func (r *Registry) Get(id string) (Device, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.devices[id]
	if !ok {
		return Device{}, false
	}
	return d.clone(), true
}

// Devices returns a snapshot copy of every known device. It satisfies
// rpc.Registry.
func (r *Registry) Devices() []Device {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Device, 0, len(r.devices))
	for _, d := range r.devices {
		out = append(out, d.clone())
	}
	return out
}
