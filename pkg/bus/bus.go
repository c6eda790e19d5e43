// Package bus implements the process-wide event broadcaster that carries
// device lifecycle and sensor events between Cove's subsystems.
package bus

import (
	"log/slog"
	"sync"
	"time"
)

// Capacity is the fixed buffer size of every subscriber channel.
const Capacity = 1000

// EventKind discriminates the BusEvent variants carried on the bus.
type EventKind uint8

const (
	EventDeviceDiscovered EventKind = iota
	EventDeviceUpdated
	EventDeviceRemoved
	EventSensorReading
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventDeviceDiscovered:
		return "DeviceDiscovered"
	case EventDeviceUpdated:
		return "DeviceUpdated"
	case EventDeviceRemoved:
		return "DeviceRemoved"
	case EventSensorReading:
		return "SensorReading"
	default:
		return "Unknown"
	}
}

// Event is the tagged union carried on the bus. Exactly one of the
// type-specific fields is meaningful, selected by Kind.
type Event struct {
	Kind EventKind

	// Device* fields apply to EventDeviceDiscovered/Updated/Removed.
	DeviceID   string
	DeviceType string
	Metadata   map[string]string

	// Sensor* fields apply to EventSensorReading.
	Timestamp time.Time
	SensorID  string
	Value     float64
	Unit      *string
}

// DeviceDiscovered builds a discovery event.
func DeviceDiscovered(id, deviceType string, metadata map[string]string) Event {
	return Event{Kind: EventDeviceDiscovered, DeviceID: id, DeviceType: deviceType, Metadata: metadata}
}

// DeviceUpdated builds a metadata-update event.
func DeviceUpdated(id string, metadata map[string]string) Event {
	return Event{Kind: EventDeviceUpdated, DeviceID: id, Metadata: metadata}
}

// DeviceRemoved builds a removal event.
func DeviceRemoved(id string) Event {
	return Event{Kind: EventDeviceRemoved, DeviceID: id}
}

// SensorReading builds a sensor-reading event.
func SensorReading(deviceID, sensorID string, value float64, unit *string, ts time.Time) Event {
	return Event{
		Kind: EventSensorReading, DeviceID: deviceID, SensorID: sensorID,
		Value: value, Unit: unit, Timestamp: ts,
	}
}

// Subscription is a receiver handle returned by Bus.Subscribe. Callers
// read from C until they are done, then call Close to release the
// subscriber slot.
type Subscription struct {
	C <-chan Event

	bus *Bus
	ch  chan Event
}

// Close unregisters the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.bus.unsubscribe(s.ch)
}

// Bus is a single-writer-many-reader broadcaster. Publish is always
// non-blocking: a full subscriber channel drops that delivery for that
// subscriber only, with a logged warning.
type Bus struct {
	mu     sync.Mutex
	subs   map[chan Event]struct{}
	logger *slog.Logger
}

// New creates an empty Bus. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{subs: make(map[chan Event]struct{}), logger: logger}
}

// Subscribe registers a new receiver positioned at the current head of
// the bus (it never sees events published before this call).
func (b *Bus) Subscribe() *Subscription {
	ch := make(chan Event, Capacity)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	return &Subscription{C: ch, bus: b, ch: ch}
}

func (b *Bus) unsubscribe(ch chan Event) {
	b.mu.Lock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
	b.mu.Unlock()
}

// Publish broadcasts event to every live subscriber. It never blocks and
// never returns an error: a subscriber with no room, or a bus with zero
// subscribers, just drops the delivery for that subscriber, logged at
// warn level.
func (b *Bus) Publish(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.subs) == 0 {
		b.logger.Warn("bus publish with no subscribers", "kind", event.Kind.String())
		return
	}

	for ch := range b.subs {
		select {
		case ch <- event:
		default:
			b.logger.Warn("bus subscriber lagging, dropping event", "kind", event.Kind.String())
		}
	}
}

// SubscriberCount returns the current number of live subscriptions.
// Intended for diagnostics and tests.
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
