package discovery

import (
	"context"
	"errors"

	"github.com/covehub/cove/pkg/bus"
)

// DeviceProtocol is one way of finding devices on the network. Each
// implementation owns its own background scan and publishes
// DeviceDiscovered/Updated/Removed events to the bus as it finds
// things.
type DeviceProtocol interface {
	// ProtocolName identifies the protocol for logging.
	ProtocolName() string

	// StartDiscovery begins scanning in the background. It returns
	// once the scan has started; it does not block for the scan's
	// lifetime.
	StartDiscovery(ctx context.Context, b *bus.Bus) error

	// StopDiscovery cooperatively cancels the scan.
	StopDiscovery() error
}

var (
	// ErrDaemonInit is returned when the underlying mDNS daemon fails to start.
	ErrDaemonInit = errors.New("discovery: failed to initialize mdns daemon")

	// ErrBrowseRegister is returned when registering a browse for a service type fails.
	ErrBrowseRegister = errors.New("discovery: failed to register browse")

	// ErrReceive is a transient error on a browse channel; it triggers a restart.
	ErrReceive = errors.New("discovery: browse receive error")

	// ErrCancelled indicates discovery was stopped before completing.
	ErrCancelled = errors.New("discovery: cancelled")

	// ErrAlreadyDiscovering is returned by StartDiscovery if a scan is already running.
	ErrAlreadyDiscovering = errors.New("discovery: already discovering")

	// ErrNotDiscovering is returned by StopDiscovery if no scan is running.
	ErrNotDiscovering = errors.New("discovery: not discovering")
)
