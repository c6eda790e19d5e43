// Package discovery finds devices on the local network and reports
// them on the event bus.
//
// DeviceProtocol is the common shape every discovery mechanism
// implements: start a background scan, stop it, and publish
// DeviceDiscovered/Updated/Removed events as things come and go.
// MdnsBrowser is the primary implementation, watching a fixed list of
// DNS-SD service types via zeroconf. BluetoothScanner, MQTTWatcher and
// USBWatcher are minimal stand-ins that exercise the same interface
// with injectable scan functions, proving DeviceProtocol is not
// mDNS-special-cased.
package discovery
