package rpc

import "github.com/covehub/cove/pkg/registry"

// Version is Cove's reported build identifier. It is a package
// variable rather than a constant so cmd/cove can overwrite it at
// link time with -ldflags.
var Version = "dev"

// Registry is the read side of Surface. *registry.Registry satisfies
// it directly.
type Registry interface {
	Devices() []registry.Device
}

// Commander is the write side of Surface: anything able to push a
// command frame at a device session. The concrete device-integration
// layer that wires a Commander to a live protocol.DeviceConnection is
// out of scope here; NoopCommander stands in for standalone use.
type Commander interface {
	SendMsg(msg string) string
}

// NoopCommander answers every SendMsg with a fixed string, so Surface
// is usable before any real command transport is wired up.
type NoopCommander struct{}

// SendMsg implements Commander.
func (NoopCommander) SendMsg(msg string) string {
	return "no commander configured: " + msg
}

var _ Commander = NoopCommander{}

// Surface is Cove's operator-facing query/command API: the set of
// things a debug REPL or HTTP handler can call without knowing
// anything about the registry or device sessions underneath.
type Surface struct {
	registry  Registry
	commander Commander
}

// NewSurface builds a Surface over reg. A nil commander is replaced
// with NoopCommander so SendMsg is always safe to call.
func NewSurface(reg Registry, commander Commander) *Surface {
	if commander == nil {
		commander = NoopCommander{}
	}
	return &Surface{registry: reg, commander: commander}
}

// Version reports Cove's build identifier.
func (s *Surface) Version() string {
	return Version
}

// Devices returns every device currently known to the registry.
func (s *Surface) Devices() []registry.Device {
	return s.registry.Devices()
}

// SendMsg forwards msg to the configured Commander and returns its
// reply, primarily for debug-echo use from cmd/covectl.
func (s *Surface) SendMsg(msg string) string {
	return s.commander.SendMsg(msg)
}
