// Package supervisor manages the lifecycle of Cove's long-running
// subsystems: store, time-series, bus, registry, discovery, device
// integrations and the RPC surface.
//
// Each subsystem implements Service and is wrapped in a ServiceHandle
// that tracks its running state and provides a single cancellation
// point. Supervisor starts services in a fixed order and stops them
// in reverse, so that a subsystem only ever observes its dependencies
// as already-running.
package supervisor
