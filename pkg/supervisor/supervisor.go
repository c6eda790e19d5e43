package supervisor

import (
	"context"
	"fmt"
	"log/slog"
)

// Service is one long-running subsystem under Supervisor control.
//
// Init performs synchronous, fallible setup (opening a store file,
// binding a listener). Run is called once Init succeeds; it should
// block, doing its work, until ctx is cancelled, and return promptly
// after that. Cleanup releases resources Init acquired; it is called
// once when a service whose Init succeeded is stopped, whether or not
// Run has started by then. A service whose Init failed is not cleaned up.
type Service interface {
	Name() string
	Init(ctx context.Context) error
	Run(ctx context.Context) error
	Cleanup(ctx context.Context) error
}

// Supervisor starts a fixed list of services in order and stops them
// in reverse order. A failure during Init aborts startup and tears
// down every service that had already started, in reverse.
type Supervisor struct {
	logger   *slog.Logger
	services []Service
	handles  []*ServiceHandle
	done     chan struct{}
}

// New creates a Supervisor over services, in start order. A nil
// logger falls back to slog.Default().
func New(logger *slog.Logger, services ...Service) *Supervisor {
	if logger == nil {
		logger = slog.Default()
	}
	handles := make([]*ServiceHandle, len(services))
	for i, svc := range services {
		handles[i] = NewServiceHandle(svc.Name())
	}
	return &Supervisor{logger: logger, services: services, handles: handles}
}

// Handle returns the ServiceHandle for the service at index i, in
// start order. Intended for status reporting (covectl, health checks).
func (sup *Supervisor) Handle(i int) *ServiceHandle {
	return sup.handles[i]
}

// Start initializes and runs every service in order. If a service's
// Init fails, Start tears down every already-started service (in
// reverse) and returns the Init error wrapped with the failing
// service's name.
func (sup *Supervisor) Start(ctx context.Context) error {
	sup.done = make(chan struct{})
	started := 0

	for i, svc := range sup.services {
		handle := sup.handles[i]
		runCtx, err := handle.begin(ctx)
		if err != nil {
			sup.teardown(ctx, started)
			return fmt.Errorf("supervisor: %s: %w", svc.Name(), err)
		}

		if err := svc.Init(runCtx); err != nil {
			handle.markFailed()
			sup.logger.Error("service init failed", "service", svc.Name(), "error", err)
			sup.teardown(ctx, started)
			return fmt.Errorf("supervisor: %s: init: %w", svc.Name(), err)
		}

		handle.markRunning()
		started++
		sup.logger.Info("service started", "service", svc.Name())

		go sup.runService(svc, handle, runCtx)
	}

	return nil
}

func (sup *Supervisor) runService(svc Service, handle *ServiceHandle, ctx context.Context) {
	if err := svc.Run(ctx); err != nil && ctx.Err() == nil {
		sup.logger.Error("service run exited with error", "service", svc.Name(), "error", err)
	}
}

// Stop stops every started service in reverse order, waiting up to
// 3 seconds per service for Cleanup before moving on.
func (sup *Supervisor) Stop(ctx context.Context) {
	sup.teardown(ctx, len(sup.services))
}

// teardown stops the first n services, in reverse order.
func (sup *Supervisor) teardown(ctx context.Context, n int) {
	for i := n - 1; i >= 0; i-- {
		svc := sup.services[i]
		handle := sup.handles[i]

		cancel, err := handle.requestStop()
		if err != nil {
			continue // never reached Running; nothing to clean up
		}
		if cancel != nil {
			cancel()
		}

		cleanupDone := make(chan error, 1)
		go func() { cleanupDone <- svc.Cleanup(ctx) }()

		shutCtx, shutCancel := context.WithTimeout(ctx, shutdownTimeout)
		select {
		case err := <-cleanupDone:
			if err != nil {
				sup.logger.Error("service cleanup failed", "service", svc.Name(), "error", err)
			}
		case <-shutCtx.Done():
			sup.logger.Warn("service cleanup timed out, continuing shutdown", "service", svc.Name())
		}
		shutCancel()

		handle.markStopped()
		sup.logger.Info("service stopped", "service", svc.Name())
	}
}
