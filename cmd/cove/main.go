// Command cove is Cove's hub process: it discovers devices on the
// local network, maintains an in-memory directory of what it has
// seen, and (when ESPHOME_TEST_HOST is set) keeps a live session open
// to one device so its entities and state updates flow onto the same
// bus as everything discovery reports.
//
// Usage:
//
//	cove [flags]
//
// Flags:
//
//	-log-level string     Log level: debug, info, warn, error (default "info")
//	-services-file string Optional YAML file overriding the built-in mDNS service-type list
//	-protocol-log string  Optional file to append CBOR-encoded protocol error events to (readable with covectl logs)
//
// Environment:
//
//	COVE_DB_PATH          Path to the registry snapshot file (default "cove-state.json")
//	ESPHOME_TEST_HOST     Host of a single device to maintain a live session with
//	ESPHOME_TEST_PORT     Port for ESPHOME_TEST_HOST (default "6053")
//	ESPHOME_TEST_PASSWORD Password for ESPHOME_TEST_HOST, if required
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/covehub/cove/pkg/bus"
	"github.com/covehub/cove/pkg/discovery"
	"github.com/covehub/cove/pkg/log"
	"github.com/covehub/cove/pkg/persistence"
	"github.com/covehub/cove/pkg/registry"
	"github.com/covehub/cove/pkg/supervisor"
)

func main() {
	var logLevel, servicesFile, protocolLogPath string
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.StringVar(&servicesFile, "services-file", "", "Optional YAML file overriding the built-in mDNS service-type list")
	flag.StringVar(&protocolLogPath, "protocol-log", "", "Optional file to append CBOR-encoded protocol error events to")
	flag.Parse()

	logger := newLogger(logLevel)
	slog.SetDefault(logger)

	protocolLogger, closeProtocolLog, err := newProtocolLogger(protocolLogPath)
	if err != nil {
		logger.Error("failed to open protocol log", "path", protocolLogPath, "error", err)
		os.Exit(1)
	}
	defer closeProtocolLog()

	if servicesFile != "" {
		types, err := loadServiceTypes(servicesFile)
		if err != nil {
			logger.Error("failed to load services file", "path", servicesFile, "error", err)
			os.Exit(1)
		}
		discovery.ServiceTypes = types
		logger.Info("loaded custom service types", "path", servicesFile, "count", len(types))
	}

	dbPath := os.Getenv("COVE_DB_PATH")
	if dbPath == "" {
		dbPath = "cove-state.json"
	}
	store := persistence.NewFileStore(dbPath)

	b := bus.New(logger)
	reg := registry.New(b, logger)

	if snapshot, err := store.Load(); err != nil {
		logger.Warn("failed to load registry snapshot", "path", dbPath, "error", err)
	} else if len(snapshot.Devices) > 0 {
		reg.Seed(snapshot.Devices)
		logger.Info("restored registry snapshot", "path", dbPath, "devices", len(snapshot.Devices))
	}

	mdns := discovery.NewMdnsBrowser(logger, func(err error) {
		logger.Warn("mdns discovery degraded", "error", err)
	})

	// ble stands in for a real Bluetooth LE scan: no radio backs it yet,
	// so its ScanFunc always reports nothing seen, but it still runs
	// through the same DeviceProtocol/supervisor.Service wiring mdns
	// does, which is the point of keeping it in the composition root
	// rather than only under secondary_test.go.
	ble := discovery.NewBluetoothScanner(30*time.Second, func(ctx context.Context) ([]discovery.ScanResult, error) {
		return nil, nil
	})

	services := []supervisor.Service{
		reg,
		newDeviceProtocolService(mdns, b, logger),
		newDeviceProtocolService(ble, b, logger),
	}

	var testDevice *testDeviceService
	if host := os.Getenv("ESPHOME_TEST_HOST"); host != "" {
		testDevice = newTestDeviceService(host, b, logger, protocolLogger)
		services = append(services, testDevice)
	}

	sup := supervisor.New(logger, services...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := sup.Start(ctx); err != nil {
		logger.Error("failed to start", "error", err)
		os.Exit(1)
	}
	logger.Info("cove started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received signal", "signal", sig.String())
	case <-ctx.Done():
	}

	cancel()
	sup.Stop(context.Background())

	if err := store.Save(persistence.Snapshot{Devices: reg.Devices()}); err != nil {
		logger.Error("failed to save registry snapshot", "path", dbPath, "error", err)
	}

	logger.Info("cove stopped")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// newProtocolLogger builds the log.Logger passed to protocol.Dial. The
// ProtocolClient emits only error events through it (transport read/write
// failures, decode errors, frames dropped on a full subscriber queue);
// frames and state transitions are not logged. It always emits through slog; with a
// path it also appends CBOR-encoded events to that file via
// FileLogger, readable later with `covectl logs`, fanned out through
// MultiLogger alongside the slog sink.
func newProtocolLogger(path string) (log.Logger, func(), error) {
	slogSink := log.NewSlogAdapter(slog.Default())
	if path == "" {
		return slogSink, func() {}, nil
	}

	fileLogger, err := log.NewFileLogger(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening protocol log %s: %w", path, err)
	}

	combined := log.NewMultiLogger(fileLogger, slogSink)
	return combined, func() { fileLogger.Close() }, nil
}

// deviceProtocolService adapts any discovery.DeviceProtocol's
// StartDiscovery/StopDiscovery pair to supervisor.Service, so every
// protocol the hub runs -- mdns today, ble and whatever else joins it
// later -- is ordered alongside the registry under one Supervisor
// through the same []DeviceProtocol-shaped seam.
type deviceProtocolService struct {
	protocol discovery.DeviceProtocol
	bus      *bus.Bus
	logger   *slog.Logger
}

func newDeviceProtocolService(protocol discovery.DeviceProtocol, b *bus.Bus, logger *slog.Logger) *deviceProtocolService {
	return &deviceProtocolService{protocol: protocol, bus: b, logger: logger}
}

func (d *deviceProtocolService) Name() string { return d.protocol.ProtocolName() }

func (d *deviceProtocolService) Init(ctx context.Context) error {
	return d.protocol.StartDiscovery(ctx, d.bus)
}

// Run blocks until ctx is cancelled; StartDiscovery already owns the
// background scan goroutines, so Run has nothing further to do.
func (d *deviceProtocolService) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (d *deviceProtocolService) Cleanup(ctx context.Context) error {
	if err := d.protocol.StopDiscovery(); err != nil {
		return fmt.Errorf("stopping %s discovery: %w", d.protocol.ProtocolName(), err)
	}
	return nil
}
