package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/covehub/cove/pkg/bus"
	"github.com/covehub/cove/pkg/cove"
	"github.com/covehub/cove/pkg/log"
	"github.com/covehub/cove/pkg/protocol"
	"github.com/covehub/cove/pkg/supervisor"
)

// testDeviceService maintains one live native-API session against a
// fixed device (ESPHOME_TEST_HOST), feeding its entities and state
// updates onto the bus as though discovery had found it. This is a
// minimal stand-in for the device-integration layer SPEC_FULL.md keeps
// out of scope: a real deployment would dial one DeviceConnection per
// registry entry as devices are discovered, not just one fixed host.
type testDeviceService struct {
	address     string
	password    string
	bus         *bus.Bus
	logger      *slog.Logger
	protocolLog log.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

var _ supervisor.Service = (*testDeviceService)(nil)

func newTestDeviceService(host string, b *bus.Bus, logger *slog.Logger, protocolLog log.Logger) *testDeviceService {
	port := os.Getenv("ESPHOME_TEST_PORT")
	if port == "" {
		port = "6053"
	}
	if protocolLog == nil {
		protocolLog = log.NoopLogger{}
	}
	return &testDeviceService{
		address:     net.JoinHostPort(host, port),
		password:    os.Getenv("ESPHOME_TEST_PASSWORD"),
		bus:         b,
		logger:      logger,
		protocolLog: protocolLog,
	}
}

func (t *testDeviceService) Name() string { return "test-device:" + t.address }

func (t *testDeviceService) Init(ctx context.Context) error { return nil }

func (t *testDeviceService) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.done = make(chan struct{})
	defer close(t.done)

	protocol.RunWithReconnect(runCtx, t.logger, t.dial, t.onReady)
	return nil
}

func (t *testDeviceService) Cleanup(ctx context.Context) error {
	if t.cancel != nil {
		t.cancel()
	}
	if t.done != nil {
		<-t.done
	}
	return nil
}

func (t *testDeviceService) dial(ctx context.Context) (*protocol.DeviceConnection, error) {
	client, err := protocol.Dial(ctx, t.address, t.protocolLog)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", t.address, err)
	}
	return protocol.NewDeviceConnection(client), nil
}

func (t *testDeviceService) onReady(dc *protocol.DeviceConnection) error {
	ctx := context.Background()

	if _, err := dc.Hello(ctx); err != nil {
		if errors.Is(err, protocol.ErrIncompatibleVersion) {
			return cove.Wrap(err, cove.CodeIncompatibleVersion,
				"device reports an incompatible api_version",
				"upgrade cove or the device firmware so both sides share a major api_version")
		}
		return fmt.Errorf("hello: %w", err)
	}

	var password *string
	if t.password != "" {
		password = &t.password
	}
	if _, err := dc.Connect(ctx, password); err != nil {
		if errors.Is(err, protocol.ErrAuthFailed) {
			return cove.Wrap(err, cove.CodeAuthFailed,
				"device rejected the configured password",
				"check ESPHOME_TEST_PASSWORD against the device's configured api password")
		}
		return fmt.Errorf("connect: %w", err)
	}

	info, err := dc.DeviceInfo(ctx)
	if err != nil {
		return fmt.Errorf("device info: %w", err)
	}

	deviceID := "esphome_" + info.MacAddress
	if info.MacAddress == "" {
		deviceID = "esphome_" + t.address
	}

	t.bus.Publish(bus.DeviceDiscovered(deviceID, "_esphomelib._tcp", map[string]string{
		"name":             info.Name,
		"model":            info.Model,
		"manufacturer":     info.Manufacturer,
		"firmware_version": info.FirmwareVersion,
	}))

	entities, err := dc.ListEntities(ctx)
	if err != nil {
		return fmt.Errorf("list entities: %w", err)
	}

	return dc.SubscribeStates(ctx, entities, func(entity *protocol.EntityDescription, update protocol.StateUpdate) {
		if entity == nil {
			return
		}
		value := float64(update.FloatValue)
		if update.BoolValue {
			value = 1
		}
		unit := entity.UnitOfMeasure
		t.bus.Publish(bus.SensorReading(deviceID, entity.ObjectID, value, &unit, time.Now()))
	})
}
