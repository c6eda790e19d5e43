package discovery

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/covehub/cove/pkg/bus"
)

func TestBluetoothScannerDiscoversAndRemoves(t *testing.T) {
	var mu sync.Mutex
	present := []ScanResult{{ID: "aa:bb", Kind: "sensor"}}

	scan := func(ctx context.Context) ([]ScanResult, error) {
		mu.Lock()
		defer mu.Unlock()
		return append([]ScanResult{}, present...), nil
	}

	b := bus.New(nil)
	sub := b.Subscribe()
	defer sub.Close()

	scanner := NewBluetoothScanner(10*time.Millisecond, scan)
	if err := scanner.StartDiscovery(context.Background(), b); err != nil {
		t.Fatalf("StartDiscovery: %v", err)
	}
	defer scanner.StopDiscovery()

	select {
	case ev := <-sub.C:
		if ev.Kind != bus.EventDeviceDiscovered || ev.DeviceID != "ble_aa:bb" {
			t.Fatalf("got %+v, want DeviceDiscovered ble_aa:bb", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("no discovery event")
	}

	mu.Lock()
	present = nil
	mu.Unlock()

	select {
	case ev := <-sub.C:
		if ev.Kind != bus.EventDeviceRemoved || ev.DeviceID != "ble_aa:bb" {
			t.Fatalf("got %+v, want DeviceRemoved ble_aa:bb", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("no removal event")
	}
}

func TestPollingProtocolStartDiscoveryRejectsDouble(t *testing.T) {
	scanner := NewUSBWatcher(time.Hour, func(ctx context.Context) ([]ScanResult, error) { return nil, nil })
	b := bus.New(nil)

	if err := scanner.StartDiscovery(context.Background(), b); err != nil {
		t.Fatalf("first StartDiscovery: %v", err)
	}
	defer scanner.StopDiscovery()

	if err := scanner.StartDiscovery(context.Background(), b); err != ErrAlreadyDiscovering {
		t.Fatalf("got %v, want ErrAlreadyDiscovering", err)
	}
}

func TestPollingProtocolStopDiscoveryRejectsWhenIdle(t *testing.T) {
	watcher := NewMQTTWatcher("home/", time.Hour, func(ctx context.Context) ([]ScanResult, error) { return nil, nil })
	if err := watcher.StopDiscovery(); err != ErrNotDiscovering {
		t.Fatalf("got %v, want ErrNotDiscovering", err)
	}
}
