package discovery

import (
	"testing"
)

func TestMdnsBrowserProtocolName(t *testing.T) {
	m := NewMdnsBrowser(nil, nil)
	if m.ProtocolName() != "mDNS" {
		t.Fatalf("got %q, want mDNS", m.ProtocolName())
	}
}

func TestMdnsBrowserStopBeforeStartIsNotDiscovering(t *testing.T) {
	m := NewMdnsBrowser(nil, nil)
	if err := m.StopDiscovery(); err != ErrNotDiscovering {
		t.Fatalf("got %v, want ErrNotDiscovering", err)
	}
}
