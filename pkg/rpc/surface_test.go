package rpc

import (
	"testing"

	"github.com/covehub/cove/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistry struct {
	devices []registry.Device
}

func (f fakeRegistry) Devices() []registry.Device { return f.devices }

func TestSurfaceDevicesDelegatesToRegistry(t *testing.T) {
	reg := fakeRegistry{devices: []registry.Device{{ID: "dev1"}, {ID: "dev2"}}}
	s := NewSurface(reg, nil)

	got := s.Devices()
	require.Len(t, got, 2)
	assert.Equal(t, "dev1", got[0].ID)
}

func TestSurfaceSendMsgWithNilCommanderUsesNoop(t *testing.T) {
	s := NewSurface(fakeRegistry{}, nil)
	assert.Contains(t, s.SendMsg("ping"), "no commander configured")
}

type echoCommander struct{}

func (echoCommander) SendMsg(msg string) string { return "echo:" + msg }

func TestSurfaceSendMsgUsesConfiguredCommander(t *testing.T) {
	s := NewSurface(fakeRegistry{}, echoCommander{})
	assert.Equal(t, "echo:hello", s.SendMsg("hello"))
}

func TestSurfaceVersion(t *testing.T) {
	s := NewSurface(fakeRegistry{}, nil)
	assert.Equal(t, Version, s.Version())
}
