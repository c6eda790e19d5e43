package log

import "testing"

func TestDirectionString(t *testing.T) {
	tests := []struct {
		dir  Direction
		want string
	}{
		{DirectionIn, "IN"},
		{DirectionOut, "OUT"},
		{Direction(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		got := tt.dir.String()
		if got != tt.want {
			t.Errorf("Direction(%d).String() = %q, want %q", tt.dir, got, tt.want)
		}
	}
}

func TestLayerString(t *testing.T) {
	tests := []struct {
		layer Layer
		want  string
	}{
		{LayerTransport, "TRANSPORT"},
		{LayerWire, "WIRE"},
		{LayerService, "SERVICE"},
		{Layer(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		got := tt.layer.String()
		if got != tt.want {
			t.Errorf("Layer(%d).String() = %q, want %q", tt.layer, got, tt.want)
		}
	}
}

func TestCategoryString(t *testing.T) {
	tests := []struct {
		cat  Category
		want string
	}{
		{CategoryMessage, "MESSAGE"},
		{CategoryControl, "CONTROL"},
		{CategoryState, "STATE"},
		{CategoryError, "ERROR"},
		{Category(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		got := tt.cat.String()
		if got != tt.want {
			t.Errorf("Category(%d).String() = %q, want %q", tt.cat, got, tt.want)
		}
	}
}

func TestRoleKindString(t *testing.T) {
	tests := []struct {
		role RoleKind
		want string
	}{
		{RoleKindRequest, "REQUEST"},
		{RoleKindResponse, "RESPONSE"},
		{RoleKindEvent, "EVENT"},
		{RoleKindUnknown, "UNKNOWN"},
		{RoleKind(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		got := tt.role.String()
		if got != tt.want {
			t.Errorf("RoleKind(%d).String() = %q, want %q", tt.role, got, tt.want)
		}
	}
}

func TestDispatchOutcomeString(t *testing.T) {
	tests := []struct {
		d    DispatchOutcome
		want string
	}{
		{DispatchedPending, "PENDING"},
		{DispatchedSubscription, "SUBSCRIPTION"},
		{DispatchedDropped, "DROPPED"},
		{DispatchedDiscarded, "DISCARDED"},
		{DispatchOutcome(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		got := tt.d.String()
		if got != tt.want {
			t.Errorf("DispatchOutcome(%d).String() = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestStateEntityString(t *testing.T) {
	tests := []struct {
		entity StateEntity
		want   string
	}{
		{StateEntityService, "SERVICE"},
		{StateEntityConnection, "CONNECTION"},
		{StateEntitySession, "SESSION"},
		{StateEntity(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		got := tt.entity.String()
		if got != tt.want {
			t.Errorf("StateEntity(%d).String() = %q, want %q", tt.entity, got, tt.want)
		}
	}
}

func TestControlMsgTypeString(t *testing.T) {
	tests := []struct {
		cmt  ControlMsgType
		want string
	}{
		{ControlMsgPing, "PING"},
		{ControlMsgDisconnect, "DISCONNECT"},
		{ControlMsgType(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		got := tt.cmt.String()
		if got != tt.want {
			t.Errorf("ControlMsgType(%d).String() = %q, want %q", tt.cmt, got, tt.want)
		}
	}
}

func TestDirectionValues(t *testing.T) {
	if DirectionIn != 0 {
		t.Errorf("DirectionIn = %d, want 0", DirectionIn)
	}
	if DirectionOut != 1 {
		t.Errorf("DirectionOut = %d, want 1", DirectionOut)
	}
}

func TestLayerValues(t *testing.T) {
	if LayerTransport != 0 {
		t.Errorf("LayerTransport = %d, want 0", LayerTransport)
	}
	if LayerWire != 1 {
		t.Errorf("LayerWire = %d, want 1", LayerWire)
	}
	if LayerService != 2 {
		t.Errorf("LayerService = %d, want 2", LayerService)
	}
}

func TestCategoryValues(t *testing.T) {
	if CategoryMessage != 0 {
		t.Errorf("CategoryMessage = %d, want 0", CategoryMessage)
	}
	if CategoryControl != 1 {
		t.Errorf("CategoryControl = %d, want 1", CategoryControl)
	}
	if CategoryState != 2 {
		t.Errorf("CategoryState = %d, want 2", CategoryState)
	}
	if CategoryError != 3 {
		t.Errorf("CategoryError = %d, want 3", CategoryError)
	}
}

func TestStateEntityValues(t *testing.T) {
	if StateEntityService != 0 {
		t.Errorf("StateEntityService = %d, want 0", StateEntityService)
	}
	if StateEntityConnection != 1 {
		t.Errorf("StateEntityConnection = %d, want 1", StateEntityConnection)
	}
	if StateEntitySession != 2 {
		t.Errorf("StateEntitySession = %d, want 2", StateEntitySession)
	}
}

func TestControlMsgTypeValues(t *testing.T) {
	if ControlMsgPing != 0 {
		t.Errorf("ControlMsgPing = %d, want 0", ControlMsgPing)
	}
	if ControlMsgDisconnect != 1 {
		t.Errorf("ControlMsgDisconnect = %d, want 1", ControlMsgDisconnect)
	}
}
