package wire

import "testing"

func TestClassifyRequestTypes(t *testing.T) {
	for mt := range requestTypes {
		if got := Classify(mt); got != RoleRequest {
			t.Errorf("Classify(%v) = %v, want RoleRequest", mt, got)
		}
	}
}

func TestClassifyEventTypes(t *testing.T) {
	for mt := range eventTypes {
		if got := Classify(mt); got != RoleEvent {
			t.Errorf("Classify(%v) = %v, want RoleEvent", mt, got)
		}
	}
}

func TestClassifyResponseByElimination(t *testing.T) {
	responses := []MessageType{
		HelloResponse, ConnectResponse, DeviceInfoResponse,
		BinarySensorStateResponse, ListEntitiesDoneResponse,
	}
	for _, mt := range responses {
		if got := Classify(mt); got != RoleResponse {
			t.Errorf("Classify(%v) = %v, want RoleResponse", mt, got)
		}
	}
}

func TestAllMessageTypesHaveNames(t *testing.T) {
	for mt := MessageType(1); mt <= 123; mt++ {
		if !mt.Valid() {
			t.Errorf("MessageType %d has no entry in the table", mt)
		}
		if mt.String() == "Unknown" {
			t.Errorf("MessageType %d stringifies to Unknown", mt)
		}
	}
}

func TestUnknownMessageTypeString(t *testing.T) {
	if got := MessageType(9999).String(); got != "Unknown" {
		t.Errorf("got %q, want Unknown", got)
	}
}

// TestExpectedResponseTableCompleteness ensures ExpectedResponse never
// panics for any request-role type, and that every mapped response type
// is itself a valid, response-role message type.
func TestExpectedResponseTableCompleteness(t *testing.T) {
	for mt := range requestTypes {
		resp, ok := ExpectedResponse(mt)
		if !ok {
			continue // fire-and-forget or streaming request, documented
		}
		if !resp.Valid() {
			t.Errorf("ExpectedResponse(%v) = %v, which is not a valid message type", mt, resp)
		}
		if Classify(resp) != RoleResponse {
			t.Errorf("ExpectedResponse(%v) = %v, which is not RoleResponse", mt, resp)
		}
	}
}

func TestExpectedResponseRejectsNonRequestTypes(t *testing.T) {
	if _, ok := ExpectedResponse(HelloResponse); ok {
		t.Error("ExpectedResponse(HelloResponse) should not exist - not a request type")
	}
}

func TestExpectedResponseKnownPairs(t *testing.T) {
	tests := []struct {
		req  MessageType
		want MessageType
	}{
		{HelloRequest, HelloResponse},
		{ConnectRequest, ConnectResponse},
		{DisconnectRequest, DisconnectResponse},
		{PingRequest, PingResponse},
		{DeviceInfoRequest, DeviceInfoResponse},
	}
	for _, tt := range tests {
		got, ok := ExpectedResponse(tt.req)
		if !ok {
			t.Errorf("ExpectedResponse(%v): no mapping found", tt.req)
			continue
		}
		if got != tt.want {
			t.Errorf("ExpectedResponse(%v) = %v, want %v", tt.req, got, tt.want)
		}
	}
}

func TestExpectedResponseFireAndForgetRequestsAreUnmapped(t *testing.T) {
	fireAndForget := []MessageType{
		ListEntitiesRequest, SubscribeStatesRequest, SubscribeLogsRequest,
		CoverCommandRequest, LightCommandRequest, SwitchCommandRequest,
		ExecuteServiceRequest,
	}
	for _, mt := range fireAndForget {
		if _, ok := ExpectedResponse(mt); ok {
			t.Errorf("ExpectedResponse(%v) should be unmapped (streaming or fire-and-forget)", mt)
		}
	}
}
