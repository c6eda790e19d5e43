package protocol

// Payload types carried inside a wire.Frame, encoded with
// wire.MarshalPayload/UnmarshalPayload. Field numbers are stable and
// additive, mirroring the convention established for log.Event.

// HelloRequest is the first message sent on every connection.
type HelloRequest struct {
	ClientInfo      string `cbor:"1,keyasint"`
	APIVersionMajor uint32 `cbor:"2,keyasint"`
	APIVersionMinor uint32 `cbor:"3,keyasint"`
}

// HelloResponse answers HelloRequest with the device's own identity.
type HelloResponse struct {
	APIVersionMajor uint32 `cbor:"1,keyasint"`
	APIVersionMinor uint32 `cbor:"2,keyasint"`
	ServerInfo      string `cbor:"3,keyasint"`
	Name            string `cbor:"4,keyasint"`
}

// ConnectRequest authenticates the session. Password is empty when
// the device requires none.
type ConnectRequest struct {
	Password string `cbor:"1,keyasint,omitempty"`
}

// ConnectResponse reports whether authentication succeeded.
type ConnectResponse struct {
	InvalidPassword bool `cbor:"1,keyasint"`
}

// DisconnectRequest asks the device to close the session cleanly.
type DisconnectRequest struct{}

// DisconnectResponse acknowledges a DisconnectRequest.
type DisconnectResponse struct{}

// PingRequest is a liveness probe; PingResponse carries no fields.
type PingRequest struct{}

// PingResponse answers PingRequest.
type PingResponse struct{}

// DeviceInfoRequest asks for static device metadata.
type DeviceInfoRequest struct{}

// DeviceInfoResponse describes the device.
type DeviceInfoResponse struct {
	UsesPassword    bool   `cbor:"1,keyasint"`
	Name            string `cbor:"2,keyasint"`
	MacAddress      string `cbor:"3,keyasint"`
	Model           string `cbor:"5,keyasint,omitempty"`
	Manufacturer    string `cbor:"6,keyasint,omitempty"`
	FirmwareVersion string `cbor:"7,keyasint,omitempty"`
	APIEncryption   bool   `cbor:"8,keyasint"`
}

// ListEntitiesRequest starts an entity enumeration; the device answers
// with one ListEntities*Response frame per entity, then a
// ListEntitiesDoneResponse.
type ListEntitiesRequest struct{}

// EntityDescription is the common shape every ListEntities*Response
// carries: a stable numeric Key used to correlate later state updates,
// plus identifying metadata. Kind records which wire.MessageType the
// description arrived as, since the fields beyond this common envelope
// vary per entity platform and are not modeled individually here.
type EntityDescription struct {
	Key            uint32 `cbor:"1,keyasint"`
	ObjectID       string `cbor:"2,keyasint"`
	Name           string `cbor:"3,keyasint"`
	UniqueID       string `cbor:"4,keyasint"`
	DeviceClass    string `cbor:"5,keyasint,omitempty"`
	UnitOfMeasure  string `cbor:"6,keyasint,omitempty"`
	EntityCategory uint32 `cbor:"7,keyasint,omitempty"`
	Kind           string `cbor:"-"`
}

// ListEntitiesDoneResponse terminates an entity enumeration.
type ListEntitiesDoneResponse struct{}

// SubscribeStatesRequest asks the device to start streaming state
// updates for every previously listed entity.
type SubscribeStatesRequest struct{}

// StateUpdate is the common shape every *StateResponse carries: the
// entity Key it applies to and its new value. Exactly one of the value
// fields is meaningful, selected by the entity's platform; Kind
// records which wire.MessageType it arrived as.
type StateUpdate struct {
	Key        uint32  `cbor:"1,keyasint"`
	BoolValue  bool    `cbor:"2,keyasint,omitempty"`
	FloatValue float32 `cbor:"3,keyasint,omitempty"`
	StrValue   string  `cbor:"4,keyasint,omitempty"`
	Missing    bool    `cbor:"5,keyasint,omitempty"`
	Kind       string  `cbor:"-"`
}

// SubscribeLogsRequest asks the device to start streaming log lines at
// or above Level (ESPHome log-level numbering; 0 = device default).
type SubscribeLogsRequest struct {
	Level      int32 `cbor:"1,keyasint"`
	DumpConfig bool  `cbor:"2,keyasint"`
}

// LogMessage is one streamed SubscribeLogsResponse frame.
type LogMessage struct {
	Level   int32  `cbor:"1,keyasint"`
	Message string `cbor:"2,keyasint"`
}
