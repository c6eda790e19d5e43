package wire

// MessageType is the numeric type tag carried in every frame. The set of
// valid values is closed and mirrors the peer firmware's message schema:
// 1-123, grouped by the entity domain they describe (core handshake,
// generic entity list/subscribe, then one request/response pair per
// entity platform, then Bluetooth-proxy and voice-assistant subtypes).
type MessageType uint32

const (
	HelloRequest  MessageType = 1
	HelloResponse MessageType = 2

	ConnectRequest  MessageType = 3
	ConnectResponse MessageType = 4

	DisconnectRequest  MessageType = 5
	DisconnectResponse MessageType = 6

	PingRequest  MessageType = 7
	PingResponse MessageType = 8

	DeviceInfoRequest  MessageType = 9
	DeviceInfoResponse MessageType = 10

	ListEntitiesRequest              MessageType = 11
	ListEntitiesBinarySensorResponse MessageType = 12
	ListEntitiesCoverResponse        MessageType = 13
	ListEntitiesFanResponse          MessageType = 14
	ListEntitiesLightResponse        MessageType = 15
	ListEntitiesSensorResponse       MessageType = 16
	ListEntitiesSwitchResponse       MessageType = 17
	ListEntitiesTextSensorResponse   MessageType = 18
	ListEntitiesDoneResponse         MessageType = 19

	SubscribeStatesRequest   MessageType = 20
	BinarySensorStateResponse MessageType = 21
	CoverStateResponse        MessageType = 22
	FanStateResponse          MessageType = 23
	LightStateResponse        MessageType = 24
	SensorStateResponse       MessageType = 25
	SwitchStateResponse       MessageType = 26
	TextSensorStateResponse   MessageType = 27

	SubscribeLogsRequest  MessageType = 28
	SubscribeLogsResponse MessageType = 29

	CoverCommandRequest  MessageType = 30
	FanCommandRequest    MessageType = 31
	LightCommandRequest  MessageType = 32
	SwitchCommandRequest MessageType = 33

	SubscribeHomeassistantServicesRequest MessageType = 34
	HomeassistantServiceResponse          MessageType = 35

	GetTimeRequest  MessageType = 36
	GetTimeResponse MessageType = 37

	SubscribeHomeAssistantStatesRequest MessageType = 38
	SubscribeHomeAssistantStateResponse MessageType = 39
	HomeAssistantStateResponse          MessageType = 40

	ListEntitiesServicesResponse MessageType = 41
	ExecuteServiceRequest        MessageType = 42

	ListEntitiesCameraResponse MessageType = 43
	CameraImageResponse        MessageType = 44
	CameraImageRequest         MessageType = 45

	ListEntitiesClimateResponse MessageType = 46
	ClimateStateResponse        MessageType = 47
	ClimateCommandRequest       MessageType = 48

	ListEntitiesNumberResponse MessageType = 49
	NumberStateResponse        MessageType = 50
	NumberCommandRequest       MessageType = 51

	ListEntitiesSelectResponse MessageType = 52
	SelectStateResponse        MessageType = 53
	SelectCommandRequest       MessageType = 54

	ListEntitiesSirenResponse MessageType = 55
	SirenStateResponse        MessageType = 56
	SirenCommandRequest       MessageType = 57

	ListEntitiesLockResponse MessageType = 58
	LockStateResponse        MessageType = 59
	LockCommandRequest       MessageType = 60

	ListEntitiesButtonResponse MessageType = 61
	ButtonCommandRequest       MessageType = 62

	ListEntitiesMediaPlayerResponse MessageType = 63
	MediaPlayerStateResponse        MessageType = 64
	MediaPlayerCommandRequest       MessageType = 65

	SubscribeBluetoothLEAdvertisementsRequest MessageType = 66
	BluetoothLEAdvertisementResponse          MessageType = 67
	BluetoothDeviceRequest                     MessageType = 68
	BluetoothDeviceConnectionResponse          MessageType = 69
	BluetoothGATTGetServicesRequest            MessageType = 70
	BluetoothGATTGetServicesResponse           MessageType = 71
	BluetoothGATTGetServicesDoneResponse       MessageType = 72
	BluetoothGATTReadRequest                   MessageType = 73
	BluetoothGATTReadResponse                  MessageType = 74
	BluetoothGATTWriteRequest                  MessageType = 75
	BluetoothGATTReadDescriptorRequest         MessageType = 76
	BluetoothGATTWriteDescriptorRequest        MessageType = 77
	BluetoothGATTNotifyRequest                 MessageType = 78
	BluetoothGATTNotifyDataResponse            MessageType = 79

	SubscribeBluetoothConnectionsFreeRequest MessageType = 80
	BluetoothConnectionsFreeResponse          MessageType = 81
	BluetoothGATTErrorResponse                MessageType = 82
	BluetoothGATTWriteResponse                MessageType = 83
	BluetoothGATTNotifyResponse                MessageType = 84
	BluetoothDevicePairingResponse              MessageType = 85
	BluetoothDeviceUnpairingResponse            MessageType = 86
	UnsubscribeBluetoothLEAdvertisementsRequest MessageType = 87
	BluetoothDeviceClearCacheResponse            MessageType = 88

	SubscribeVoiceAssistantRequest      MessageType = 89
	VoiceAssistantRequest               MessageType = 90
	VoiceAssistantResponse              MessageType = 91
	VoiceAssistantEventResponse         MessageType = 92
	BluetoothLERawAdvertisementsResponse MessageType = 93

	ListEntitiesAlarmControlPanelResponse MessageType = 94
	AlarmControlPanelStateResponse        MessageType = 95
	AlarmControlPanelCommandRequest       MessageType = 96

	ListEntitiesTextResponse MessageType = 97
	TextStateResponse        MessageType = 98
	TextCommandRequest       MessageType = 99

	ListEntitiesDateResponse MessageType = 100
	DateStateResponse        MessageType = 101
	DateCommandRequest       MessageType = 102

	ListEntitiesTimeResponse MessageType = 103
	TimeStateResponse        MessageType = 104
	TimeCommandRequest       MessageType = 105

	VoiceAssistantAudio MessageType = 106

	ListEntitiesEventResponse MessageType = 107
	EventResponse             MessageType = 108

	ListEntitiesValveResponse MessageType = 109
	ValveStateResponse        MessageType = 110
	ValveCommandRequest       MessageType = 111

	ListEntitiesDateTimeResponse MessageType = 112
	DateTimeStateResponse        MessageType = 113
	DateTimeCommandRequest       MessageType = 114

	VoiceAssistantTimerEventResponse MessageType = 115

	ListEntitiesUpdateResponse MessageType = 116
	UpdateStateResponse        MessageType = 117
	UpdateCommandRequest       MessageType = 118

	VoiceAssistantAnnounceRequest        MessageType = 119
	VoiceAssistantAnnounceFinished       MessageType = 120
	VoiceAssistantConfigurationRequest   MessageType = 121
	VoiceAssistantConfigurationResponse  MessageType = 122
	VoiceAssistantSetConfiguration       MessageType = 123
)

// messageNames names every valid MessageType. Decode consults only this
// map's key set (not the values) to recognize valid numeric types.
var messageNames = map[MessageType]string{
	HelloRequest: "HelloRequest", HelloResponse: "HelloResponse",
	ConnectRequest: "ConnectRequest", ConnectResponse: "ConnectResponse",
	DisconnectRequest: "DisconnectRequest", DisconnectResponse: "DisconnectResponse",
	PingRequest: "PingRequest", PingResponse: "PingResponse",
	DeviceInfoRequest: "DeviceInfoRequest", DeviceInfoResponse: "DeviceInfoResponse",
	ListEntitiesRequest: "ListEntitiesRequest",
	ListEntitiesBinarySensorResponse: "ListEntitiesBinarySensorResponse",
	ListEntitiesCoverResponse:        "ListEntitiesCoverResponse",
	ListEntitiesFanResponse:          "ListEntitiesFanResponse",
	ListEntitiesLightResponse:        "ListEntitiesLightResponse",
	ListEntitiesSensorResponse:       "ListEntitiesSensorResponse",
	ListEntitiesSwitchResponse:       "ListEntitiesSwitchResponse",
	ListEntitiesTextSensorResponse:   "ListEntitiesTextSensorResponse",
	ListEntitiesDoneResponse:         "ListEntitiesDoneResponse",
	SubscribeStatesRequest:    "SubscribeStatesRequest",
	BinarySensorStateResponse: "BinarySensorStateResponse",
	CoverStateResponse:        "CoverStateResponse",
	FanStateResponse:          "FanStateResponse",
	LightStateResponse:        "LightStateResponse",
	SensorStateResponse:       "SensorStateResponse",
	SwitchStateResponse:       "SwitchStateResponse",
	TextSensorStateResponse:   "TextSensorStateResponse",
	SubscribeLogsRequest:  "SubscribeLogsRequest",
	SubscribeLogsResponse: "SubscribeLogsResponse",
	CoverCommandRequest:  "CoverCommandRequest",
	FanCommandRequest:    "FanCommandRequest",
	LightCommandRequest:  "LightCommandRequest",
	SwitchCommandRequest: "SwitchCommandRequest",
	SubscribeHomeassistantServicesRequest: "SubscribeHomeassistantServicesRequest",
	HomeassistantServiceResponse:          "HomeassistantServiceResponse",
	GetTimeRequest:  "GetTimeRequest",
	GetTimeResponse: "GetTimeResponse",
	SubscribeHomeAssistantStatesRequest: "SubscribeHomeAssistantStatesRequest",
	SubscribeHomeAssistantStateResponse: "SubscribeHomeAssistantStateResponse",
	HomeAssistantStateResponse:          "HomeAssistantStateResponse",
	ListEntitiesServicesResponse: "ListEntitiesServicesResponse",
	ExecuteServiceRequest:        "ExecuteServiceRequest",
	ListEntitiesCameraResponse: "ListEntitiesCameraResponse",
	CameraImageResponse:        "CameraImageResponse",
	CameraImageRequest:         "CameraImageRequest",
	ListEntitiesClimateResponse: "ListEntitiesClimateResponse",
	ClimateStateResponse:        "ClimateStateResponse",
	ClimateCommandRequest:       "ClimateCommandRequest",
	ListEntitiesNumberResponse: "ListEntitiesNumberResponse",
	NumberStateResponse:        "NumberStateResponse",
	NumberCommandRequest:       "NumberCommandRequest",
	ListEntitiesSelectResponse: "ListEntitiesSelectResponse",
	SelectStateResponse:        "SelectStateResponse",
	SelectCommandRequest:       "SelectCommandRequest",
	ListEntitiesSirenResponse: "ListEntitiesSirenResponse",
	SirenStateResponse:        "SirenStateResponse",
	SirenCommandRequest:       "SirenCommandRequest",
	ListEntitiesLockResponse: "ListEntitiesLockResponse",
	LockStateResponse:        "LockStateResponse",
	LockCommandRequest:       "LockCommandRequest",
	ListEntitiesButtonResponse: "ListEntitiesButtonResponse",
	ButtonCommandRequest:       "ButtonCommandRequest",
	ListEntitiesMediaPlayerResponse: "ListEntitiesMediaPlayerResponse",
	MediaPlayerStateResponse:        "MediaPlayerStateResponse",
	MediaPlayerCommandRequest:       "MediaPlayerCommandRequest",
	SubscribeBluetoothLEAdvertisementsRequest: "SubscribeBluetoothLEAdvertisementsRequest",
	BluetoothLEAdvertisementResponse:          "BluetoothLEAdvertisementResponse",
	BluetoothDeviceRequest:                    "BluetoothDeviceRequest",
	BluetoothDeviceConnectionResponse:         "BluetoothDeviceConnectionResponse",
	BluetoothGATTGetServicesRequest:           "BluetoothGATTGetServicesRequest",
	BluetoothGATTGetServicesResponse:          "BluetoothGATTGetServicesResponse",
	BluetoothGATTGetServicesDoneResponse:      "BluetoothGATTGetServicesDoneResponse",
	BluetoothGATTReadRequest:                  "BluetoothGATTReadRequest",
	BluetoothGATTReadResponse:                 "BluetoothGATTReadResponse",
	BluetoothGATTWriteRequest:                 "BluetoothGATTWriteRequest",
	BluetoothGATTReadDescriptorRequest:        "BluetoothGATTReadDescriptorRequest",
	BluetoothGATTWriteDescriptorRequest:       "BluetoothGATTWriteDescriptorRequest",
	BluetoothGATTNotifyRequest:                "BluetoothGATTNotifyRequest",
	BluetoothGATTNotifyDataResponse:           "BluetoothGATTNotifyDataResponse",
	SubscribeBluetoothConnectionsFreeRequest: "SubscribeBluetoothConnectionsFreeRequest",
	BluetoothConnectionsFreeResponse:          "BluetoothConnectionsFreeResponse",
	BluetoothGATTErrorResponse:                "BluetoothGATTErrorResponse",
	BluetoothGATTWriteResponse:                "BluetoothGATTWriteResponse",
	BluetoothGATTNotifyResponse:               "BluetoothGATTNotifyResponse",
	BluetoothDevicePairingResponse:             "BluetoothDevicePairingResponse",
	BluetoothDeviceUnpairingResponse:           "BluetoothDeviceUnpairingResponse",
	UnsubscribeBluetoothLEAdvertisementsRequest: "UnsubscribeBluetoothLEAdvertisementsRequest",
	BluetoothDeviceClearCacheResponse:           "BluetoothDeviceClearCacheResponse",
	SubscribeVoiceAssistantRequest:      "SubscribeVoiceAssistantRequest",
	VoiceAssistantRequest:               "VoiceAssistantRequest",
	VoiceAssistantResponse:              "VoiceAssistantResponse",
	VoiceAssistantEventResponse:         "VoiceAssistantEventResponse",
	BluetoothLERawAdvertisementsResponse: "BluetoothLERawAdvertisementsResponse",
	ListEntitiesAlarmControlPanelResponse: "ListEntitiesAlarmControlPanelResponse",
	AlarmControlPanelStateResponse:        "AlarmControlPanelStateResponse",
	AlarmControlPanelCommandRequest:       "AlarmControlPanelCommandRequest",
	ListEntitiesTextResponse: "ListEntitiesTextResponse",
	TextStateResponse:        "TextStateResponse",
	TextCommandRequest:       "TextCommandRequest",
	ListEntitiesDateResponse: "ListEntitiesDateResponse",
	DateStateResponse:        "DateStateResponse",
	DateCommandRequest:       "DateCommandRequest",
	ListEntitiesTimeResponse: "ListEntitiesTimeResponse",
	TimeStateResponse:        "TimeStateResponse",
	TimeCommandRequest:       "TimeCommandRequest",
	VoiceAssistantAudio: "VoiceAssistantAudio",
	ListEntitiesEventResponse: "ListEntitiesEventResponse",
	EventResponse:             "EventResponse",
	ListEntitiesValveResponse: "ListEntitiesValveResponse",
	ValveStateResponse:        "ValveStateResponse",
	ValveCommandRequest:       "ValveCommandRequest",
	ListEntitiesDateTimeResponse: "ListEntitiesDateTimeResponse",
	DateTimeStateResponse:        "DateTimeStateResponse",
	DateTimeCommandRequest:       "DateTimeCommandRequest",
	VoiceAssistantTimerEventResponse: "VoiceAssistantTimerEventResponse",
	ListEntitiesUpdateResponse: "ListEntitiesUpdateResponse",
	UpdateStateResponse:        "UpdateStateResponse",
	UpdateCommandRequest:       "UpdateCommandRequest",
	VoiceAssistantAnnounceRequest:       "VoiceAssistantAnnounceRequest",
	VoiceAssistantAnnounceFinished:      "VoiceAssistantAnnounceFinished",
	VoiceAssistantConfigurationRequest:  "VoiceAssistantConfigurationRequest",
	VoiceAssistantConfigurationResponse: "VoiceAssistantConfigurationResponse",
	VoiceAssistantSetConfiguration:      "VoiceAssistantSetConfiguration",
}

// String returns the message type's schema name, or "Unknown" for a
// numeric value outside the closed table.
func (m MessageType) String() string {
	if name, ok := messageNames[m]; ok {
		return name
	}
	return "Unknown"
}

// Valid reports whether m is one of the known message types.
func (m MessageType) Valid() bool {
	_, ok := messageNames[m]
	return ok
}

// Role classifies how the protocol client treats a message type.
type Role uint8

const (
	// RoleRequest messages are only ever sent by this client.
	RoleRequest Role = iota
	// RoleResponse messages are emitted by the device, either as a direct
	// reply to a request or as a subscription/stream item.
	RoleResponse
	// RoleEvent messages are emitted by the device unsolicited and never
	// correlate to a pending request.
	RoleEvent
)

// requestTypes and eventTypes partition the table; everything else is a
// RoleResponse. A frame decoded with a type not in either set, and
// present in messageNames, is a response by elimination.
var requestTypes = map[MessageType]bool{
	HelloRequest: true, ConnectRequest: true, DisconnectRequest: true,
	PingRequest: true, DeviceInfoRequest: true, ListEntitiesRequest: true,
	SubscribeStatesRequest: true, SubscribeLogsRequest: true,
	CoverCommandRequest: true, FanCommandRequest: true, LightCommandRequest: true,
	SwitchCommandRequest: true, SubscribeHomeassistantServicesRequest: true,
	GetTimeRequest: true, SubscribeHomeAssistantStatesRequest: true,
	ExecuteServiceRequest: true, CameraImageRequest: true,
	ClimateCommandRequest: true, NumberCommandRequest: true, SelectCommandRequest: true,
	SirenCommandRequest: true, LockCommandRequest: true, ButtonCommandRequest: true,
	MediaPlayerCommandRequest: true, SubscribeBluetoothLEAdvertisementsRequest: true,
	BluetoothDeviceRequest: true, BluetoothGATTGetServicesRequest: true,
	BluetoothGATTReadRequest: true, BluetoothGATTWriteRequest: true,
	BluetoothGATTReadDescriptorRequest: true, BluetoothGATTWriteDescriptorRequest: true,
	BluetoothGATTNotifyRequest: true, SubscribeBluetoothConnectionsFreeRequest: true,
	UnsubscribeBluetoothLEAdvertisementsRequest: true, SubscribeVoiceAssistantRequest: true,
	VoiceAssistantRequest: true, AlarmControlPanelCommandRequest: true,
	TextCommandRequest: true, DateCommandRequest: true, TimeCommandRequest: true,
	ValveCommandRequest: true, DateTimeCommandRequest: true, UpdateCommandRequest: true,
	VoiceAssistantAnnounceRequest: true, VoiceAssistantConfigurationRequest: true,
	VoiceAssistantSetConfiguration: true,
}

var eventTypes = map[MessageType]bool{
	VoiceAssistantAudio: true, VoiceAssistantAnnounceFinished: true,
}

// Classify returns m's Role.
func Classify(m MessageType) Role {
	if requestTypes[m] {
		return RoleRequest
	}
	if eventTypes[m] {
		return RoleEvent
	}
	return RoleResponse
}

// expectedResponse maps a request type to the single response type that
// concludes a SendAndReceive round trip. Request types absent from this
// map have no 1:1 response - they either stream a response sequence
// (ListEntitiesRequest, SubscribeStatesRequest, SubscribeLogsRequest,
// SubscribeBluetoothLEAdvertisementsRequest, SubscribeVoiceAssistantRequest)
// or are fire-and-forget commands with no direct acknowledgement
// (*CommandRequest, ExecuteServiceRequest). Callers of fire-and-forget or
// streaming requests must use Send plus RegisterSubscription, not
// SendAndReceive.
var expectedResponse = map[MessageType]MessageType{
	HelloRequest:      HelloResponse,
	ConnectRequest:    ConnectResponse,
	DisconnectRequest: DisconnectResponse,
	PingRequest:       PingResponse,
	DeviceInfoRequest: DeviceInfoResponse,
	GetTimeRequest:    GetTimeResponse,
	CameraImageRequest: CameraImageResponse,
	BluetoothDeviceRequest: BluetoothDeviceConnectionResponse,
	BluetoothGATTGetServicesRequest: BluetoothGATTGetServicesResponse,
	BluetoothGATTReadRequest:        BluetoothGATTReadResponse,
	BluetoothGATTReadDescriptorRequest: BluetoothGATTReadResponse,
}

// ExpectedResponse returns the response MessageType a SendAndReceive call
// for req should wait on, and whether one exists. It is defined only for
// RoleRequest message types; calling it with any other type returns
// (0, false).
func ExpectedResponse(req MessageType) (MessageType, bool) {
	if Classify(req) != RoleRequest {
		return 0, false
	}
	resp, ok := expectedResponse[req]
	return resp, ok
}
