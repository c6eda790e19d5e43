package protocol

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/covehub/cove/pkg/version"
	"github.com/covehub/cove/pkg/wire"
)

// SessionState tracks a DeviceConnection's position in the
// Hello/Connect handshake.
type SessionState uint8

const (
	StateDisconnected SessionState = iota
	StateHandshaking
	StateUnauthenticated
	StateReady
)

func (s SessionState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateHandshaking:
		return "handshaking"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// ErrAuthFailed is returned by Connect when the device rejects the
// supplied password.
var ErrAuthFailed = errors.New("protocol: invalid password")

// ErrNotReady is returned by operations that require StateReady.
var ErrNotReady = errors.New("protocol: session not ready")

const clientInfo = "cove"

const (
	defaultRequestTimeout = 5 * time.Second
	listEntitiesTimeout   = 10 * time.Second
)

// ErrIncompatibleVersion is returned by Hello when the device reports
// an api_version with a different major component than version.Current.
var ErrIncompatibleVersion = errors.New("protocol: incompatible api_version")

// entityListMessageTypes are the ListEntities*Response types a
// ListEntities call subscribes to in addition to ListEntitiesDoneResponse.
var entityListMessageTypes = []wire.MessageType{
	wire.ListEntitiesBinarySensorResponse,
	wire.ListEntitiesCoverResponse,
	wire.ListEntitiesFanResponse,
	wire.ListEntitiesLightResponse,
	wire.ListEntitiesSensorResponse,
	wire.ListEntitiesSwitchResponse,
	wire.ListEntitiesTextSensorResponse,
	wire.ListEntitiesServicesResponse,
	wire.ListEntitiesCameraResponse,
	wire.ListEntitiesClimateResponse,
	wire.ListEntitiesNumberResponse,
	wire.ListEntitiesSelectResponse,
	wire.ListEntitiesSirenResponse,
	wire.ListEntitiesLockResponse,
	wire.ListEntitiesButtonResponse,
	wire.ListEntitiesMediaPlayerResponse,
	wire.ListEntitiesAlarmControlPanelResponse,
	wire.ListEntitiesTextResponse,
	wire.ListEntitiesDateResponse,
	wire.ListEntitiesTimeResponse,
	wire.ListEntitiesEventResponse,
	wire.ListEntitiesValveResponse,
	wire.ListEntitiesDateTimeResponse,
	wire.ListEntitiesUpdateResponse,
}

// stateMessageTypes are the *StateResponse types a SubscribeStates
// call subscribes to.
var stateMessageTypes = []wire.MessageType{
	wire.BinarySensorStateResponse,
	wire.CoverStateResponse,
	wire.FanStateResponse,
	wire.LightStateResponse,
	wire.SensorStateResponse,
	wire.SwitchStateResponse,
	wire.TextSensorStateResponse,
	wire.ClimateStateResponse,
	wire.NumberStateResponse,
	wire.SelectStateResponse,
	wire.SirenStateResponse,
	wire.LockStateResponse,
	wire.MediaPlayerStateResponse,
	wire.AlarmControlPanelStateResponse,
	wire.TextStateResponse,
	wire.DateStateResponse,
	wire.TimeStateResponse,
	wire.ValveStateResponse,
	wire.DateTimeStateResponse,
	wire.UpdateStateResponse,
}

// DeviceConnection is the session layer atop ProtocolClient: it speaks
// the Hello/Connect handshake and the list/subscribe operations a
// device integration needs, one call at a time.
type DeviceConnection struct {
	client *ProtocolClient

	mu    sync.Mutex
	state SessionState
}

// NewDeviceConnection wraps an already-dialed ProtocolClient in a
// session. The session starts in StateDisconnected until Hello succeeds.
func NewDeviceConnection(client *ProtocolClient) *DeviceConnection {
	return &DeviceConnection{client: client, state: StateDisconnected}
}

// State returns the session's current position in the handshake.
func (d *DeviceConnection) State() SessionState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *DeviceConnection) setState(s SessionState) {
	d.mu.Lock()
	d.state = s
	d.mu.Unlock()
}

func (d *DeviceConnection) requireReady() error {
	if d.State() != StateReady {
		return ErrNotReady
	}
	return nil
}

func (d *DeviceConnection) call(ctx context.Context, reqType wire.MessageType, req, resp any) error {
	payload, err := wire.MarshalPayload(req)
	if err != nil {
		return fmt.Errorf("protocol: encode %v: %w", reqType, err)
	}
	data, err := d.client.SendAndReceive(ctx, reqType, payload, defaultRequestTimeout)
	if err != nil {
		if errors.Is(err, ErrDisconnected) {
			d.setState(StateDisconnected)
		}
		return err
	}
	if resp == nil {
		return nil
	}
	return wire.UnmarshalPayload(data, resp)
}

// Hello performs the mandatory first exchange on a fresh connection.
func (d *DeviceConnection) Hello(ctx context.Context) (*HelloResponse, error) {
	req := HelloRequest{
		ClientInfo:      clientInfo,
		APIVersionMajor: version.Current.Major,
		APIVersionMinor: version.Current.Minor,
	}
	var resp HelloResponse
	if err := d.call(ctx, wire.HelloRequest, &req, &resp); err != nil {
		return nil, err
	}

	deviceVersion := version.SpecVersion{Major: resp.APIVersionMajor, Minor: resp.APIVersionMinor}
	if !version.Current.Compatible(deviceVersion) {
		return &resp, fmt.Errorf("%w: device reports %s, client is %s",
			ErrIncompatibleVersion, deviceVersion, version.Current)
	}

	d.setState(StateHandshaking)
	return &resp, nil
}

// Connect authenticates the session. password may be nil if the
// device requires none. Invalid credentials return ErrAuthFailed and
// leave the session in StateUnauthenticated.
func (d *DeviceConnection) Connect(ctx context.Context, password *string) (*ConnectResponse, error) {
	req := ConnectRequest{}
	if password != nil {
		req.Password = *password
	}
	var resp ConnectResponse
	if err := d.call(ctx, wire.ConnectRequest, &req, &resp); err != nil {
		return nil, err
	}
	if resp.InvalidPassword {
		d.setState(StateUnauthenticated)
		return &resp, ErrAuthFailed
	}
	d.setState(StateReady)
	return &resp, nil
}

// Ping checks connectivity on an already-Ready session.
func (d *DeviceConnection) Ping(ctx context.Context) error {
	if err := d.requireReady(); err != nil {
		return err
	}
	return d.call(ctx, wire.PingRequest, &PingRequest{}, &PingResponse{})
}

// DeviceInfo fetches static device metadata.
func (d *DeviceConnection) DeviceInfo(ctx context.Context) (*DeviceInfoResponse, error) {
	if err := d.requireReady(); err != nil {
		return nil, err
	}
	var resp DeviceInfoResponse
	if err := d.call(ctx, wire.DeviceInfoRequest, &DeviceInfoRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Disconnect asks the device to close the session cleanly and moves
// the session to StateDisconnected regardless of the outcome.
func (d *DeviceConnection) Disconnect(ctx context.Context) error {
	defer d.setState(StateDisconnected)
	return d.call(ctx, wire.DisconnectRequest, &DisconnectRequest{}, &DisconnectResponse{})
}

// ListEntities enumerates every entity the device exposes. It
// subscribes to all entity-description types plus
// ListEntitiesDoneResponse, sends the request, and accumulates
// descriptions until Done arrives or ctx/listEntitiesTimeout elapses.
// Subscriptions are always torn down on return.
func (d *DeviceConnection) ListEntities(ctx context.Context) ([]EntityDescription, error) {
	if err := d.requireReady(); err != nil {
		return nil, err
	}

	type frame struct {
		kind wire.MessageType
		data []byte
	}
	merged := make(chan frame, 64)

	subs := make(map[wire.MessageType]<-chan []byte, len(entityListMessageTypes)+1)
	for _, t := range entityListMessageTypes {
		subs[t] = d.client.RegisterSubscription(t)
	}
	doneCh := d.client.RegisterSubscription(wire.ListEntitiesDoneResponse)
	subs[wire.ListEntitiesDoneResponse] = doneCh

	fanCtx, cancelFan := context.WithCancel(ctx)
	var wg sync.WaitGroup
	for kind, ch := range subs {
		wg.Add(1)
		go func(kind wire.MessageType, ch <-chan []byte) {
			defer wg.Done()
			for {
				select {
				case data, ok := <-ch:
					if !ok {
						return
					}
					select {
					case merged <- frame{kind: kind, data: data}:
					case <-fanCtx.Done():
						return
					}
				case <-fanCtx.Done():
					return
				}
			}
		}(kind, ch)
	}
	defer func() {
		cancelFan()
		for t := range subs {
			d.client.CancelSubscription(t)
		}
		wg.Wait()
	}()

	payload, err := wire.MarshalPayload(&ListEntitiesRequest{})
	if err != nil {
		return nil, fmt.Errorf("protocol: encode ListEntitiesRequest: %w", err)
	}
	if err := d.client.Send(ctx, wire.ListEntitiesRequest, payload); err != nil {
		return nil, err
	}

	timeout := time.NewTimer(listEntitiesTimeout)
	defer timeout.Stop()

	var entities []EntityDescription
	for {
		select {
		case f := <-merged:
			if f.kind == wire.ListEntitiesDoneResponse {
				return entities, nil
			}
			var desc EntityDescription
			if err := wire.UnmarshalPayload(f.data, &desc); err != nil {
				continue
			}
			desc.Kind = f.kind.String()
			entities = append(entities, desc)
		case <-timeout.C:
			return entities, fmt.Errorf("protocol: ListEntities: %w", ErrTimeout)
		case <-ctx.Done():
			return entities, ctx.Err()
		}
	}
}

// StateCallback receives one state update, paired with the entity
// description ListEntities previously discovered for its Key (nil if
// the key is unknown, e.g. SubscribeStates was called without a prior
// ListEntities).
type StateCallback func(entity *EntityDescription, update StateUpdate)

// SubscribeStates sends SubscribeStatesRequest and forwards every
// inbound state frame to callback until ctx is cancelled, at which
// point all subscriptions are torn down.
func (d *DeviceConnection) SubscribeStates(ctx context.Context, entities []EntityDescription, callback StateCallback) error {
	if err := d.requireReady(); err != nil {
		return err
	}

	byKey := make(map[uint32]*EntityDescription, len(entities))
	for i := range entities {
		byKey[entities[i].Key] = &entities[i]
	}

	chans := make(map[wire.MessageType]<-chan []byte, len(stateMessageTypes))
	for _, t := range stateMessageTypes {
		chans[t] = d.client.RegisterSubscription(t)
	}
	defer func() {
		for t := range chans {
			d.client.CancelSubscription(t)
		}
	}()

	payload, err := wire.MarshalPayload(&SubscribeStatesRequest{})
	if err != nil {
		return fmt.Errorf("protocol: encode SubscribeStatesRequest: %w", err)
	}
	if err := d.client.Send(ctx, wire.SubscribeStatesRequest, payload); err != nil {
		return err
	}

	var wg sync.WaitGroup
	for kind, ch := range chans {
		wg.Add(1)
		go func(kind wire.MessageType, ch <-chan []byte) {
			defer wg.Done()
			for {
				select {
				case data, ok := <-ch:
					if !ok {
						return
					}
					var upd StateUpdate
					if err := wire.UnmarshalPayload(data, &upd); err != nil {
						continue
					}
					upd.Kind = kind.String()
					callback(byKey[upd.Key], upd)
				case <-ctx.Done():
					return
				}
			}
		}(kind, ch)
	}

	<-ctx.Done()
	wg.Wait()
	return ctx.Err()
}

// SubscribeLogs streams decoded log lines on a 32-entry channel until
// ctx is cancelled or the client closes the subscription, at which
// point the subscription is torn down and the returned channel is
// closed. Cancelling ctx is the only way for the caller to unsubscribe:
// a caller that merely stops reading leaves the stream blocked once the
// channel is full, and the client drops further log frames meanwhile.
func (d *DeviceConnection) SubscribeLogs(ctx context.Context, level *int32) (<-chan LogMessage, error) {
	if err := d.requireReady(); err != nil {
		return nil, err
	}

	req := SubscribeLogsRequest{}
	if level != nil {
		req.Level = *level
	}
	payload, err := wire.MarshalPayload(&req)
	if err != nil {
		return nil, fmt.Errorf("protocol: encode SubscribeLogsRequest: %w", err)
	}
	if err := d.client.Send(ctx, wire.SubscribeLogsRequest, payload); err != nil {
		return nil, err
	}

	raw := d.client.RegisterSubscription(wire.SubscribeLogsResponse)
	out := make(chan LogMessage, 32)

	go func() {
		defer close(out)
		defer d.client.CancelSubscription(wire.SubscribeLogsResponse)
		for {
			select {
			case data, ok := <-raw:
				if !ok {
					return
				}
				var msg LogMessage
				if err := wire.UnmarshalPayload(data, &msg); err != nil {
					continue
				}
				select {
				case out <- msg:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
