// Package protocol implements the client side of the ESPHome-derived
// native API: a ProtocolClient that owns one TCP connection and
// multiplexes requests/responses and subscriptions over it, and a
// DeviceConnection session layer built on top that speaks the
// Hello/Connect/ListEntities/SubscribeStates handshake.
package protocol
