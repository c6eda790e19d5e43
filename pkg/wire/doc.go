// Package wire implements the binary framing and message-type tables for
// the ESPHome-style native API protocol that Cove speaks to device
// firmware.
//
// A frame on the wire is:
//
//	byte    preamble    always 0x00
//	varint  length      byte length of payload
//	varint  msg_type    numeric MessageType
//	bytes   payload     message-type-specific body, length bytes long
//
// Varints are unsigned LEB128: 7 value bits per byte, high bit set on every
// byte but the last. This package owns encoding/decoding that envelope
// (Frame, Encode, Decode) and the closed, spec-derived table of message
// types plus their request/response/event classification (MessageType,
// Classify, ExpectedResponse). It does not interpret payload bytes -
// payload.go provides a CBOR-backed codec for the typed request/response
// structs defined in pkg/protocol.
package wire
