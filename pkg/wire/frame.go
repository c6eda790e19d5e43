package wire

import (
	"errors"
	"fmt"
)

// ErrIncomplete is returned by Decode when buf does not yet hold a
// complete frame. The caller should read more bytes and retry; no bytes
// were consumed.
var ErrIncomplete = errors.New("wire: incomplete frame")

// ErrBadPreamble is returned by Decode when the leading byte is not the
// zero-byte preamble. The caller should advance one byte and retry.
var ErrBadPreamble = errors.New("wire: bad preamble byte")

// UnknownMessageTypeError is returned by Decode when a frame's message
// type is not present in the closed MessageType table. The frame itself
// is still returned (and consumed) so the caller may choose to discard
// it and continue.
type UnknownMessageTypeError struct {
	MsgType uint32
}

func (e *UnknownMessageTypeError) Error() string {
	return fmt.Sprintf("wire: unknown message type %d", e.MsgType)
}

// Frame is one decoded protocol unit: a numeric message type plus its
// opaque payload bytes.
type Frame struct {
	MsgType MessageType
	Payload []byte
}

// Encode appends the wire encoding of f to dst: a zero preamble byte, the
// payload length as a varint, the message type as a varint, then the
// payload bytes.
func Encode(dst []byte, f Frame) []byte {
	dst = append(dst, 0x00)
	dst = AppendVarint(dst, uint64(len(f.Payload)))
	dst = AppendVarint(dst, uint64(f.MsgType))
	dst = append(dst, f.Payload...)
	return dst
}

// Decode attempts to read one frame from the front of buf.
//
// On success it returns the frame and the number of bytes consumed.
// If buf holds less than one complete frame, it returns
// (Frame{}, 0, ErrIncomplete) without consuming anything.
// If the leading byte is not the zero preamble, it returns
// (Frame{}, 1, ErrBadPreamble) so the caller can skip one byte and resync.
// If the message type is not in the known table, the frame is still
// fully decoded and consumed; the returned error is an
// *UnknownMessageTypeError wrapping the numeric type.
func Decode(buf []byte) (Frame, int, error) {
	if len(buf) == 0 {
		return Frame{}, 0, ErrIncomplete
	}
	if buf[0] != 0x00 {
		return Frame{}, 1, ErrBadPreamble
	}

	rest := buf[1:]
	length, lengthBytes, err := DecodeVarint(rest)
	if err != nil {
		if errors.Is(err, ErrVarintIncomplete) {
			return Frame{}, 0, ErrIncomplete
		}
		return Frame{}, 0, err
	}
	rest = rest[lengthBytes:]

	msgTypeVal, msgTypeBytes, err := DecodeVarint(rest)
	if err != nil {
		if errors.Is(err, ErrVarintIncomplete) {
			return Frame{}, 0, ErrIncomplete
		}
		return Frame{}, 0, err
	}
	rest = rest[msgTypeBytes:]

	if uint64(len(rest)) < length {
		return Frame{}, 0, ErrIncomplete
	}

	consumed := 1 + lengthBytes + msgTypeBytes + int(length)
	payload := make([]byte, length)
	copy(payload, rest[:length])

	msgType := MessageType(msgTypeVal)
	frame := Frame{MsgType: msgType, Payload: payload}

	if _, ok := messageNames[msgType]; !ok {
		return frame, consumed, &UnknownMessageTypeError{MsgType: uint32(msgTypeVal)}
	}
	return frame, consumed, nil
}
