package wire

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder mode for frame payloads.
// Configured for deterministic encoding with integer keys.
var encMode cbor.EncMode

// decMode is the CBOR decoder mode for frame payloads.
var decMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeUnix,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("wire: failed to create CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("wire: failed to create CBOR decoder mode: %v", err))
	}
}

// MarshalPayload encodes a request/response/event struct to the CBOR
// bytes carried as a Frame's Payload.
func MarshalPayload(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// UnmarshalPayload decodes a Frame's Payload bytes into v.
func UnmarshalPayload(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return decMode.Unmarshal(data, v)
}

// NewPayloadEncoder creates a CBOR encoder that writes payload structs to w.
func NewPayloadEncoder(w io.Writer) *cbor.Encoder {
	return encMode.NewEncoder(w)
}

// NewPayloadDecoder creates a CBOR decoder that reads payload structs from r.
func NewPayloadDecoder(r io.Reader) *cbor.Decoder {
	return decMode.NewDecoder(r)
}
