package wire

import "testing"

type testHelloPayload struct {
	ClientInfo     string `cbor:"1,keyasint"`
	APIVersionMajor uint32 `cbor:"2,keyasint"`
	APIVersionMinor uint32 `cbor:"3,keyasint"`
}

func TestMarshalUnmarshalPayloadRoundTrip(t *testing.T) {
	original := testHelloPayload{ClientInfo: "cove", APIVersionMajor: 1, APIVersionMinor: 9}

	data, err := MarshalPayload(original)
	if err != nil {
		t.Fatalf("MarshalPayload failed: %v", err)
	}

	var decoded testHelloPayload
	if err := UnmarshalPayload(data, &decoded); err != nil {
		t.Fatalf("UnmarshalPayload failed: %v", err)
	}

	if decoded != original {
		t.Errorf("got %+v, want %+v", decoded, original)
	}
}

func TestUnmarshalPayloadEmptyIsNoop(t *testing.T) {
	var decoded testHelloPayload
	if err := UnmarshalPayload(nil, &decoded); err != nil {
		t.Fatalf("UnmarshalPayload(nil) failed: %v", err)
	}
	if decoded != (testHelloPayload{}) {
		t.Errorf("expected zero value, got %+v", decoded)
	}
}
