// Package version parses and compares the api_version_major/minor pair
// the native API exchanges during Hello. There is no ALPN or TLS
// negotiation at this layer: a plain TCP connection carries the frame
// envelope directly, so version compatibility is decided purely from
// the Hello/HelloResponse payload fields.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current is the api_version this library implements when it sends
// HelloRequest.
var Current = SpecVersion{Major: 1, Minor: 9}

// SpecVersion is a parsed "major.minor" api_version pair.
type SpecVersion struct {
	Major uint32
	Minor uint32
}

// Parse parses a "major.minor" version string.
func Parse(s string) (SpecVersion, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return SpecVersion{}, fmt.Errorf("invalid version %q: expected major.minor", s)
	}

	major, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil || parts[0] == "" {
		return SpecVersion{}, fmt.Errorf("invalid version %q: bad major component", s)
	}

	minor, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil || parts[1] == "" {
		return SpecVersion{}, fmt.Errorf("invalid version %q: bad minor component", s)
	}

	return SpecVersion{Major: uint32(major), Minor: uint32(minor)}, nil
}

// String returns the version as "major.minor".
func (v SpecVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compatible returns true if other shares the same major version. The
// native API only breaks compatibility on major bumps; a device
// reporting a higher minor than Current is still expected to serve
// every message type this library knows about.
func (v SpecVersion) Compatible(other SpecVersion) bool {
	return v.Major == other.Major
}
