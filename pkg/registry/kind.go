package registry

import "strings"

// kindBySubstring maps a DNS-SD service-type substring to the
// DeviceKind it implies. Checked in order; the first match wins, so
// more specific substrings should be listed before broader ones.
var kindBySubstring = []struct {
	substr string
	kind   DeviceKind
}{
	{"_hue.", KindLight},
	{"_hap.", KindLight},
	{"_lifx.", KindLight},
	{"_shelly.", KindSwitch},
	{"_tplink.", KindSwitch},
	{"_kasa.", KindSwitch},
	{"_netatmo.", KindSensor},
	{"_purpleair.", KindSensor},
	{"_googlecast.", KindMedia},
	{"_androidtvremote.", KindMedia},
	{"_sonos.", KindSpeaker},
	{"_airplay.", KindSpeaker},
	{"_raop.", KindSpeaker},
	{"_spotify-connect.", KindSpeaker},
	{"_roku.", KindDisplay},
	{"_viziocast.", KindDisplay},
	{"_ecobee.", KindClimate},
	{"_nest.", KindClimate},
	{"_tstat.", KindClimate},
	{"_arlo.", KindCamera},
	{"_axis-video.", KindCamera},
	{"_rtsp.", KindCamera},
	{"_ring.", KindSecurity},
	{"_august.", KindSecurity},
	{"_schlage.", KindSecurity},
}

// capabilityIgnoreKeys are TXT-record/service keys that describe how to
// reach a device rather than what it can do, so InferCapabilities
// excludes them from the capability set.
var capabilityIgnoreKeys = map[string]struct{}{
	"hostname":        {},
	"port":            {},
	"primary_address": {},
}

// InferCapabilities derives a capability set from a device's
// discovered metadata (DNS-SD TXT records), on the same "infer from
// what discovery handed us" idiom as InferKind: every TXT key other
// than connection plumbing is treated as an advertised capability
// flag.
func InferCapabilities(metadata map[string]string) map[string]struct{} {
	caps := make(map[string]struct{}, len(metadata))
	for k := range metadata {
		if _, ignore := capabilityIgnoreKeys[strings.ToLower(k)]; ignore {
			continue
		}
		caps[k] = struct{}{}
	}
	return caps
}

// InferKind derives a DeviceKind from a DNS-SD service type string
// (e.g. "_hue._tcp.local."), falling back to KindOther when nothing
// matches.
func InferKind(deviceType string) DeviceKind {
	lower := strings.ToLower(deviceType)
	for _, rule := range kindBySubstring {
		if strings.Contains(lower, rule.substr) {
			return rule.kind
		}
	}
	return KindOther
}
