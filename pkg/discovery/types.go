package discovery

import "time"

// Domain is the mDNS domain every service type is browsed under.
const Domain = "local."

// MdnsRestartBackoff is the fixed delay, without jitter, between self-healing restarts
// of the whole browse set after a fatal receive/browse error.
const MdnsRestartBackoff = 5 * time.Second

// ServiceTypes is the fixed set of DNS-SD service types MdnsBrowser
// watches. One zeroconf.Browse is started per entry.
var ServiceTypes = []string{
	// Media and entertainment
	"_airplay._tcp.local.",
	"_spotify-connect._tcp.local.",
	"_sonos._tcp.local.",
	"_raop._tcp.local.",
	"_roku._tcp.local.",
	"_plex._tcp.local.",
	"_nvstream._tcp.local.",
	"_steam._tcp.local.",
	"_kodi._tcp.local.",

	// Smart home hubs and protocols
	"_hue._tcp.local.",
	"_matter._tcp.local.",
	"_smartthings._tcp.local.",
	"_homekit._tcp.local.",
	"_hap._tcp.local.",
	"_homeassistant._tcp.local.",
	"_openhab._tcp.local.",
	"_mqtt._tcp.local.",
	"_zigbee._tcp.local.",

	// Smart home devices
	"_nanoleaf._tcp.local.",
	"_lifx._tcp.local.",
	"_wemo._tcp.local.",
	"_tplink._tcp.local.",
	"_tuya._tcp.local.",
	"_yeelight._tcp.local.",
	"_dyson_mqtt._tcp.local.",
	"_nest._tcp.local.",
	"_ring._tcp.local.",
	"_arlo._tcp.local.",
	"_axis._tcp.local.",
	"_insteon._tcp.local.",
	"_lutron._tcp.local.",
	"_ecobee._tcp.local.",
	"_nest-cam._tcp.local.",

	// Apple devices
	"_flametouch._tcp.local.",
	"_companion-link._tcp.local.",
	"_apple-mobdev2._tcp.local.",
	"_apple-mobdev._tcp.local.",
	"_apple-pairable._tcp.local.",
	"_sleep-proxy._udp.local.",
	"_touch-able._tcp.local.",
	"_airport._tcp.local.",
	"_afpovertcp._tcp.local.",
	"_airdrop._tcp.local.",
	"_adisk._tcp.local.",
	"_device-info._tcp.local.",
	"_apple-continuity._tcp.local.",
	"_apple-mobdev2._sub._apple-mobdev._tcp.local.",
	"_services._dns-sd._udp.local.",
	"_ipheth-control._tcp.local.",
	"_apple-midi._udp.local.",
	"_apple-midi._tcp.local.",
	"_apple-mobdev._sub._apple-mobdev._tcp.local.",
	"_apple-mobdev2._sub._apple-mobdev2._tcp.local.",
	"_apple-mobdev._sub._apple-mobdev2._tcp.local.",
	"_apple-iphone._tcp.local.",
	"_apple-iphone._udp.local.",
	"_apple-ios._tcp.local.",
	"_apple-ios._udp.local.",
	"_apple-remotedevice._tcp.local.",
	"_apple-sync._tcp.local.",
	"_apple-findmy._tcp.local.",
	"_apple-findmy._udp.local.",

	// Android devices
	"_adb._tcp.local.",
	"_androidtvremote._tcp.local.",
	"_googlerpc._tcp.local.",
	"_googlezone._tcp.local.",
	"_androidtvremote2._tcp.local.",
	"_androidtvremote3._tcp.local.",
	"_android._tcp.local.",
	"_androidphone._tcp.local.",
	"_androidtablet._tcp.local.",
	"_wear._tcp.local.",
	"_tizen._tcp.local.",
	"_miio._udp.local.",
	"_googlechrome._tcp.local.",
	"_googlecast._tcp.local.",
	"_googlecast-remote._tcp.local.",
	"_googledevices._tcp.local.",

	// Network and printing
	"_ipp._tcp.local.",
	"_ipps._tcp.local.",
	"_scanner._tcp.local.",
	"_pdl-datastream._tcp.local.",
	"_printer._tcp.local.",
	"_ftp._tcp.local.",
	"_sftp-ssh._tcp.local.",
	"_smb._tcp.local.",
	"_ssh._tcp.local.",
	"_rfb._tcp.local.",
	"_rdp._tcp.local.",
	"_http._tcp.local.",
	"_https._tcp.local.",

	// Gaming
	"_minecraft._tcp.local.",
	"_ps4._tcp.local.",
	"_ps5._tcp.local.",
	"_xboxone._tcp.local.",
	"_xbox._tcp.local.",
	"_nintendo-switch._tcp.local.",

	// Voice assistants
	"_alexa._tcp.local.",
	"_googlehome._tcp.local.",
	"_siri._tcp.local.",

	// Misc IoT
	"_esphome._tcp.local.",
	"_tasmota._tcp.local.",
	"_shelly._tcp.local.",
	"_xiaomi._tcp.local.",
}
