// Package connection provides the jittered exponential backoff shared
// by discovery's self-heal loop and protocol's reconnect loop, and the
// Manager that drives protocol's reconnect loop end to end: connect,
// track state, and retry with that backoff until a callback-driven
// caller reports the session ended.
//
// # Reconnection strategy
//
//  1. Initial delay: 1 second
//  2. Exponential increase: 2s, 4s, 8s, 16s, 32s
//  3. Maximum delay: 60 seconds
//  4. Continue at 60s until successful
//  5. Reset to 1s on successful reconnection
//
// # Jitter
//
// To prevent thundering herd when multiple clients reconnect:
//
//	actual_delay = base_delay + random(0, base_delay * 0.25)
package connection
