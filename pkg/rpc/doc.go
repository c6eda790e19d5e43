// Package rpc defines the thin query/command surface Cove exposes to
// operator tooling (cmd/covectl's debug REPL, and eventually an HTTP
// transport, which stays out of scope here). Surface is transport-
// agnostic: it is backed by a Registry for reads and an optional
// Commander for writes.
package rpc
