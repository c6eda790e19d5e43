// Package persistence defines the narrow Store seam the registry
// snapshot can be saved to and restored from. Cove's own persistent
// key-value store and its migrations are an out-of-scope external
// collaborator; FileStore is a JSON-file-backed implementation
// sufficient for standalone operation and tests.
package persistence
