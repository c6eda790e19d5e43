// Package registry maintains Cove's in-memory device directory: a
// single writer goroutine consumes bus events and applies
// creation/update/removal, while readers obtain independent snapshot
// copies without ever blocking the writer.
package registry
