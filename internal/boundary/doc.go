// Package boundary owns every text buffer handed across the library edge.
//
// Contents
//
//   - allocator.go: Allocator, a handle table of live buffers.
//   - scope.go: Scope, scoped ownership of handles.
//   - bridge.go: Bridge, domain.Operations flattened to handles and booleans
//     with a last-error slot.
//   - pointers.go: Pointers, the C address to handle table used by cgo, with
//     a quarantine of released addresses.
//
// # Notes
//
// Handles are never reused, so releasing a handle twice is always detected
// and never frees someone else's buffer. Released bytes are wiped.
//
// C addresses are reused by the system allocator, so Pointers keeps the last
// DefaultQuarantine released addresses allocated and tombstoned. A second
// free of any of them is reported; a stale pointer older than that window
// can no longer be told apart from a live one.
package boundary
