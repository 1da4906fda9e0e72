// Package torch wraps the native acceleration runtime's tensor, buffer and
// model objects in memory-safe, type-safe Go values.
//
// Every wrapper pairs a runtime handle with explicit ownership: owned handles
// are destroyed exactly once on Release, borrowed handles are only forgotten,
// and a buffer that wraps caller bytes detaches them before the runtime
// destructor runs. The element types a tensor may carry form a closed set
// (Element), each bound to one wire tag, so runtime and Go views of the same
// bytes can never disagree about their type.
//
// The package performs no locking; callers share values across goroutines at
// their own risk, as all blocking happens inside the runtime.
package torch
