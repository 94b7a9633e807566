// Package wbem is a client core for querying a host's management
// instrumentation service and streaming typed results back to a
// monitoring agent.
//
// The package solves three problems: lifecycle management of
// reference-counted native objects across query enumeration, strict
// conversion from the native tagged value union into Go types, and
// mapping the native status-code space onto a small error taxonomy
// callers can reason about.
//
// # Architecture
//
// The layers, leaf first:
//
//   - com: the native boundary: tagged values, status codes, and the
//     handle interfaces a backend implements
//   - Variant: owns one raw value, type-checked extraction
//   - Object: wraps one shared result object, property access
//   - Result: forward-only stream over an enumerator
//   - Helper: the connection to one management namespace
//   - Runtime: process-wide one-time environment initialization
//
// # Basic Usage
//
//	helper, err := wbem.Connect(backend, `ROOT\cimv2`)
//	if err != nil {
//	    return err
//	}
//	defer helper.Close()
//
//	result, err := helper.Query("SELECT Name, HandleCount FROM Win32_Process")
//	if err != nil {
//	    return err
//	}
//	defer result.Close()
//
//	for ok := result.Valid(); ok; ok, err = result.Next() {
//	    v, err := result.Variant("HandleCount")
//	    ...
//	}
//
// # Error Handling
//
// Acquisition failures (initialization, connect, query submission,
// name enumeration, property lookup, type mismatch) surface
// immediately as typed errors. Mid-stream enumeration failures other
// than timeout do not: they are recorded on the stream, logged, and
// reported as end of data, trading possible silent truncation for
// stream robustness. Inspect Result.LastStatus to tell the two apart.
//
// # Concurrency
//
// All calls are synchronous and blocking. The runtime is initialized
// for multi-threaded use, so independent Helper/Result chains may run
// on separate goroutines without external locking, but a single
// Result, Object, or Variant must be confined to one goroutine at a
// time.
package wbem
