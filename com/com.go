// Package com defines the boundary to the host's native object query
// runtime: the tagged value union, the status code space, and the
// handle interfaces the wbem package drives.
//
// The package deliberately speaks the native dialect. Operations return
// a Code instead of an error because several codes (False, Timeout) are
// successful outcomes that the caller has to branch on; translating
// them into errors at this layer would destroy that distinction. The
// wbem package converts failing codes into typed errors.
//
// # Handles
//
// Every interface here models a reference-counted native handle.
// Release must be called exactly once per owned reference; Object
// additionally exposes AddRef so one result object can be shared
// between a stream and wrapper copies taken from it. Implementations
// live elsewhere: a production backend binds to the platform runtime,
// and comtest provides a configurable in-memory fake.
package com

import "time"

// QueryLanguage is the query dialect submitted with every query.
const QueryLanguage = "WQL"

// Flags accepted by Services.ExecQuery and Services.CreateInstanceEnum.
const (
	// QueryReturnImmediately makes submission semi-synchronous: the
	// call returns once the query is accepted, iteration may block.
	QueryReturnImmediately = 0x10
	// QueryForwardOnly requests a forward-only enumerator, allowing
	// the service to free objects already iterated.
	QueryForwardOnly = 0x20
)

// Flags accepted by Object.Names.
const (
	// NamesAlways returns all properties.
	NamesAlways = 0x0
	// NamesNonSystemOnly excludes system properties.
	NamesNonSystemOnly = 0x40
)

// API is the entry point into the native runtime. It mirrors the thin
// adaptor the query layer is written against so that tests can swap in
// a fake without touching any other code.
type API interface {
	// InitializeRuntime performs the one-time environment setup that
	// makes the runtime usable from multiple threads.
	InitializeRuntime() Code

	// InitializeSecurity applies the process-wide security policy.
	// Must be called once, after InitializeRuntime succeeded.
	InitializeSecurity() Code

	// ShutdownRuntime tears the environment down again. Called at
	// most once, at process exit, after all handles were released.
	ShutdownRuntime()

	// CreateLocator returns a fresh locator handle.
	CreateLocator() (Locator, Code)
}

// Locator addresses management namespaces.
type Locator interface {
	// ConnectServer connects to the given namespace path and returns
	// a services proxy for it.
	ConnectServer(namespace string) (Services, Code)

	// Release frees the locator handle.
	Release()
}

// Services is the proxy for one connected namespace.
type Services interface {
	// ExecQuery submits a query string and returns an enumerator over
	// the matching objects.
	ExecQuery(language, query string, flags int) (Enumerator, Code)

	// CreateInstanceEnum returns an enumerator over all instances of
	// the named class.
	CreateInstanceEnum(class string, flags int) (Enumerator, Code)

	// Release frees the services proxy.
	Release()
}

// Enumerator is a forward-only, server-backed result sequence.
type Enumerator interface {
	// Next blocks up to timeout for the next object. The object is
	// non-nil only when the returned code is OK. False means the
	// sequence is exhausted, Timeout that the budget expired before
	// an object became available.
	Next(timeout time.Duration) (Object, Code)

	// Release frees the enumerator handle.
	Release()
}

// Object is one reference-counted query result object.
type Object interface {
	// Get fetches the named property as a raw tagged value. The
	// caller owns the returned value and must Clear it.
	Get(name string) (Value, Code)

	// Names returns the object's property names in definition order,
	// filtered by flags.
	Names(flags int) ([]string, Code)

	// AddRef takes an additional reference on the object.
	AddRef()

	// Release drops one reference; the object is freed when the last
	// reference is released.
	Release()
}
