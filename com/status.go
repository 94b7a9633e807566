package com

import "fmt"

// Code is a native status code. The value space is HRESULT-shaped:
// the high bit marks failure, a handful of low positive values are
// successful non-OK outcomes.
type Code uint32

// Success codes.
const (
	// OK means the operation completed and produced a result.
	OK Code = 0x0
	// False means the operation completed without data; for an
	// enumerator this is "no more elements".
	False Code = 0x1
	// Timeout means the wait budget expired before the operation
	// produced a result. The operation may be retried.
	Timeout Code = 0x40004
)

// Failure codes.
const (
	CodeFailed           Code = 0x80041001
	CodeNotFound         Code = 0x80041002
	CodeAccessDenied     Code = 0x80041003
	CodeProviderFailure  Code = 0x80041004
	CodeTypeMismatch     Code = 0x80041005
	CodeOutOfMemory      Code = 0x80041006
	CodeInvalidContext   Code = 0x80041007
	CodeInvalidParameter Code = 0x80041008
	CodeNotAvailable     Code = 0x80041009
	CodeCriticalError    Code = 0x8004100A
	CodeInvalidNamespace Code = 0x8004100E
	CodeInvalidObject    Code = 0x8004100F
	CodeInvalidClass     Code = 0x80041010
	CodeTransportFailure Code = 0x80041015
	CodeInvalidOperation Code = 0x80041016
	CodeInvalidQuery     Code = 0x80041017
	CodeUnexpected       Code = 0x8004101D
)

// Failed reports whether the code marks a failed operation. Success
// codes other than OK (False, Timeout) are not failures.
func (c Code) Failed() bool {
	return c&0x80000000 != 0
}

// Message resolves the code to a short human-readable description.
// The codes a caller is most likely to hit through a malformed request
// get dedicated texts; everything else falls back to a generic one.
func (c Code) Message() string {
	switch c {
	case OK:
		return "OK"
	case False:
		return "No more data"
	case Timeout:
		return "Timed out"
	case CodeInvalidNamespace:
		return "Invalid Namespace"
	case CodeAccessDenied:
		return "Access Denied"
	case CodeInvalidClass:
		return "Invalid Class"
	case CodeInvalidQuery:
		return "Invalid Query"
	case CodeNotFound:
		return "Not Found"
	case CodeOutOfMemory:
		return "Out Of Memory"
	case CodeInvalidParameter:
		return "Invalid Parameter"
	case CodeTransportFailure:
		return "Transport Failure"
	case CodeFailed:
		return "Call Failed"
	default:
		return "Unknown Error"
	}
}

// String renders the resolved message together with the raw code in
// hex, the form every error in this module embeds.
func (c Code) String() string {
	return fmt.Sprintf("%s (0x%x)", c.Message(), uint32(c))
}
