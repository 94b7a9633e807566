package wbem

import (
	"fmt"

	"github.com/coreidcc/go-wbemcore/com"
)

// InitializationError reports that the one-time runtime setup failed.
// Once raised, no Helper can be constructed in this process: the
// failure is recorded and returned to every later caller.
type InitializationError struct {
	// Step names the setup step that failed: "runtime" or "security".
	Step string
	// Code is the native status returned by the failing step.
	Code com.Code
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("failed to initialize %s: %s", e.Step, e.Code)
}

// ConnectionError reports that constructing a Helper failed. It is
// recoverable: the caller may retry later or skip the host.
type ConnectionError struct {
	// Step names the failing connect step: "locator" or "connect".
	Step string
	// Namespace is the namespace path the Helper was built for.
	Namespace string
	// Code is the native status returned by the failing step.
	Code com.Code
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to %s for namespace %q: %s", stepVerb(e.Step), e.Namespace, e.Code)
}

func stepVerb(step string) string {
	switch step {
	case "locator":
		return "create locator"
	case "connect":
		return "connect"
	default:
		return step
	}
}

// QueryError reports that submitting a query or class enumeration
// failed. Query carries the offending query or class text verbatim.
type QueryError struct {
	Query string
	Code  com.Code
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("failed to execute query %q: %s", e.Query, e.Code)
}

// TimeoutError reports that a fetch exceeded the fixed wait budget.
// It is distinct from other failures so callers can retry Next on
// timeout specifically; the stream is left usable.
type TimeoutError struct {
	// Op names the operation that timed out.
	Op string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, com.Timeout)
}

// LookupError reports that a named property could not be retrieved.
type LookupError struct {
	Key  string
	Code com.Code
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("failed to retrieve key %q: %s", e.Key, e.Code)
}

// NamesError reports that enumerating a result object's property
// names failed.
type NamesError struct {
	Code com.Code
}

func (e *NamesError) Error() string {
	return fmt.Sprintf("failed to retrieve field names: %s", e.Code)
}

// TypeMismatchError reports a typed extraction against an
// incompatible native tag.
type TypeMismatchError struct {
	// Requested is the Go type the caller asked for.
	Requested string
	// Tag is the actual tag of the value.
	Tag com.Tag
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("wrong value type requested: %s for tag %s", e.Requested, e.Tag)
}
