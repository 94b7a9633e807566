package wbem

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/coreidcc/go-wbemcore/com"
)

// nextTimeout is the fixed server-side wait budget for one advance.
const nextTimeout = 2500 * time.Millisecond

// StreamState describes where a Result is in its lifecycle.
type StreamState int

const (
	// StreamEmpty means the very first fetch found no data; the
	// stream never held an element.
	StreamEmpty StreamState = iota
	// StreamValid means the stream holds a current element.
	StreamValid
	// StreamExhausted means the enumerator reported no more data
	// after at least one element; the last element stays readable.
	StreamExhausted
)

// String returns a string representation of the state.
func (s StreamState) String() string {
	switch s {
	case StreamEmpty:
		return "Empty"
	case StreamValid:
		return "Valid"
	case StreamExhausted:
		return "Exhausted"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// Result is a forward-only stream over the objects a query produced.
// It owns the native enumerator exclusively and the current object
// shared with any wrapper copies taken from it. It never rewinds.
//
// The embedded Object always addresses the most recently fetched
// element; after exhaustion it keeps addressing the last one.
// A Result is not safe for concurrent use.
type Result struct {
	Object

	id      uuid.UUID
	enum    com.Enumerator
	state   StreamState
	lastErr com.Code
	log     zerolog.Logger
}

// newResult wraps a fresh enumerator and performs the first advance.
// A first advance that finds no data is not an error: the enumerator
// is released right away and the stream starts out empty. That
// deliberately folds "class does not exist" and "no instances" into
// the same observable outcome.
func newResult(enum com.Enumerator, log zerolog.Logger) (*Result, error) {
	r := &Result{
		id:    uuid.New(),
		enum:  enum,
		state: StreamEmpty,
		log:   log,
	}
	ok, err := r.Next()
	if err != nil {
		// A timeout on the very first fetch aborts construction;
		// the enumerator must not outlive the failed stream.
		r.Close()
		return nil, err
	}
	if ok {
		r.state = StreamValid
	} else {
		// Whether the class does not exist, errored, or simply has
		// no instances, the observable outcome is the same: an
		// empty stream. The enumerator is done either way.
		r.releaseEnum()
	}
	return r, nil
}

// ID returns the stream's identifier, used in log correlation.
func (r *Result) ID() uuid.UUID {
	return r.id
}

// State returns the stream's lifecycle state.
func (r *Result) State() StreamState {
	return r.state
}

// Valid reports whether the stream holds a current element.
func (r *Result) Valid() bool {
	return r.handle != nil
}

// LastStatus returns the native status recorded for the most recent
// suppressed mid-stream failure, or OK. It is the only way to tell a
// truly exhausted stream from one that stopped on an error.
func (r *Result) LastStatus() com.Code {
	return r.lastErr
}

// Next advances the stream by exactly one element, waiting up to the
// fixed budget for the service to produce it.
//
// It returns (true, nil) when a new element replaced the current one,
// and (false, nil) when there is no more data, either genuine
// exhaustion or a non-timeout native failure, which is recorded in
// LastStatus and logged but intentionally not raised, so that a
// transient fault mid-stream degrades to a short result instead of
// tearing the caller down. A timeout returns a TimeoutError and
// leaves the stream untouched; the caller may retry. Calling Next on
// an empty or exhausted stream returns (false, nil) with no side
// effects.
func (r *Result) Next() (bool, error) {
	if r.enum == nil {
		return false, nil
	}

	obj, code := r.enum.Next(nextTimeout)
	switch code {
	case com.OK:
		r.handle.release()
		r.handle = newSharedObject(obj)
		return true, nil
	case com.False:
		// The current object stays at the last element so reads
		// keep working after exhaustion.
		r.releaseEnum()
		return false, nil
	case com.Timeout:
		return false, &TimeoutError{Op: "fetch next result"}
	default:
		r.lastErr = code
		r.log.Warn().
			Stringer("stream", r.id).
			Str("status", code.String()).
			Msg("enumeration failed, treating stream as exhausted")
		return false, nil
	}
}

// Names returns the current object's own property names in definition
// order, excluding system properties.
func (r *Result) Names() ([]string, error) {
	if r.handle == nil {
		return nil, &NamesError{Code: com.CodeInvalidObject}
	}
	names, code := r.handle.obj.Names(com.NamesAlways | com.NamesNonSystemOnly)
	if code.Failed() {
		return nil, &NamesError{Code: code}
	}
	return names, nil
}

// Close releases the enumerator and this stream's reference to the
// current object. Idempotent.
func (r *Result) Close() {
	r.releaseEnum()
	r.Object.Close()
}

func (r *Result) releaseEnum() {
	if r.enum != nil {
		r.enum.Release()
		r.enum = nil
		if r.state == StreamValid {
			r.state = StreamExhausted
		}
	}
}
