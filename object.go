package wbem

import "github.com/coreidcc/go-wbemcore/com"

// sharedObject tracks one owned reference to a native result object.
// Copies take their own reference through clone; the native object is
// released when the last holder closes. The zero handle inside an
// Object models the inert empty wrapper.
type sharedObject struct {
	obj      com.Object
	released bool
}

func newSharedObject(obj com.Object) *sharedObject {
	if obj == nil {
		return nil
	}
	return &sharedObject{obj: obj}
}

// clone takes an additional native reference for a new holder.
func (s *sharedObject) clone() *sharedObject {
	if s == nil {
		return nil
	}
	s.obj.AddRef()
	return &sharedObject{obj: s.obj}
}

// release drops this holder's reference, once.
func (s *sharedObject) release() {
	if s == nil || s.released {
		return
	}
	s.released = true
	s.obj.Release()
}

// Object wraps a shared query result object and exposes property
// inspection and retrieval. A wrapper over no object is a valid,
// inert empty state: it has no properties and no types, and none of
// the inspection methods fail on it.
//
// Sharing is same-call-chain copy semantics, not cross-thread
// sharing; an Object must be confined to one goroutine at a time.
type Object struct {
	handle *sharedObject
}

// Clone returns a wrapper holding its own reference to the same
// native object. Both wrappers must be closed independently.
func (o *Object) Clone() *Object {
	return &Object{handle: o.handle.clone()}
}

// Close drops this wrapper's reference to the native object.
func (o *Object) Close() {
	o.handle.release()
	o.handle = nil
}

// Contains reports whether the object carries a usable value for key.
// A failed fetch and a Null-tagged value both count as absent. It
// never fails.
func (o *Object) Contains(key string) bool {
	if o.handle == nil {
		return false
	}
	value, code := o.handle.obj.Get(key)
	if code.Failed() {
		return false
	}
	notNull := value.Tag != com.TagNull
	value.Clear()
	return notNull
}

// TypeID returns the native tag of the property, or TagEmpty when the
// key is absent or the fetch fails. It never fails.
func (o *Object) TypeID(key string) com.Tag {
	if o.handle == nil {
		return com.TagEmpty
	}
	value, code := o.handle.obj.Get(key)
	if code.Failed() {
		return com.TagEmpty
	}
	tag := value.Tag
	value.Clear()
	return tag
}

// Get fetches the raw tagged value for key. Ownership of the value
// passes to the caller, usually straight into NewVariant. Unlike
// Contains and TypeID this surfaces fetch failures, as a LookupError:
// callers reaching for a specific key expect it to exist.
func (o *Object) Get(key string) (com.Value, error) {
	if o.handle == nil {
		return com.Value{}, &LookupError{Key: key, Code: com.CodeNotFound}
	}
	value, code := o.handle.obj.Get(key)
	if code.Failed() {
		return com.Value{}, &LookupError{Key: key, Code: code}
	}
	return value, nil
}

// Variant fetches key and wraps it for typed extraction. The caller
// owns the returned Variant and must Close it.
func (o *Object) Variant(key string) (*Variant, error) {
	value, err := o.Get(key)
	if err != nil {
		return nil, err
	}
	return NewVariant(value), nil
}
