package com

import "fmt"

// Tag identifies which representation a Value carries. The numeric
// values follow the native tagged-union convention, including the
// array and vector flag bits that can be combined with an element tag.
type Tag uint16

const (
	TagEmpty  Tag = 0
	TagNull   Tag = 1
	TagInt16  Tag = 2
	TagInt32  Tag = 3
	TagReal32 Tag = 4
	TagReal64 Tag = 5
	TagString Tag = 8
	TagBool   Tag = 11
	TagInt8   Tag = 16
	TagUint8  Tag = 17
	TagUint16 Tag = 18
	TagUint32 Tag = 19
	TagInt64  Tag = 20
	TagUint64 Tag = 21

	// TagVector and TagArray are flag bits combined with an element tag.
	TagVector Tag = 0x1000
	TagArray  Tag = 0x2000
)

// IsArray reports whether the array flag bit is set.
func (t Tag) IsArray() bool { return t&TagArray != 0 }

// IsVector reports whether the vector flag bit is set.
func (t Tag) IsVector() bool { return t&TagVector != 0 }

// String returns the tag's conventional name.
func (t Tag) String() string {
	if t.IsArray() {
		return fmt.Sprintf("Array(%s)", t&^TagArray)
	}
	if t.IsVector() {
		return fmt.Sprintf("Vector(%s)", t&^TagVector)
	}
	switch t {
	case TagEmpty:
		return "Empty"
	case TagNull:
		return "Null"
	case TagInt8:
		return "Int8"
	case TagInt16:
		return "Int16"
	case TagInt32:
		return "Int32"
	case TagInt64:
		return "Int64"
	case TagUint8:
		return "Uint8"
	case TagUint16:
		return "Uint16"
	case TagUint32:
		return "Uint32"
	case TagUint64:
		return "Uint64"
	case TagReal32:
		return "Real32"
	case TagReal64:
		return "Real64"
	case TagBool:
		return "Bool"
	case TagString:
		return "String"
	default:
		return fmt.Sprintf("Tag(%d)", uint16(t))
	}
}

// Value is the raw tagged union handed out by Object.Get. The Tag is
// authoritative: only the field matching the tag carries meaning.
// Signed integer widths share Int, unsigned widths share Uint, both
// float widths share Float.
//
// A Value may hold native resources beyond its Go fields. Whoever ends
// up owning it must call Clear exactly once; Clear is idempotent so a
// second call is harmless but must not be relied on.
type Value struct {
	Tag   Tag
	Int   int64
	Uint  uint64
	Float float64
	Bool  bool
	Str   string

	release func()
}

// WithRelease returns a copy of the value whose Clear invokes the
// given hook. Backends use this to tie native resource cleanup to the
// value they hand out.
func (v Value) WithRelease(release func()) Value {
	v.release = release
	return v
}

// Clear releases the native resources behind the value, once.
func (v *Value) Clear() {
	if v.release != nil {
		v.release()
		v.release = nil
	}
	v.Tag = TagEmpty
}
