package wbem

import (
	"strconv"

	"github.com/coreidcc/go-wbemcore/com"
)

// Variant owns one raw tagged value, typically obtained through
// Object.Get, and extracts it into Go types. Extraction is strict:
// the tag decides which accessors are legal, and anything outside the
// documented widenings returns a TypeMismatchError instead of
// coercing.
//
// The Variant owns the value's native resources. Close releases them;
// after Close every accessor reports a mismatch against the Empty tag.
// A Variant is not safe for concurrent use.
type Variant struct {
	value com.Value
}

// NewVariant takes ownership of the given raw value.
func NewVariant(value com.Value) *Variant {
	return &Variant{value: value}
}

// Type returns the native tag of the owned value.
func (v *Variant) Type() com.Tag {
	return v.value.Tag
}

// Close releases the native resources behind the value, exactly once.
func (v *Variant) Close() {
	v.value.Clear()
}

// Int extracts any integer width that fits an int without loss:
// signed 8/16/32 and unsigned 8/16/32.
func (v *Variant) Int() (int, error) {
	switch v.value.Tag {
	case com.TagInt8, com.TagInt16, com.TagInt32:
		return int(v.value.Int), nil
	case com.TagUint8, com.TagUint16, com.TagUint32:
		return int(v.value.Uint), nil
	default:
		return 0, &TypeMismatchError{Requested: "int", Tag: v.value.Tag}
	}
}

// Int64 extracts any signed integer width, widened to 64 bit.
func (v *Variant) Int64() (int64, error) {
	switch v.value.Tag {
	case com.TagInt8, com.TagInt16, com.TagInt32, com.TagInt64:
		return v.value.Int, nil
	default:
		return 0, &TypeMismatchError{Requested: "int64", Tag: v.value.Tag}
	}
}

// Uint32 extracts unsigned widths up to 32 bit.
func (v *Variant) Uint32() (uint32, error) {
	switch v.value.Tag {
	case com.TagUint8, com.TagUint16, com.TagUint32:
		return uint32(v.value.Uint), nil
	default:
		return 0, &TypeMismatchError{Requested: "uint32", Tag: v.value.Tag}
	}
}

// Uint64 extracts any unsigned integer width, widened to 64 bit.
func (v *Variant) Uint64() (uint64, error) {
	switch v.value.Tag {
	case com.TagUint8, com.TagUint16, com.TagUint32, com.TagUint64:
		return v.value.Uint, nil
	default:
		return 0, &TypeMismatchError{Requested: "uint64", Tag: v.value.Tag}
	}
}

// Bool extracts a boolean. No other tag converts to bool.
func (v *Variant) Bool() (bool, error) {
	switch v.value.Tag {
	case com.TagBool:
		return v.value.Bool, nil
	default:
		return false, &TypeMismatchError{Requested: "bool", Tag: v.value.Tag}
	}
}

// Float32 extracts a 32-bit float. 64-bit floats do not narrow.
func (v *Variant) Float32() (float32, error) {
	switch v.value.Tag {
	case com.TagReal32:
		return float32(v.value.Float), nil
	default:
		return 0, &TypeMismatchError{Requested: "float32", Tag: v.value.Tag}
	}
}

// Float64 extracts a float, widening 32-bit values.
func (v *Variant) Float64() (float64, error) {
	switch v.value.Tag {
	case com.TagReal32, com.TagReal64:
		return v.value.Float, nil
	default:
		return 0, &TypeMismatchError{Requested: "float64", Tag: v.value.Tag}
	}
}

// String renders the value as text. Any scalar stringifies; array and
// vector values yield fixed placeholders instead of an element-wise
// conversion, and Null renders as the empty string. Booleans render
// as "1"/"0", following the native numeric promotion.
func (v *Variant) String() (string, error) {
	if v.value.Tag.IsArray() {
		return "<array>", nil
	}
	if v.value.Tag.IsVector() {
		return "<vector>", nil
	}

	switch v.value.Tag {
	case com.TagString:
		return v.value.Str, nil
	case com.TagReal32, com.TagReal64:
		return strconv.FormatFloat(v.value.Float, 'f', -1, 64), nil
	case com.TagInt8, com.TagInt16, com.TagInt32, com.TagInt64:
		return strconv.FormatInt(v.value.Int, 10), nil
	case com.TagUint8, com.TagUint16, com.TagUint32, com.TagUint64:
		return strconv.FormatUint(v.value.Uint, 10), nil
	case com.TagBool:
		if v.value.Bool {
			return "1", nil
		}
		return "0", nil
	case com.TagNull:
		return "", nil
	default:
		return "", &TypeMismatchError{Requested: "string", Tag: v.value.Tag}
	}
}
