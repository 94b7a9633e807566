package comtest

import "github.com/coreidcc/go-wbemcore/com"

// Class is a named collection of scripted enumeration steps. Add
// appends instances, Fail injects a status code at that position in
// the enumeration; the sequence is replayed in order by every
// enumerator created for the class.
type Class struct {
	name  string
	svc   *Service
	steps []step
}

// Add appends an instance to the enumeration sequence.
func (c *Class) Add(inst *Instance) *Class {
	c.svc.mu.Lock()
	c.steps = append(c.steps, step{inst: inst})
	c.svc.mu.Unlock()
	return c
}

// Fail injects a status code to be returned by the Next call at this
// position in the sequence. The position is consumed: a retried Next
// proceeds to the following step, which makes com.Timeout injections
// behave like a transient stall.
func (c *Class) Fail(code com.Code) *Class {
	c.svc.mu.Lock()
	c.steps = append(c.steps, step{code: code})
	c.svc.mu.Unlock()
	return c
}

func (c *Class) snapshot() []step {
	c.svc.mu.Lock()
	defer c.svc.mu.Unlock()
	out := make([]step, len(c.steps))
	copy(out, c.steps)
	return out
}

// Prop is one named property of an instance. Order matters: Names
// reports properties in definition order.
type Prop struct {
	Name  string
	Value com.Value
}

// Instance is one fake result object definition. The same Instance
// may appear in several classes or positions; each enumeration hands
// out an independently reference-counted object for it.
type Instance struct {
	props []Prop
}

// NewInstance builds an instance from ordered properties.
func NewInstance(props ...Prop) *Instance {
	return &Instance{props: props}
}

// Str defines a string property.
func Str(name, value string) Prop {
	return Prop{Name: name, Value: com.Value{Tag: com.TagString, Str: value}}
}

// I8 defines a signed 8-bit property.
func I8(name string, value int8) Prop {
	return Prop{Name: name, Value: com.Value{Tag: com.TagInt8, Int: int64(value)}}
}

// I16 defines a signed 16-bit property.
func I16(name string, value int16) Prop {
	return Prop{Name: name, Value: com.Value{Tag: com.TagInt16, Int: int64(value)}}
}

// I32 defines a signed 32-bit property.
func I32(name string, value int32) Prop {
	return Prop{Name: name, Value: com.Value{Tag: com.TagInt32, Int: int64(value)}}
}

// I64 defines a signed 64-bit property.
func I64(name string, value int64) Prop {
	return Prop{Name: name, Value: com.Value{Tag: com.TagInt64, Int: value}}
}

// U8 defines an unsigned 8-bit property.
func U8(name string, value uint8) Prop {
	return Prop{Name: name, Value: com.Value{Tag: com.TagUint8, Uint: uint64(value)}}
}

// U16 defines an unsigned 16-bit property.
func U16(name string, value uint16) Prop {
	return Prop{Name: name, Value: com.Value{Tag: com.TagUint16, Uint: uint64(value)}}
}

// U32 defines an unsigned 32-bit property.
func U32(name string, value uint32) Prop {
	return Prop{Name: name, Value: com.Value{Tag: com.TagUint32, Uint: uint64(value)}}
}

// U64 defines an unsigned 64-bit property.
func U64(name string, value uint64) Prop {
	return Prop{Name: name, Value: com.Value{Tag: com.TagUint64, Uint: value}}
}

// R32 defines a 32-bit float property.
func R32(name string, value float32) Prop {
	return Prop{Name: name, Value: com.Value{Tag: com.TagReal32, Float: float64(value)}}
}

// R64 defines a 64-bit float property.
func R64(name string, value float64) Prop {
	return Prop{Name: name, Value: com.Value{Tag: com.TagReal64, Float: value}}
}

// Boolean defines a boolean property.
func Boolean(name string, value bool) Prop {
	return Prop{Name: name, Value: com.Value{Tag: com.TagBool, Bool: value}}
}

// Null defines a property present with the Null tag.
func Null(name string) Prop {
	return Prop{Name: name, Value: com.Value{Tag: com.TagNull}}
}

// Array defines a property carrying an array-flagged tag. The fake
// does not model elements; the tag is what the accessor layer reacts
// to.
func Array(name string, element com.Tag) Prop {
	return Prop{Name: name, Value: com.Value{Tag: com.TagArray | element}}
}

// Vector defines a property carrying a vector-flagged tag.
func Vector(name string, element com.Tag) Prop {
	return Prop{Name: name, Value: com.Value{Tag: com.TagVector | element}}
}
