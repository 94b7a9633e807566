package wbem

import (
	"errors"
	"testing"

	"github.com/coreidcc/go-wbemcore/com"
)

func TestVariantInt(t *testing.T) {
	tests := []struct {
		name    string
		value   com.Value
		want    int
		wantErr bool
	}{
		{name: "int8", value: com.Value{Tag: com.TagInt8, Int: -5}, want: -5},
		{name: "int16", value: com.Value{Tag: com.TagInt16, Int: -300}, want: -300},
		{name: "int32", value: com.Value{Tag: com.TagInt32, Int: 70000}, want: 70000},
		{name: "uint8", value: com.Value{Tag: com.TagUint8, Uint: 200}, want: 200},
		{name: "uint16", value: com.Value{Tag: com.TagUint16, Uint: 40000}, want: 40000},
		{name: "uint32", value: com.Value{Tag: com.TagUint32, Uint: 3000000000}, want: 3000000000},
		{name: "int64 rejected", value: com.Value{Tag: com.TagInt64, Int: 1}, wantErr: true},
		{name: "string rejected", value: com.Value{Tag: com.TagString, Str: "1"}, wantErr: true},
		{name: "bool rejected", value: com.Value{Tag: com.TagBool, Bool: true}, wantErr: true},
		{name: "null rejected", value: com.Value{Tag: com.TagNull}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVariant(tt.value)
			defer v.Close()

			got, err := v.Int()
			if tt.wantErr {
				assertTypeMismatch(t, err, "int", tt.value.Tag)
				return
			}
			if err != nil {
				t.Fatalf("Int failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Int = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestVariantInt64(t *testing.T) {
	tests := []struct {
		name    string
		value   com.Value
		want    int64
		wantErr bool
	}{
		{name: "int8", value: com.Value{Tag: com.TagInt8, Int: -1}, want: -1},
		{name: "int16", value: com.Value{Tag: com.TagInt16, Int: 1234}, want: 1234},
		{name: "int32", value: com.Value{Tag: com.TagInt32, Int: -70000}, want: -70000},
		{name: "int64", value: com.Value{Tag: com.TagInt64, Int: 1 << 40}, want: 1 << 40},
		{name: "uint64 rejected", value: com.Value{Tag: com.TagUint64, Uint: 1}, wantErr: true},
		{name: "real64 rejected", value: com.Value{Tag: com.TagReal64, Float: 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVariant(tt.value)
			defer v.Close()

			got, err := v.Int64()
			if tt.wantErr {
				assertTypeMismatch(t, err, "int64", tt.value.Tag)
				return
			}
			if err != nil {
				t.Fatalf("Int64 failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Int64 = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestVariantUint(t *testing.T) {
	t.Run("uint32 accepts widths up to 32", func(t *testing.T) {
		for _, tag := range []com.Tag{com.TagUint8, com.TagUint16, com.TagUint32} {
			v := NewVariant(com.Value{Tag: tag, Uint: 42})
			got, err := v.Uint32()
			if err != nil {
				t.Fatalf("Uint32 from %s failed: %v", tag, err)
			}
			if got != 42 {
				t.Errorf("Uint32 from %s = %d, want 42", tag, got)
			}
			v.Close()
		}
	})

	t.Run("uint32 rejects uint64", func(t *testing.T) {
		v := NewVariant(com.Value{Tag: com.TagUint64, Uint: 1})
		defer v.Close()
		_, err := v.Uint32()
		assertTypeMismatch(t, err, "uint32", com.TagUint64)
	})

	t.Run("uint64 widens every unsigned width", func(t *testing.T) {
		for _, tag := range []com.Tag{com.TagUint8, com.TagUint16, com.TagUint32, com.TagUint64} {
			v := NewVariant(com.Value{Tag: tag, Uint: 99})
			got, err := v.Uint64()
			if err != nil {
				t.Fatalf("Uint64 from %s failed: %v", tag, err)
			}
			if got != 99 {
				t.Errorf("Uint64 from %s = %d, want 99", tag, got)
			}
			v.Close()
		}
	})

	t.Run("uint64 rejects signed", func(t *testing.T) {
		v := NewVariant(com.Value{Tag: com.TagInt32, Int: 1})
		defer v.Close()
		_, err := v.Uint64()
		assertTypeMismatch(t, err, "uint64", com.TagInt32)
	})
}

func TestVariantFloat(t *testing.T) {
	t.Run("float32 from real32", func(t *testing.T) {
		v := NewVariant(com.Value{Tag: com.TagReal32, Float: 1.5})
		defer v.Close()
		got, err := v.Float32()
		if err != nil {
			t.Fatalf("Float32 failed: %v", err)
		}
		if got != 1.5 {
			t.Errorf("Float32 = %v, want 1.5", got)
		}
	})

	t.Run("float32 rejects real64", func(t *testing.T) {
		v := NewVariant(com.Value{Tag: com.TagReal64, Float: 1.5})
		defer v.Close()
		_, err := v.Float32()
		assertTypeMismatch(t, err, "float32", com.TagReal64)
	})

	t.Run("float64 widens real32", func(t *testing.T) {
		v := NewVariant(com.Value{Tag: com.TagReal32, Float: 2.25})
		defer v.Close()
		got, err := v.Float64()
		if err != nil {
			t.Fatalf("Float64 failed: %v", err)
		}
		if got != 2.25 {
			t.Errorf("Float64 = %v, want 2.25", got)
		}
	})

	t.Run("float64 rejects int", func(t *testing.T) {
		v := NewVariant(com.Value{Tag: com.TagInt32, Int: 2})
		defer v.Close()
		_, err := v.Float64()
		assertTypeMismatch(t, err, "float64", com.TagInt32)
	})
}

func TestVariantBool(t *testing.T) {
	v := NewVariant(com.Value{Tag: com.TagBool, Bool: true})
	got, err := v.Bool()
	if err != nil {
		t.Fatalf("Bool failed: %v", err)
	}
	if !got {
		t.Errorf("Bool = false, want true")
	}
	v.Close()

	v = NewVariant(com.Value{Tag: com.TagInt32, Int: 1})
	defer v.Close()
	_, err = v.Bool()
	assertTypeMismatch(t, err, "bool", com.TagInt32)
}

func TestVariantString(t *testing.T) {
	tests := []struct {
		name    string
		value   com.Value
		want    string
		wantErr bool
	}{
		{name: "string", value: com.Value{Tag: com.TagString, Str: "hello"}, want: "hello"},
		{name: "int32", value: com.Value{Tag: com.TagInt32, Int: -7}, want: "-7"},
		{name: "int64", value: com.Value{Tag: com.TagInt64, Int: 1 << 40}, want: "1099511627776"},
		{name: "uint64", value: com.Value{Tag: com.TagUint64, Uint: 18446744073709551615}, want: "18446744073709551615"},
		{name: "real64", value: com.Value{Tag: com.TagReal64, Float: 2.5}, want: "2.5"},
		{name: "bool true", value: com.Value{Tag: com.TagBool, Bool: true}, want: "1"},
		{name: "bool false", value: com.Value{Tag: com.TagBool, Bool: false}, want: "0"},
		{name: "null renders empty", value: com.Value{Tag: com.TagNull}, want: ""},
		{name: "array placeholder", value: com.Value{Tag: com.TagArray | com.TagInt32}, want: "<array>"},
		{name: "vector placeholder", value: com.Value{Tag: com.TagVector | com.TagString}, want: "<vector>"},
		{name: "empty rejected", value: com.Value{Tag: com.TagEmpty}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVariant(tt.value)
			defer v.Close()

			got, err := v.String()
			if tt.wantErr {
				assertTypeMismatch(t, err, "string", tt.value.Tag)
				return
			}
			if err != nil {
				t.Fatalf("String failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("String = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVariantClose(t *testing.T) {
	cleared := 0
	value := com.Value{Tag: com.TagString, Str: "x"}.WithRelease(func() { cleared++ })

	v := NewVariant(value)
	if v.Type() != com.TagString {
		t.Fatalf("Type = %s, want String", v.Type())
	}

	v.Close()
	v.Close()
	if cleared != 1 {
		t.Errorf("release hook ran %d times, want exactly 1", cleared)
	}
	if v.Type() != com.TagEmpty {
		t.Errorf("Type after Close = %s, want Empty", v.Type())
	}
	if _, err := v.Int(); err == nil {
		t.Errorf("Int after Close succeeded, want type mismatch")
	}
}

func assertTypeMismatch(t *testing.T, err error, requested string, tag com.Tag) {
	t.Helper()
	var mismatch *TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("got %v, want TypeMismatchError", err)
	}
	if mismatch.Requested != requested {
		t.Errorf("Requested = %q, want %q", mismatch.Requested, requested)
	}
	if mismatch.Tag != tag {
		t.Errorf("Tag = %s, want %s", mismatch.Tag, tag)
	}
}

func BenchmarkVariantString(b *testing.B) {
	v := NewVariant(com.Value{Tag: com.TagUint64, Uint: 1234567890})
	defer v.Close()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := v.String(); err != nil {
			b.Fatal(err)
		}
	}
}
