package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind is the tag of a Value.
type Kind int

const (
	// KindNull represents a missing value
	KindNull Kind = iota
	// KindInt represents a 64-bit signed integer
	KindInt
	// KindFloat represents a 64-bit float
	KindFloat
	// KindText represents a string
	KindText
	// KindBool represents a boolean
	KindBool
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// NullDisplay is the display form of a null value.
const NullDisplay = "NULL"

// displayTimeLayout is used when an engine hands back a time.Time.
const displayTimeLayout = "2006-01-02 15:04:05"

// Value is a dynamically typed scalar cell. The zero Value is null.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
}

// Null returns a null Value.
func Null() Value {
	return Value{}
}

// Int returns an integer Value.
func Int(v int64) Value {
	return Value{kind: KindInt, i: v}
}

// Float returns a float Value.
func Float(v float64) Value {
	return Value{kind: KindFloat, f: v}
}

// Text returns a text Value.
func Text(v string) Value {
	return Value{kind: KindText, s: v}
}

// Bool returns a boolean Value.
func Bool(v bool) Value {
	return Value{kind: KindBool, b: v}
}

// Kind returns the tag of the value
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is null
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsInt returns the integer payload and whether the value is an integer
func (v Value) AsInt() (int64, bool) {
	return v.i, v.kind == KindInt
}

// AsFloat returns the float payload and whether the value is a float
func (v Value) AsFloat() (float64, bool) {
	return v.f, v.kind == KindFloat
}

// AsText returns the text payload and whether the value is text
func (v Value) AsText() (string, bool) {
	return v.s, v.kind == KindText
}

// AsBool returns the boolean payload and whether the value is a boolean
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// Any returns the payload as a database/sql compatible argument (nil for null).
func (v Value) Any() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindText:
		return v.s
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f || (math.IsNaN(v.f) && math.IsNaN(other.f))
	case KindText:
		return v.s == other.s
	case KindBool:
		return v.b == other.b
	default:
		return true
	}
}

// String returns the display form used by result grids.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return formatFloat(v.f)
	case KindText:
		return v.s
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return NullDisplay
	}
}

// formatFloat keeps a trailing ".0" on integral values so 3.0 does not read as an integer
func formatFloat(f float64) string {
	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		format = 'g'
	}
	s := strconv.FormatFloat(f, format, -1, 64)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return s
	}
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// FromAny normalizes a value scanned from a database/sql driver into a Value.
func FromAny(src any) Value {
	switch typed := src.(type) {
	case nil:
		return Null()
	case int64:
		return Int(typed)
	case int32:
		return Int(int64(typed))
	case int16:
		return Int(int64(typed))
	case int8:
		return Int(int64(typed))
	case int:
		return Int(int64(typed))
	case uint8:
		return Int(int64(typed))
	case uint16:
		return Int(int64(typed))
	case uint32:
		return Int(int64(typed))
	case uint64:
		if typed > math.MaxInt64 {
			return Text(strconv.FormatUint(typed, 10))
		}
		return Int(int64(typed))
	case float64:
		return Float(typed)
	case float32:
		return Float(float64(typed))
	case bool:
		return Bool(typed)
	case string:
		return Text(typed)
	case []byte:
		return Text(string(typed))
	case time.Time:
		return Text(typed.Format(displayTimeLayout))
	case fmt.Stringer:
		return Text(typed.String())
	default:
		return Text(fmt.Sprint(typed))
	}
}
