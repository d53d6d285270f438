package link

import (
	"fmt"
	"reflect"
)

// ValueKind discriminates the three forms a query parameter value takes.
type ValueKind int

const (
	// KindNone is a parameter with no value; it renders as a bare "key=".
	KindNone ValueKind = iota

	// KindScalar is a single value; it renders as "key=value".
	KindScalar

	// KindList is a sequence of values; each element renders as a repeated
	// "key=value" pair. A nil element renders as a bare "key=" at that
	// position.
	KindList
)

// Value is the tagged union of query parameter values: none, a scalar, or
// a list of possibly-absent scalars.
type Value struct {
	kind   ValueKind
	scalar string
	list   []*string
}

// None returns the absent value.
func None() Value { return Value{kind: KindNone} }

// Scalar returns a single-string value.
func Scalar(s string) Value { return Value{kind: KindScalar, scalar: s} }

// Strings returns a list value with the given elements, all present.
func Strings(ss ...string) Value {
	list := make([]*string, len(ss))
	for i := range ss {
		s := ss[i]
		list[i] = &s
	}
	return Value{kind: KindList, list: list}
}

// List returns a list value; nil elements are absent.
func List(elems ...*string) Value {
	list := make([]*string, len(elems))
	copy(list, elems)
	return Value{kind: KindList, list: list}
}

// Kind returns the discriminator of the value.
func (v Value) Kind() ValueKind { return v.kind }

// Of converts an arbitrary template-supplied value into a Value:
// nil becomes None, strings stay as they are, slices and arrays become
// lists (nil elements stay absent), and anything else is converted with
// its default string form.
func Of(v any) Value {
	switch t := v.(type) {
	case nil:
		return None()
	case Value:
		return t
	case string:
		return Scalar(t)
	case []string:
		return Strings(t...)
	case []*string:
		return List(t...)
	case []any:
		list := make([]*string, len(t))
		for i, e := range t {
			if e == nil {
				continue
			}
			s := fmt.Sprint(e)
			list[i] = &s
		}
		return Value{kind: KindList, list: list}
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		list := make([]*string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			e := rv.Index(i)
			if isNilable(e.Kind()) && e.IsNil() {
				continue
			}
			s := fmt.Sprint(e.Interface())
			list[i] = &s
		}
		return Value{kind: KindList, list: list}
	}
	return Scalar(fmt.Sprint(v))
}

func isNilable(k reflect.Kind) bool {
	switch k {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return true
	}
	return false
}

// Param is one key/value entry of a link's query data. Repeated keys are
// legal; each occurrence is emitted in insertion order.
type Param struct {
	Key   string
	Value Value
}
