package helpers

import "reflect"

// MustString returns s, or panics with msg when s is empty. Constructors use it for required
// strings (base URLs, cookie names) so a bad wiring fails at startup instead of on first request.
func MustString(s string, msg string) string {
	if s == "" {
		panic(msg)
	}
	return s
}

// MustNotNil returns v, or panics with msg when v is nil. Typed nils (nil pointer, func, map,
// slice, chan, or an interface holding one) count as nil.
func MustNotNil[T any](v T, msg string) T {
	if isNilValue(v) {
		panic(msg)
	}
	return v
}

func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
