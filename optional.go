package nestedjson

import (
	"encoding/json"
	"reflect"
	"strings"
)

type nullPolicy uint8

const (
	// nullStructural hands an inner null to the codec; T defines its own null form.
	nullStructural nullPolicy = iota
	// nullAbsent maps the exact content "null" to the zero (nil) value.
	nullAbsent
	// nullReject fails on an inner null.
	nullReject
)

var unmarshalerType = reflect.TypeFor[json.Unmarshaler]()

// nullPolicyFor decides how an inner "null" is treated for T. Nil-able kinds
// are Go's optional types. Any other type must implement json.Unmarshaler to
// accept null; encoding/json would otherwise leave it at its zero value
// without reporting anything.
func nullPolicyFor[T any]() nullPolicy {
	t := reflect.TypeFor[T]()
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return nullAbsent
	}
	if t.Implements(unmarshalerType) || reflect.PointerTo(t).Implements(unmarshalerType) {
		return nullStructural
	}
	return nullReject
}

func isNullDocument(s string) bool {
	return strings.TrimSpace(s) == "null"
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
