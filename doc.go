// Package nestedjson adapts fields whose wire form is a JSON document
// encoded as a string ("double-encoded JSON") so that application code can
// treat them as ordinary nested values.
//
//	{"foo": "{\"baz\":123}"}   <->   Foo{Baz: 123}
//
// Components:
//   - Nested[T]: a field whose value is one string holding T's document.
//   - Slice[T]: a field whose value is an array of strings, each holding one
//     element's document independently.
//   - Adapter[T]: the decode/encode pair behind both, with a pluggable inner
//     codec (see package codec).
//
// Nested and Slice implement the field hooks of encoding/json,
// fxamacker/cbor and vmihailenco/msgpack, so the outer document may be any of
// the three; the inner document is always JSON.
//
// Null convention: when T is nil-able (pointer, interface, map, slice) the
// string content "null" decodes to the zero value. For other types an inner
// null fails with ErrNull unless *T implements json.Unmarshaler. An outer JSON
// null is never special-cased and fails with a *ShapeError.
//
// Errors: *ShapeError for a wrongly shaped outer token, *DecodeError and
// *EncodeError for inner failures, *ElementError for the failing element of a
// sequence. Nothing is retried or logged here.
package nestedjson
