package nestedjson

import "encoding/json"

// Slice is a sequence whose wire form is an array of strings, each holding
// one element's independently encoded JSON document:
//
//	["{\"foo\":\"bar\"}", "{}", "null"]
//
// This differs from Nested[[]T], which wraps the whole array in one string.
type Slice[T any] []T

var (
	_ json.Marshaler   = Slice[struct{}](nil)
	_ json.Unmarshaler = (*Slice[struct{}])(nil)
)

func (s Slice[T]) MarshalJSON() ([]byte, error) {
	return EncodeSlice([]T(s))
}

func (s *Slice[T]) UnmarshalJSON(b []byte) error {
	vs, err := DecodeSlice[T](b)
	if err != nil {
		return err
	}
	*s = vs
	return nil
}
