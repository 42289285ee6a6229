package nestedjson

import "encoding/json"

// Nested holds a value of T whose wire form is a string containing T's
// JSON document. Use it as a struct field type:
//
//	type Event struct {
//	    Payload nestedjson.Nested[Payload]  `json:"payload"`
//	    Extra   nestedjson.Nested[*Payload] `json:"extra"` // "null" => nil
//	}
//
// A missing field leaves the zero value; an outer JSON null is an error.
type Nested[T any] struct{ v T }

var (
	_ json.Marshaler   = Nested[struct{}]{}
	_ json.Unmarshaler = (*Nested[struct{}])(nil)
)

// From wraps v.
func From[T any](v T) Nested[T] { return Nested[T]{v: v} }

// Into returns the wrapped value.
func (n Nested[T]) Into() T { return n.v }

// Get returns a pointer to the wrapped value.
func (n *Nested[T]) Get() *T { return &n.v }

// Set replaces the wrapped value.
func (n *Nested[T]) Set(v T) { n.v = v }

func (n Nested[T]) MarshalJSON() ([]byte, error) {
	return Encode(n.v)
}

func (n *Nested[T]) UnmarshalJSON(b []byte) error {
	v, err := Decode[T](b)
	if err != nil {
		return err
	}
	n.v = v
	return nil
}
