package nestedjson

import (
	"encoding/json"
	"iter"

	"github.com/unkn0wn-root/nestedjson/codec"
)

// Adapter is the decode/encode pair for one nested field type.
// The zero value is ready to use and runs the inner pass with codec.JSON.
//
// Every call is an independent pass over its own buffer; an Adapter holds no
// state and is safe for concurrent use as long as its Codec is.
type Adapter[T any] struct {
	// Codec runs the inner document pass. nil => codec.JSON[T].
	Codec codec.Codec[T]
}

func (a Adapter[T]) codec() codec.Codec[T] {
	if a.Codec == nil {
		return codec.JSON[T]{}
	}
	return a.Codec
}

// DecodeString decodes the unescaped content of an outer string token as an
// independent document. For optional (nil-able) T the exact content "null"
// yields the zero value without invoking the codec.
func (a Adapter[T]) DecodeString(s string) (T, error) {
	var zero T
	switch nullPolicyFor[T]() {
	case nullAbsent:
		if s == "null" {
			return zero, nil
		}
	case nullReject:
		if isNullDocument(s) {
			return zero, &DecodeError{Type: typeName[T](), Err: ErrNull}
		}
	}
	v, err := a.codec().Decode([]byte(s))
	if err != nil {
		return zero, &DecodeError{Type: typeName[T](), Err: err}
	}
	return v, nil
}

// EncodeString encodes v as an independent document and returns its text,
// i.e. the content of the outer string token before escaping.
func (a Adapter[T]) EncodeString(v T) (string, error) {
	b, err := a.codec().Encode(v)
	if err != nil {
		return "", &EncodeError{Type: typeName[T](), Err: err}
	}
	return string(b), nil
}

// Decode decodes an outer JSON token, which must be a string.
func (a Adapter[T]) Decode(tok []byte) (T, error) {
	s, err := unquote(tok)
	if err != nil {
		var zero T
		return zero, err
	}
	return a.DecodeString(s)
}

// Encode returns the outer JSON string token carrying v's document.
func (a Adapter[T]) Encode(v T) ([]byte, error) {
	s, err := a.EncodeString(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

// DecodeStrings decodes every element independently. The first failure
// aborts the batch and is reported as an *ElementError.
func (a Adapter[T]) DecodeStrings(ss []string) ([]T, error) {
	out := make([]T, len(ss))
	for i, s := range ss {
		v, err := a.DecodeString(s)
		if err != nil {
			return nil, &ElementError{Index: i, Err: err}
		}
		out[i] = v
	}
	return out, nil
}

// EncodeStrings encodes every element independently, preserving order.
func (a Adapter[T]) EncodeStrings(vs []T) ([]string, error) {
	out := make([]string, 0, len(vs))
	for i, v := range vs {
		s, err := a.EncodeString(v)
		if err != nil {
			return nil, &ElementError{Index: i, Err: err}
		}
		out = append(out, s)
	}
	return out, nil
}

// DecodeSlice decodes an outer JSON array of strings, one document per element.
func (a Adapter[T]) DecodeSlice(tok []byte) ([]T, error) {
	ss, err := unquoteAll(tok)
	if err != nil {
		return nil, err
	}
	return a.DecodeStrings(ss)
}

// EncodeSlice returns an outer JSON array with one string per element.
// A nil slice encodes as [].
func (a Adapter[T]) EncodeSlice(vs []T) ([]byte, error) {
	ss, err := a.EncodeStrings(vs)
	if err != nil {
		return nil, err
	}
	return json.Marshal(ss)
}

// EncodeSeq is EncodeSlice over any iterator.
func (a Adapter[T]) EncodeSeq(seq iter.Seq[T]) ([]byte, error) {
	ss := []string{}
	i := 0
	for v := range seq {
		s, err := a.EncodeString(v)
		if err != nil {
			return nil, &ElementError{Index: i, Err: err}
		}
		ss = append(ss, s)
		i++
	}
	return json.Marshal(ss)
}

// Decode decodes an outer JSON string token into T using codec.JSON.
func Decode[T any](tok []byte) (T, error) { return Adapter[T]{}.Decode(tok) }

// Encode encodes v into an outer JSON string token using codec.JSON.
func Encode[T any](v T) ([]byte, error) { return Adapter[T]{}.Encode(v) }

// DecodeSlice decodes an outer JSON array of strings using codec.JSON.
func DecodeSlice[T any](tok []byte) ([]T, error) { return Adapter[T]{}.DecodeSlice(tok) }

// EncodeSlice encodes vs as an outer JSON array of strings using codec.JSON.
func EncodeSlice[T any](vs []T) ([]byte, error) { return Adapter[T]{}.EncodeSlice(vs) }

// EncodeSeq encodes seq as an outer JSON array of strings using codec.JSON.
func EncodeSeq[T any](seq iter.Seq[T]) ([]byte, error) { return Adapter[T]{}.EncodeSeq(seq) }
