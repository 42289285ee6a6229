// Package codec holds the document codecs used for the inner pass of a
// nested field: the bytes they produce are what ends up inside the outer
// string token, and the bytes they consume are that token's unescaped
// content.
package codec

// Codec encodes/decodes values V to and from one complete document.
// Decode must reject input that is not exactly one document (partial
// input or trailing content).
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
