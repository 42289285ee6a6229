package codec

import "fmt"

// LimitCodec wraps another codec to bound the size of inner documents in
// both directions. A limit <= 0 disables the check for that direction.
//
// Typical use: nested fields arriving from an untrusted producer, where the
// outer document is small but a single string field can carry a very large
// inner document.
type LimitCodec[V any] struct {
	// Inner is the underlying codec being wrapped. It must be set.
	Inner Codec[V]
	// MaxDecode is the maximum length in bytes of an inner document accepted
	// by Decode. Larger input fails without invoking Inner.
	MaxDecode int
	// MaxEncode is the maximum length in bytes of a document produced by Encode.
	MaxEncode int
}

func (c LimitCodec[V]) Encode(v V) ([]byte, error) {
	b, err := c.Inner.Encode(v)
	if err != nil {
		return nil, err
	}
	if c.MaxEncode > 0 && len(b) > c.MaxEncode {
		return nil, fmt.Errorf("inner document too large: %d > %d", len(b), c.MaxEncode)
	}
	return b, nil
}

func (c LimitCodec[V]) Decode(b []byte) (V, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		var zero V
		return zero, fmt.Errorf("inner document too large: %d > %d", len(b), c.MaxDecode)
	}
	return c.Inner.Decode(b)
}
