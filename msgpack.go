package nestedjson

import (
	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

// MessagePack hooks: the outer document is msgpack and the nested field is a
// msgpack str holding a JSON document.

var (
	_ msgpack.CustomEncoder = Nested[struct{}]{}
	_ msgpack.CustomDecoder = (*Nested[struct{}])(nil)
	_ msgpack.CustomEncoder = Slice[struct{}](nil)
	_ msgpack.CustomDecoder = (*Slice[struct{}])(nil)
)

func (n Nested[T]) EncodeMsgpack(enc *msgpack.Encoder) error {
	s, err := Adapter[T]{}.EncodeString(n.v)
	if err != nil {
		return err
	}
	return enc.EncodeString(s)
}

func (n *Nested[T]) DecodeMsgpack(dec *msgpack.Decoder) error {
	s, err := msgpackString(dec, "string")
	if err != nil {
		return err
	}
	v, err := Adapter[T]{}.DecodeString(s)
	if err != nil {
		return err
	}
	n.v = v
	return nil
}

func (s Slice[T]) EncodeMsgpack(enc *msgpack.Encoder) error {
	ss, err := Adapter[T]{}.EncodeStrings(s)
	if err != nil {
		return err
	}
	if err := enc.EncodeArrayLen(len(ss)); err != nil {
		return err
	}
	for _, str := range ss {
		if err := enc.EncodeString(str); err != nil {
			return err
		}
	}
	return nil
}

func (s *Slice[T]) DecodeMsgpack(dec *msgpack.Decoder) error {
	c, err := dec.PeekCode()
	if err != nil {
		return err
	}
	if k := msgpackKind(c); k != "array" {
		return &ShapeError{Want: "array of strings", Got: k}
	}
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	ss := make([]string, n)
	for i := range ss {
		if ss[i], err = msgpackString(dec, "array of strings"); err != nil {
			return err
		}
	}
	vs, err := Adapter[T]{}.DecodeStrings(ss)
	if err != nil {
		return err
	}
	*s = vs
	return nil
}

func msgpackString(dec *msgpack.Decoder, want string) (string, error) {
	c, err := dec.PeekCode()
	if err != nil {
		return "", err
	}
	if k := msgpackKind(c); k != "string" {
		if want != "string" {
			k = "array containing " + k
		}
		return "", &ShapeError{Want: want, Got: k}
	}
	return dec.DecodeString()
}

func msgpackKind(c byte) string {
	switch {
	case msgpcode.IsFixedString(c), c == msgpcode.Str8, c == msgpcode.Str16, c == msgpcode.Str32:
		return "string"
	case msgpcode.IsFixedArray(c), c == msgpcode.Array16, c == msgpcode.Array32:
		return "array"
	case msgpcode.IsFixedMap(c), c == msgpcode.Map16, c == msgpcode.Map32:
		return "map"
	case c == msgpcode.Nil:
		return "null"
	case c == msgpcode.True, c == msgpcode.False:
		return "boolean"
	case c == msgpcode.Bin8, c == msgpcode.Bin16, c == msgpcode.Bin32:
		return "binary"
	case msgpcode.IsFixedNum(c),
		c == msgpcode.Float, c == msgpcode.Double,
		c == msgpcode.Uint8, c == msgpcode.Uint16, c == msgpcode.Uint32, c == msgpcode.Uint64,
		c == msgpcode.Int8, c == msgpcode.Int16, c == msgpcode.Int32, c == msgpcode.Int64:
		return "number"
	default:
		return "extension"
	}
}
