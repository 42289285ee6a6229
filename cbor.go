package nestedjson

import "github.com/fxamacker/cbor/v2"

// CBOR hooks: the outer document is CBOR and the nested field is a CBOR text
// string holding a JSON document. The inner pass is the same as for JSON.

var (
	_ cbor.Marshaler   = Nested[struct{}]{}
	_ cbor.Unmarshaler = (*Nested[struct{}])(nil)
	_ cbor.Marshaler   = Slice[struct{}](nil)
	_ cbor.Unmarshaler = (*Slice[struct{}])(nil)
)

func (n Nested[T]) MarshalCBOR() ([]byte, error) {
	s, err := Adapter[T]{}.EncodeString(n.v)
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(s)
}

func (n *Nested[T]) UnmarshalCBOR(b []byte) error {
	s, err := cborText(b, "string")
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

func (s Slice[T]) MarshalCBOR() ([]byte, error) {
	ss, err := Adapter[T]{}.EncodeStrings(s)
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(ss)
}

func (s *Slice[T]) UnmarshalCBOR(b []byte) error {
	if k := cborKind(b); k != "array" {
		return &ShapeError{Want: "array of strings", Got: k}
	}
	var elems []cbor.RawMessage
	if err := cbor.Unmarshal(b, &elems); err != nil {
		return err
	}
	ss := make([]string, len(elems))
	for i, el := range elems {
		str, err := cborText(el, "array of strings")
		if err != nil {
			return err
		}
		ss[i] = str
	}
	vs, err := Adapter[T]{}.DecodeStrings(ss)
	if err != nil {
		return err
	}
	*s = vs
	return nil
}

func cborText(b []byte, want string) (string, error) {
	if k := cborKind(b); k != "text string" {
		if want != "string" {
			k = "array containing " + k
		}
		return "", &ShapeError{Want: want, Got: k}
	}
	var s string
	if err := cbor.Unmarshal(b, &s); err != nil {
		return "", err
	}
	return s, nil
}

// cborKind names the CBOR data item that starts b (RFC 8949 major types).
func cborKind(b []byte) string {
	if len(b) == 0 {
		return "empty input"
	}
	switch b[0] >> 5 {
	case 0, 1:
		return "integer"
	case 2:
		return "byte string"
	case 3:
		return "text string"
	case 4:
		return "array"
	case 5:
		return "map"
	case 6:
		return "tag"
	}
	switch b[0] {
	case 0xf4, 0xf5:
		return "boolean"
	case 0xf6:
		return "null"
	case 0xf7:
		return "undefined"
	default:
		return "float"
	}
}
