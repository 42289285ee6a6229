package codec

import (
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// ProtoJSON encodes protobuf messages using the canonical proto3 JSON
// mapping. Use it when the inner document of a nested field is a message
// produced by another protobuf-speaking service.
// The zero value is NOT ready to use. Construct with NewProtoJSON.
type ProtoJSON[T proto.Message] struct {
	new func() T // constructor for a concrete message (e.g., func() *mypb.User { return &mypb.User{} })
	mo  protojson.MarshalOptions
	uo  protojson.UnmarshalOptions
}

// NewProtoJSON constructs a ProtoJSON codec. When discardUnknown is true,
// unknown fields in the inner document are ignored instead of failing the decode.
func NewProtoJSON[T proto.Message](ctor func() T, discardUnknown bool) ProtoJSON[T] {
	return ProtoJSON[T]{
		new: ctor,
		uo:  protojson.UnmarshalOptions{DiscardUnknown: discardUnknown},
	}
}

func (c ProtoJSON[T]) Encode(v T) ([]byte, error) {
	return c.mo.Marshal(v)
}

func (c ProtoJSON[T]) Decode(b []byte) (T, error) {
	m := c.new()
	err := c.uo.Unmarshal(b, m)
	return m, err
}
