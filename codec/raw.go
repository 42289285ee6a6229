package codec

import (
	"bytes"
	"encoding/json"
	"errors"
)

var ErrInvalidDocument = errors.New("codec: invalid JSON document")

// Raw is a pass-through codec for json.RawMessage. Documents are validated
// and compacted but otherwise kept verbatim: key order and number literals
// survive, which a round trip through map[string]any would not guarantee.
type Raw struct{}

var _ Codec[json.RawMessage] = Raw{}

func (Raw) Encode(m json.RawMessage) ([]byte, error) {
	if len(m) == 0 {
		return []byte("null"), nil
	}
	return compact(m)
}

func (Raw) Decode(b []byte) (json.RawMessage, error) {
	return compact(b)
}

func compact(b []byte) ([]byte, error) {
	if !json.Valid(b) {
		return nil, ErrInvalidDocument
	}
	var buf bytes.Buffer
	buf.Grow(len(b))
	if err := json.Compact(&buf, b); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
