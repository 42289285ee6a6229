package codec

import "encoding/json"

// JSON is the default inner codec, backed by encoding/json.
// The zero value is ready to use.
//
// Decode fails on trailing content after the first value. Encode fails for
// values JSON cannot represent (NaN, ±Inf, channels, funcs).
type JSON[V any] struct{}

var _ Codec[struct{}] = JSON[struct{}]{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}
