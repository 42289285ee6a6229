package nestedjson

import (
	"errors"
	"reflect"
	"testing"

	"github.com/fxamacker/cbor/v2"
)

func TestCBOROuterDocument(t *testing.T) {
	in := nestedDoc{
		Full:  From(item{Foo: strp("bar")}),
		Empty: From(item{}),
		Null:  From[*item](nil),
		Array: Slice[*item]{{Foo: strp("bar")}, {}, nil},
	}
	b, err := cbor.Marshal(in)
	if err != nil {
		t.Fatalf("cbor.Marshal: %v", err)
	}

	// wire form: text strings holding JSON
	var wire map[string]any
	if err := cbor.Unmarshal(b, &wire); err != nil {
		t.Fatalf("cbor.Unmarshal wire: %v", err)
	}
	if got := wire["full"]; got != `{"foo":"bar"}` {
		t.Fatalf("full on the wire = %#v", got)
	}
	if got := wire["null"]; got != "null" {
		t.Fatalf("null on the wire = %#v", got)
	}
	if got, want := wire["array"], []any{`{"foo":"bar"}`, "{}", "null"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("array on the wire = %#v", got)
	}

	var out nestedDoc
	if err := cbor.Unmarshal(b, &out); err != nil {
		t.Fatalf("cbor.Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip: got %+v want %+v", out, in)
	}
}

func TestCBORShapeMismatch(t *testing.T) {
	b, err := cbor.Marshal(map[string]any{"full": 5})
	if err != nil {
		t.Fatal(err)
	}
	var out nestedDoc
	err = cbor.Unmarshal(b, &out)
	var se *ShapeError
	if !errors.As(err, &se) || se.Got != "integer" {
		t.Fatalf("expected *ShapeError for integer, got %v", err)
	}

	b, err = cbor.Marshal(map[string]any{"array": []any{"{}", []byte("{}")}})
	if err != nil {
		t.Fatal(err)
	}
	err = cbor.Unmarshal(b, &out)
	if !errors.As(err, &se) || se.Got != "array containing byte string" {
		t.Fatalf("expected *ShapeError for byte string element, got %v", err)
	}
}

func TestCBORInnerFailure(t *testing.T) {
	b, err := cbor.Marshal(map[string]any{"full": "{oops"})
	if err != nil {
		t.Fatal(err)
	}
	var out nestedDoc
	err = cbor.Unmarshal(b, &out)
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
}

func TestCBORKind(t *testing.T) {
	cases := map[byte]string{
		0x01: "integer",
		0x20: "integer",
		0x40: "byte string",
		0x60: "text string",
		0x80: "array",
		0xa0: "map",
		0xc0: "tag",
		0xf4: "boolean",
		0xf6: "null",
		0xf7: "undefined",
		0xfb: "float",
	}
	for b, want := range cases {
		if got := cborKind([]byte{b}); got != want {
			t.Fatalf("cborKind(%#x) = %q want %q", b, got, want)
		}
	}
	if got := cborKind(nil); got != "empty input" {
		t.Fatalf("cborKind(nil) = %q", got)
	}
}
