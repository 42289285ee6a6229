package nestedjson

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

type msgpackDoc struct {
	Full  Nested[item]  `msgpack:"full"`
	Null  Nested[*item] `msgpack:"null"`
	Array Slice[*item]  `msgpack:"array"`
}

func TestMsgpackOuterDocument(t *testing.T) {
	in := msgpackDoc{
		Full:  From(item{Foo: strp("bar")}),
		Null:  From[*item](nil),
		Array: Slice[*item]{{Foo: strp("bar")}, {}, nil},
	}
	b, err := msgpack.Marshal(in)
	if err != nil {
		t.Fatalf("msgpack.Marshal: %v", err)
	}

	var wire map[string]any
	if err := msgpack.Unmarshal(b, &wire); err != nil {
		t.Fatalf("msgpack.Unmarshal wire: %v", err)
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

	var out msgpackDoc
	if err := msgpack.Unmarshal(b, &out); err != nil {
		t.Fatalf("msgpack.Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip: got %+v want %+v", out, in)
	}
}

func TestMsgpackShapeMismatch(t *testing.T) {
	b, err := msgpack.Marshal(map[string]any{"full": 5})
	if err != nil {
		t.Fatal(err)
	}
	var out msgpackDoc
	err = msgpack.Unmarshal(b, &out)
	var se *ShapeError
	if !errors.As(err, &se) || se.Got != "number" {
		t.Fatalf("expected *ShapeError for number, got %v", err)
	}

	b, err = msgpack.Marshal(map[string]any{"array": []any{"{}", true}})
	if err != nil {
		t.Fatal(err)
	}
	err = msgpack.Unmarshal(b, &out)
	if !errors.As(err, &se) || se.Got != "array containing boolean" {
		t.Fatalf("expected *ShapeError for boolean element, got %v", err)
	}
}

func TestMsgpackElementFailure(t *testing.T) {
	b, err := msgpack.Marshal(map[string]any{"array": []string{"{}", "[1]"}})
	if err != nil {
		t.Fatal(err)
	}
	var out msgpackDoc
	err = msgpack.Unmarshal(b, &out)
	var ee *ElementError
	if !errors.As(err, &ee) || ee.Index != 1 {
		t.Fatalf("expected *ElementError at 1, got %v", err)
	}
}
