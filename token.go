package nestedjson

import (
	"bytes"
	"encoding/json"
)

// jsonKind names the JSON value kind that starts tok, for shape errors.
func jsonKind(tok []byte) string {
	tok = bytes.TrimLeft(tok, " \t\r\n")
	if len(tok) == 0 {
		return "empty input"
	}
	switch c := tok[0]; {
	case c == '"':
		return "string"
	case c == '{':
		return "object"
	case c == '[':
		return "array"
	case c == 'n':
		return "null"
	case c == 't' || c == 'f':
		return "boolean"
	case c == '-' || (c >= '0' && c <= '9'):
		return "number"
	default:
		return "invalid token"
	}
}

// unquote returns the unescaped content of a JSON string token.
func unquote(tok []byte) (string, error) {
	if k := jsonKind(tok); k != "string" {
		return "", &ShapeError{Want: "string", Got: k}
	}
	var s string
	if err := json.Unmarshal(tok, &s); err != nil {
		return "", err
	}
	return s, nil
}

// unquoteAll returns the unescaped contents of a JSON array of strings.
func unquoteAll(tok []byte) ([]string, error) {
	if k := jsonKind(tok); k != "array" {
		return nil, &ShapeError{Want: "array of strings", Got: k}
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(tok, &elems); err != nil {
		return nil, err
	}
	out := make([]string, len(elems))
	for i, el := range elems {
		if k := jsonKind(el); k != "string" {
			return nil, &ShapeError{Want: "array of strings", Got: "array containing " + k}
		}
		if err := json.Unmarshal(el, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}
