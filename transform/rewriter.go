// Package transform rewrites nested fields of arbitrary JSON documents by
// path, without declaring Go types for them. It is the document-level
// counterpart of nestedjson.Nested and nestedjson.Slice, meant for logs and
// API payloads where some fields carry double-encoded JSON.
//
// Paths are dot-separated object keys or array indexes. "*" matches every
// key of an object or every element of an array. A trailing "[]" applies the
// sequence form to the selected array:
//
//	payload          "{\"a\":1}"           <-> {"a":1}
//	events.*.body    one nested field per array element
//	attachments[]    ["{}", "null"]         <-> [{}, null]
package transform

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/unkn0wn-root/nestedjson"
	"github.com/unkn0wn-root/nestedjson/codec"
)

// Mode selects the direction of a rule.
type Mode uint8

const (
	// Unnest replaces a string holding a JSON document with the document.
	Unnest Mode = iota + 1
	// Nest replaces a value with a string holding its JSON document.
	Nest
)

func (m Mode) String() string {
	switch m {
	case Unnest:
		return "unnest"
	case Nest:
		return "nest"
	default:
		return "mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseMode parses "unnest" or "nest".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "unnest":
		return Unnest, nil
	case "nest":
		return Nest, nil
	}
	return 0, fmt.Errorf("transform: unknown mode %q", s)
}

// Rule is one path to rewrite. Rules run in order, so a later rule may reach
// into a document unnested by an earlier one.
type Rule struct {
	Path string
	Mode Mode
}

// Options tune the rewriter. The zero value is valid.
type Options struct {
	Logger Logger // nil => NopLogger
	// MaxInnerBytes bounds every inner document read or written; 0 => unlimited.
	MaxInnerBytes int
}

type compiledRule struct {
	Rule
	segs []string
	seq  bool
}

// Rewriter applies a fixed rule set. Safe for concurrent use.
type Rewriter struct {
	rules  []compiledRule
	log    Logger
	unnest nestedjson.Adapter[json.RawMessage]
	nest   nestedjson.Adapter[any]
}

// New validates rules and builds a Rewriter.
func New(rules []Rule, opts Options) (*Rewriter, error) {
	if len(rules) == 0 {
		return nil, errors.New("transform: at least one rule is required")
	}
	r := &Rewriter{
		log: coalesce[Logger](opts.Logger, NopLogger{}),
		unnest: nestedjson.Adapter[json.RawMessage]{
			Codec: codec.LimitCodec[json.RawMessage]{Inner: codec.Raw{}, MaxDecode: opts.MaxInnerBytes},
		},
		nest: nestedjson.Adapter[any]{
			Codec: codec.LimitCodec[any]{Inner: codec.JSON[any]{}, MaxEncode: opts.MaxInnerBytes},
		},
	}
	for _, rule := range rules {
		if rule.Mode != Unnest && rule.Mode != Nest {
			return nil, fmt.Errorf("transform: rule %q: invalid mode %v", rule.Path, rule.Mode)
		}
		segs, seq, err := parsePath(rule.Path)
		if err != nil {
			return nil, err
		}
		r.rules = append(r.rules, compiledRule{Rule: rule, segs: segs, seq: seq})
	}
	return r, nil
}

// Apply rewrites one document. Paths that do not exist in doc are skipped.
// The output is compact JSON with object keys sorted.
func (r *Rewriter) Apply(doc []byte) ([]byte, error) {
	root, err := parseTree(doc)
	if err != nil {
		return nil, err
	}
	for _, rule := range r.rules {
		if root, err = r.walk(root, rule.segs, "", &rule); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(root); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (r *Rewriter) walk(v any, segs []string, at string, rule *compiledRule) (any, error) {
	if len(segs) == 0 {
		nv, err := r.rewrite(v, rule)
		if err != nil {
			var de *nestedjson.DecodeError
			if errors.As(err, &de) && de.Field == "" {
				de.Field = at
			}
			return nil, &PathError{Path: at, Err: err}
		}
		r.log.Debug("field rewritten", Fields{"path": at, "mode": rule.Mode.String(), "seq": rule.seq})
		return nv, nil
	}

	seg, rest := segs[0], segs[1:]
	switch node := v.(type) {
	case map[string]any:
		if seg == wildcard {
			keys := make([]string, 0, len(node))
			for k := range node {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				nv, err := r.walk(node[k], rest, join(at, k), rule)
				if err != nil {
					return nil, err
				}
				node[k] = nv
			}
			return node, nil
		}
		child, ok := node[seg]
		if !ok {
			r.miss(join(at, seg), rule)
			return node, nil
		}
		nv, err := r.walk(child, rest, join(at, seg), rule)
		if err != nil {
			return nil, err
		}
		node[seg] = nv
		return node, nil

	case []any:
		if seg == wildcard {
			for i := range node {
				nv, err := r.walk(node[i], rest, join(at, strconv.Itoa(i)), rule)
				if err != nil {
					return nil, err
				}
				node[i] = nv
			}
			return node, nil
		}
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= len(node) {
			r.miss(join(at, seg), rule)
			return node, nil
		}
		nv, err := r.walk(node[i], rest, join(at, seg), rule)
		if err != nil {
			return nil, err
		}
		node[i] = nv
		return node, nil
	}

	r.miss(join(at, seg), rule)
	return v, nil
}

func (r *Rewriter) miss(at string, rule *compiledRule) {
	r.log.Debug("path not found", Fields{"path": at, "rule": rule.Path})
}

func (r *Rewriter) rewrite(v any, rule *compiledRule) (any, error) {
	switch {
	case rule.Mode == Unnest && !rule.seq:
		s, ok := v.(string)
		if !ok {
			return nil, &nestedjson.ShapeError{Want: "string", Got: kindOf(v)}
		}
		raw, err := r.unnest.DecodeString(s)
		if err != nil {
			return nil, err
		}
		return fromRaw(raw)

	case rule.Mode == Unnest:
		arr, ok := v.([]any)
		if !ok {
			return nil, &nestedjson.ShapeError{Want: "array of strings", Got: kindOf(v)}
		}
		ss := make([]string, len(arr))
		for i, el := range arr {
			s, ok := el.(string)
			if !ok {
				return nil, &nestedjson.ShapeError{Want: "array of strings", Got: "array containing " + kindOf(el)}
			}
			ss[i] = s
		}
		raws, err := r.unnest.DecodeStrings(ss)
		if err != nil {
			return nil, err
		}
		out := make([]any, len(raws))
		for i, raw := range raws {
			if out[i], err = fromRaw(raw); err != nil {
				return nil, &nestedjson.ElementError{Index: i, Err: err}
			}
		}
		return out, nil

	case !rule.seq:
		return r.nest.EncodeString(v)

	default:
		arr, ok := v.([]any)
		if !ok {
			return nil, &nestedjson.ShapeError{Want: "array", Got: kindOf(v)}
		}
		ss, err := r.nest.EncodeStrings(arr)
		if err != nil {
			return nil, err
		}
		out := make([]any, len(ss))
		for i, s := range ss {
			out[i] = s
		}
		return out, nil
	}
}

// parseTree decodes exactly one JSON value, keeping numbers as json.Number.
func parseTree(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("transform: parse document: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("transform: parse document: trailing content after top-level value")
	}
	return v, nil
}

func fromRaw(raw json.RawMessage) (any, error) {
	if raw == nil {
		return nil, nil
	}
	return parseTree(raw)
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
