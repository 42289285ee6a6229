package transform

import (
	"fmt"
	"strings"
)

const wildcard = "*"

// parsePath splits a rule path into object keys / array indexes. A trailing
// "[]" selects the sequence form. Keys containing '.' cannot be addressed.
func parsePath(p string) (segs []string, seq bool, err error) {
	p = strings.TrimSpace(p)
	if strings.HasSuffix(p, "[]") {
		seq = true
		p = strings.TrimSuffix(p, "[]")
	}
	if p == "" {
		return nil, false, fmt.Errorf("transform: empty path")
	}
	segs = strings.Split(p, ".")
	for _, s := range segs {
		if s == "" {
			return nil, false, fmt.Errorf("transform: path %q has an empty segment", p)
		}
		if strings.Contains(s, "[]") {
			return nil, false, fmt.Errorf("transform: path %q: [] is only allowed at the end", p)
		}
	}
	return segs, seq, nil
}

func join(at, seg string) string {
	if at == "" {
		return seg
	}
	return at + "." + seg
}
