package transform

import "fmt"

// PathError tags a rewrite failure with the concrete document path it
// happened at (wildcards resolved, e.g. "events.3.payload").
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("transform: %s: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }
