package netex

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStructure marks a document whose structure or references are
// inconsistent. Every *ExtractionError matches it with errors.Is.
var ErrStructure = errors.New("netex: inconsistent document")

// ExtractionError describes why a single document could not be turned into
// chains. Path is the element path the problem was found at, ID the
// offending identifier when there is one.
type ExtractionError struct {
	Path   []string
	ID     string
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	var b strings.Builder
	b.WriteString("netex: ")
	b.WriteString(e.Reason)
	if e.ID != "" {
		fmt.Fprintf(&b, " (id %q)", e.ID)
	}
	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "/"))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ExtractionError) Is(target error) bool {
	return target == ErrStructure
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

func structureError(path []string, id, reason string, err error) *ExtractionError {
	var p []string
	if len(path) > 0 {
		p = append([]string(nil), path...)
	}
	return &ExtractionError{Path: p, ID: id, Reason: reason, Err: err}
}
