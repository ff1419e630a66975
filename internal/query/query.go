// Package query renders and merges the dump tool's filter documents.
package query

import (
	"errors"
	"fmt"
	"strings"

	"rangedump/internal/daterange"
)

// ErrMalformedFilter reports a filter that is not a single brace-delimited
// document.
var ErrMalformedFilter = errors.New("filter must be a single { ... } document")

// RangeFilter renders the window as the tool's date-range filter: a
// greater-or-equal condition on the start and a less-than condition on the
// end, each as epoch milliseconds of the locally interpreted instant.
func RangeFilter(field string, r daterange.Range) string {
	return fmt.Sprintf(
		`{ "%s" : { "$gte" : { "$date" : %d }, "$lt" : { "$date" : %d } } }`,
		field, r.Start.UnixMilli(), r.End.UnixMilli(),
	)
}

// Merge joins two brace-delimited filter documents into one by comma-joining
// their top-level bodies. Each input must be exactly one outer brace pair,
// surrounding whitespace aside.
func Merge(a, b string) (string, error) {
	bodyA, err := body(a)
	if err != nil {
		return "", err
	}

	bodyB, err := body(b)
	if err != nil {
		return "", err
	}

	return "{ " + bodyA + ", " + bodyB + " }", nil
}

// body extracts the trimmed interior of one outer brace pair. A depth scan
// rather than a greedy regexp, so nested documents in the body stay intact.
func body(filter string) (string, error) {
	s := strings.TrimSpace(filter)
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return "", fmt.Errorf("%w: %s", ErrMalformedFilter, filter)
	}

	depth := 0

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--

			// The outer brace must close exactly at the last byte.
			if depth == 0 && i != len(s)-1 {
				return "", fmt.Errorf("%w: %s", ErrMalformedFilter, filter)
			}

			if depth < 0 {
				return "", fmt.Errorf("%w: %s", ErrMalformedFilter, filter)
			}
		}
	}

	if depth != 0 {
		return "", fmt.Errorf("%w: %s", ErrMalformedFilter, filter)
	}

	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return "", fmt.Errorf("%w: %s", ErrMalformedFilter, filter)
	}

	return inner, nil
}
