// Package redpath compiles a RedPath string into an ordered sequence of
// (node_name, predicate) steps.
package redpath

import (
	"strings"

	"github.com/pkg/errors"
)

// Step is one compiled RedPath segment.
type Step struct {
	NodeName  string
	Predicate Predicate
}

// ParseRedPath splits path on "/", skipping empty segments, and compiles
// each nonempty segment into a Step. It fails the whole path, not just the
// offending step, with ErrMalformedPath if a segment is missing its '['
// or ']', or ErrUnknownPredicate if a segment's bracketed expression isn't
// "*".
func ParseRedPath(path string) ([]Step, error) {
	var steps []Step
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		open := strings.IndexByte(seg, '[')
		close := strings.IndexByte(seg, ']')
		if open < 0 || close < 0 || close < open {
			return nil, errors.Wrapf(ErrMalformedPath, "step %q", seg)
		}
		pred, err := resolvePredicate(seg[open+1 : close])
		if err != nil {
			return nil, errors.Wrapf(err, "step %q", seg)
		}
		steps = append(steps, Step{NodeName: seg[:open], Predicate: pred})
	}
	return steps, nil
}

func resolvePredicate(expr string) (Predicate, error) {
	if expr == "*" {
		return Predicate{SelectAll: true}, nil
	}
	return Predicate{}, errors.Wrapf(ErrUnknownPredicate, "predicate %q", expr)
}
