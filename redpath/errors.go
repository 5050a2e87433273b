package redpath

import "github.com/pkg/errors"

// ErrMalformedPath is raised when a step is missing its '[' or ']'.
var ErrMalformedPath = errors.New("redpath: malformed step")

// ErrUnknownPredicate is raised when a step's bracketed predicate is
// anything other than "*". Richer predicates are a reserved extension
// point, not a grammar this compiler accepts.
var ErrUnknownPredicate = errors.New("redpath: unknown predicate")
