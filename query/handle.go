package query

import (
	"context"

	"github.com/brendoncarroll/stdctx/logctx"

	"github.com/openredfish/dellicius/redfish"
	"github.com/openredfish/dellicius/redpath"
)

// FilterResult is the outcome of applying a Handle's current predicate to a
// variant.
type FilterResult int

const (
	Continue FilterResult = iota
	EndByPredicate
	EndOfRedpath
)

// Handle is the Subquery Handle (C6): a mutable cursor over one subquery's
// compiled steps. It is kept small and value-typed (a borrowed reference to
// the immutable subquery, a shared immutable step slice, and a cursor) so
// that fan-out over collection members can clone it cheaply by just copying
// the struct. Filter returns the advanced copy rather than mutating in
// place, for the same reason.
type Handle struct {
	subquery *Subquery
	steps    []redpath.Step
	cursor   int
	valid    bool
}

// newHandle compiles sq's RedPath. A compile failure or a RedPath that
// compiles to zero steps yields an invalid handle, which the caller must
// discard rather than traverse.
func newHandle(ctx context.Context, sq *Subquery) Handle {
	steps, err := redpath.ParseRedPath(sq.RedPath)
	if err != nil {
		logctx.Infof(ctx, "discarding subquery %q: %v", sq.SubqueryID, err)
		return Handle{subquery: sq, valid: false}
	}
	if len(steps) == 0 {
		logctx.Infof(ctx, "discarding subquery %q: redpath compiles to zero steps", sq.SubqueryID)
		return Handle{subquery: sq, valid: false}
	}
	return Handle{subquery: sq, steps: steps, cursor: 0, valid: true}
}

// NextNode returns the node name the handle's current step expects, or ""
// and false if the handle is invalid or has no current step.
func (h Handle) NextNode() (string, bool) {
	if !h.valid || h.cursor < 0 || h.cursor >= len(h.steps) {
		return "", false
	}
	return h.steps[h.cursor].NodeName, true
}

// Filter evaluates the current step's predicate against v. On Continue, it
// returns the handle advanced one step; on EndByPredicate or EndOfRedpath,
// it returns h unchanged (the caller won't advance a dead or terminal
// branch any further).
func (h Handle) Filter(v *redfish.Variant) (FilterResult, Handle) {
	step := h.steps[h.cursor]
	if !step.Predicate.Matches(v) {
		return EndByPredicate, h
	}
	if h.cursor == len(h.steps)-1 {
		return EndOfRedpath, h
	}
	next := h
	next.cursor++
	return Continue, next
}
