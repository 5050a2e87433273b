package redpath

import "github.com/openredfish/dellicius/redfish"

// Predicate is the tagged dispatch over the single capability
// `(RedfishVariant) → bool`. Only SelectAll ("*") is implemented; this
// shape (a struct of optional tagged fields, not an interface) is the
// reserved extension point for richer predicates (comparisons,
// property-exists) without touching the planner.
type Predicate struct {
	SelectAll bool
}

// Matches evaluates the predicate against v.
func (p Predicate) Matches(v *redfish.Variant) bool {
	switch {
	case p.SelectAll:
		return true
	default:
		return true
	}
}
